package domain

import (
	"context"
	"time"
)

// CalendarStats is a point-in-time view of the calendar's in-memory state.
type CalendarStats struct {
	Events        int
	Invites       int
	MaxEventID    EventID
	FreeEventIDs  int
	MaxInviteID   InviteID
	FreeInviteIDs int
}

// CalendarService owns every calendar event and invite. Its methods must be called from
// one goroutine only (see owner.Loop); none of them block on storage.
type CalendarService interface {
	LoadFromDB(ctx context.Context) error

	CreateEvent(ev *Event, sendType SendEventType) *Event
	UpdateEvent(ev *Event)
	RemoveEvent(eventID EventID, remover PlayerID) error
	AddInvite(ev *Event, inv *Invite, tx *Transaction)
	UpdateInvite(inv *Invite, tx *Transaction)
	RemoveInvite(inviteID InviteID, eventID EventID, remover PlayerID) error

	RemoveAllPlayerEventsAndInvites(player PlayerID)
	RemovePlayerGuildEventsAndSignups(player PlayerID, guild GuildID)
	DeleteOldEvents(retention time.Duration, now time.Time) int

	GetEvent(id EventID) (*Event, bool)
	GetInvite(id InviteID) (*Invite, bool)
	GetEventInvites(id EventID) []*Invite
	GetPlayerInvites(player PlayerID) []*Invite
	GetPlayerEvents(player PlayerID) []*Event
	GetEventsCreatedBy(player PlayerID, includeGuildEvents bool) []*Event
	GetGuildEvents(guild GuildID) []*Event
	GetPlayerNumPending(player PlayerID) int

	NewEventID() EventID
	NewInviteID() InviteID
	FreeEventID(id EventID)
	FreeInviteID(id InviteID)

	SendEvent(player PlayerID, ev *Event, sendType SendEventType)
	SendEventInvite(inv *Invite)
	SendEventInviteAlert(ev *Event, inv *Invite)
	SendEventUpdateAlert(ev *Event, oldTime time.Time)
	SendEventStatus(ev *Event, inv *Invite)
	SendEventModeratorStatusAlert(ev *Event, inv *Invite)
	SendEventInviteRemoveAlert(player PlayerID, ev *Event, status InviteStatus)
	SendClearPendingAction(player PlayerID)
	SendCommandResult(player PlayerID, code CommandError, param string)

	Stats() CalendarStats
}

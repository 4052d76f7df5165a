package domain

import "time"

// InviteID identifies a calendar invite.
type InviteID uint64

// InviteStatus is an invitee's answer to an event.
type InviteStatus uint8

const (
	StatusInvited InviteStatus = iota
	StatusAccepted
	StatusDeclined
	StatusConfirmed
	StatusOut
	StatusStandby
	StatusSignedUp
	StatusNotSignedUp
	StatusTentative
	StatusRemoved
)

// IsPending reports whether the status still waits on the invitee.
func (s InviteStatus) IsPending() bool {
	switch s {
	case StatusInvited, StatusTentative, StatusNotSignedUp:
		return true
	default:
		return false
	}
}

// ModerationRank is an invitee's rank within one event.
type ModerationRank uint8

const (
	RankPlayer ModerationRank = iota
	RankModerator
	RankOwner
)

// NoStatusTime is the status time clients read as "no time recorded" (2000-01-01 00:00:00 UTC).
var NoStatusTime = time.Unix(946684800, 0).UTC()

// Invite links one invitee to one event.
// swagger:model Invite
type Invite struct {
	ID         InviteID       `json:"id"`
	EventID    EventID        `json:"event_id"`
	InviteeID  PlayerID       `json:"invitee_id"`
	SenderID   PlayerID       `json:"sender_id"`
	Status     InviteStatus   `json:"status"`
	StatusTime time.Time      `json:"status_time"`
	Rank       ModerationRank `json:"rank"`
	Text       string         `json:"text"`
}

// NewInvite returns an Invite in the Invited/Player state stamped with statusTime.
// The ID is assigned by the calendar when the invite is added.
func NewInvite(eventID EventID, invitee, sender PlayerID, statusTime time.Time) *Invite {
	return &Invite{
		EventID:    eventID,
		InviteeID:  invitee,
		SenderID:   sender,
		Status:     StatusInvited,
		StatusTime: statusTime,
		Rank:       RankPlayer,
	}
}

// IsPreInvite reports whether the invite was proposed before its event exists.
func (i *Invite) IsPreInvite() bool { return i.EventID == 0 }

// OwnsID reports whether the invite holds a recyclable id that must be freed on removal.
func (i *Invite) OwnsID() bool { return i.ID != 0 && i.EventID != 0 }

// IsSignUp reports whether the invitee added themself.
func (i *Invite) IsSignUp() bool { return i.SenderID == i.InviteeID }

// HasStatusTime reports whether the status time is a real timestamp.
func (i *Invite) HasStatusTime() bool {
	return !i.StatusTime.IsZero() && !i.StatusTime.Equal(NoStatusTime)
}

package store

import (
	"maps"
	"slices"

	"guildcalendar/internal/domain"
)

// InviteIndex maps an event id to its invites in arrival order.
type InviteIndex struct {
	byEvent map[domain.EventID][]*domain.Invite
}

func NewInviteIndex() *InviteIndex {
	return &InviteIndex{byEvent: make(map[domain.EventID][]*domain.Invite)}
}

func (x *InviteIndex) Add(inv *domain.Invite) {
	x.byEvent[inv.EventID] = append(x.byEvent[inv.EventID], inv)
}

// EventInvites returns the invites of one event. The slice is the index's own storage:
// it must not be modified and is not valid after the next mutation.
func (x *InviteIndex) EventInvites(eventID domain.EventID) []*domain.Invite {
	return x.byEvent[eventID]
}

// FindInEvent returns the invite with inviteID among the invites of eventID.
func (x *InviteIndex) FindInEvent(eventID domain.EventID, inviteID domain.InviteID) (*domain.Invite, bool) {
	for _, inv := range x.byEvent[eventID] {
		if inv.ID == inviteID {
			return inv, true
		}
	}
	return nil, false
}

// Find searches every event for the invite with inviteID.
func (x *InviteIndex) Find(inviteID domain.InviteID) (*domain.Invite, bool) {
	for _, invs := range x.byEvent {
		for _, inv := range invs {
			if inv.ID == inviteID {
				return inv, true
			}
		}
	}
	return nil, false
}

// Remove drops one invite from its event's list, keeping the order of the rest.
func (x *InviteIndex) Remove(eventID domain.EventID, inviteID domain.InviteID) (*domain.Invite, bool) {
	invs := x.byEvent[eventID]
	i := slices.IndexFunc(invs, func(inv *domain.Invite) bool { return inv.ID == inviteID })
	if i < 0 {
		return nil, false
	}
	inv := invs[i]
	invs = slices.Delete(invs, i, i+1)
	if len(invs) == 0 {
		delete(x.byEvent, eventID)
	} else {
		x.byEvent[eventID] = invs
	}
	return inv, true
}

// RemoveEvent drops the whole list of eventID and returns it.
func (x *InviteIndex) RemoveEvent(eventID domain.EventID) []*domain.Invite {
	invs := x.byEvent[eventID]
	delete(x.byEvent, eventID)
	return invs
}

// PlayerInvites returns a snapshot of every invite addressed to player, ordered by
// event id and then by arrival.
func (x *InviteIndex) PlayerInvites(player domain.PlayerID) []*domain.Invite {
	var out []*domain.Invite
	for _, eventID := range slices.Sorted(maps.Keys(x.byEvent)) {
		for _, inv := range x.byEvent[eventID] {
			if inv.InviteeID == player {
				out = append(out, inv)
			}
		}
	}
	return out
}

// PendingCount counts player's invites still waiting on an answer.
func (x *InviteIndex) PendingCount(player domain.PlayerID) int {
	n := 0
	for _, invs := range x.byEvent {
		for _, inv := range invs {
			if inv.InviteeID == player && inv.Status.IsPending() {
				n++
			}
		}
	}
	return n
}

// Len returns the number of indexed invites.
func (x *InviteIndex) Len() int {
	n := 0
	for _, invs := range x.byEvent {
		n += len(invs)
	}
	return n
}

// Each calls fn for every invite, ordered like PlayerInvites.
func (x *InviteIndex) Each(fn func(*domain.Invite)) {
	for _, eventID := range slices.Sorted(maps.Keys(x.byEvent)) {
		for _, inv := range x.byEvent[eventID] {
			fn(inv)
		}
	}
}

func (x *InviteIndex) Reset() {
	clear(x.byEvent)
}

// Package store holds the calendar's in-memory event set and per-event invite lists.
// Nothing here is safe for concurrent use; the calendar owner serialises access.
package store

import (
	"slices"

	"guildcalendar/internal/domain"
)

// EventStore keeps events unique by id, in insertion order.
type EventStore struct {
	byID  map[domain.EventID]*domain.Event
	order []domain.EventID
}

func NewEventStore() *EventStore {
	return &EventStore{byID: make(map[domain.EventID]*domain.Event)}
}

// Insert adds ev. An event already stored under the same id is replaced in place.
func (s *EventStore) Insert(ev *domain.Event) {
	if _, ok := s.byID[ev.ID]; !ok {
		s.order = append(s.order, ev.ID)
	}
	s.byID[ev.ID] = ev
}

func (s *EventStore) Get(id domain.EventID) (*domain.Event, bool) {
	ev, ok := s.byID[id]
	return ev, ok
}

// Remove deletes the event with the given id and reports whether it was present.
// Do not call it while iterating; use Erase instead.
func (s *EventStore) Remove(id domain.EventID) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

func (s *EventStore) Len() int { return len(s.order) }

// IDs returns the stored ids in insertion order.
func (s *EventStore) IDs() []domain.EventID { return slices.Clone(s.order) }

func (s *EventStore) Reset() {
	clear(s.byID)
	s.order = s.order[:0]
}

// Select returns a snapshot of the events accepted by pred, in insertion order.
func (s *EventStore) Select(pred func(*domain.Event) bool) []*domain.Event {
	var out []*domain.Event
	for _, id := range s.order {
		if ev := s.byID[id]; pred(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// CreatedBy returns the events created by player. Guild events and announcements are
// left out unless includeGuildEvents is set.
func (s *EventStore) CreatedBy(player domain.PlayerID, includeGuildEvents bool) []*domain.Event {
	return s.Select(func(ev *domain.Event) bool {
		if ev.CreatorID != player {
			return false
		}
		return includeGuildEvents || (!ev.IsGuildEvent() && !ev.IsGuildAnnouncement())
	})
}

// GuildEvents returns the guild events and announcements of guild.
func (s *EventStore) GuildEvents(guild domain.GuildID) []*domain.Event {
	if guild == 0 {
		return nil
	}
	return s.Select(func(ev *domain.Event) bool {
		return (ev.IsGuildEvent() || ev.IsGuildAnnouncement()) && ev.GuildID == guild
	})
}

// Iterator walks an EventStore in insertion order and survives Erase of its current event.
type Iterator struct {
	s      *EventStore
	pos    int
	erased bool
}

// Iter returns an iterator positioned before the first event.
func (s *EventStore) Iter() *Iterator {
	return &Iterator{s: s, pos: -1}
}

// Next advances to the following event and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.erased {
		it.erased = false
	} else {
		it.pos++
	}
	return it.pos < len(it.s.order)
}

// Event returns the event under the iterator.
func (it *Iterator) Event() *domain.Event {
	return it.s.byID[it.s.order[it.pos]]
}

// Erase removes the event under it. The following Next moves to the event that came
// after the erased one.
func (s *EventStore) Erase(it *Iterator) {
	if it.s != s || it.erased || it.pos < 0 || it.pos >= len(s.order) {
		return
	}
	delete(s.byID, s.order[it.pos])
	s.order = slices.Delete(s.order, it.pos, it.pos+1)
	it.erased = true
}

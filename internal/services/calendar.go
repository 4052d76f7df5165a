package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"guildcalendar/internal/domain"
	"guildcalendar/internal/idpool"
	"guildcalendar/internal/store"
)

// mailExpiry is how long a cancellation mail stays in the receiver's mailbox.
const mailExpiry = 30 * 24 * time.Hour

type calendarService struct {
	events    *store.EventStore
	invites   *store.InviteIndex
	eventIDs  *idpool.Pool[domain.EventID]
	inviteIDs *idpool.Pool[domain.InviteID]
	repo      domain.CalendarRepository
	gateway   domain.PersistenceGateway
	directory domain.Directory
	sessions  domain.Sessions
	mail      domain.MailQueue
	logger    *slog.Logger
	now       func() time.Time
}

// NewCalendarService returns an empty calendar. Call LoadFromDB before serving requests.
// The returned service is not safe for concurrent use.
func NewCalendarService(repo domain.CalendarRepository,
	gateway domain.PersistenceGateway,
	directory domain.Directory,
	sessions domain.Sessions,
	mail domain.MailQueue,
	logger *slog.Logger,
) domain.CalendarService {
	return &calendarService{
		events:    store.NewEventStore(),
		invites:   store.NewInviteIndex(),
		eventIDs:  idpool.New[domain.EventID](),
		inviteIDs: idpool.New[domain.InviteID](),
		repo:      repo,
		gateway:   gateway,
		directory: directory,
		sessions:  sessions,
		mail:      mail,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *calendarService) LoadFromDB(ctx context.Context) error {
	events, err := s.repo.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	invites, err := s.repo.LoadInvites(ctx)
	if err != nil {
		return fmt.Errorf("load invites: %w", err)
	}

	s.events.Reset()
	s.invites.Reset()

	var maxEventID domain.EventID
	for _, ev := range events {
		// The guild is not stored; it follows the creator's current guild.
		if ev.IsGuildScoped() {
			ev.GuildID = s.directory.GuildOf(ev.CreatorID)
		} else {
			ev.GuildID = 0
		}
		s.events.Insert(ev)
		maxEventID = max(maxEventID, ev.ID)
	}

	var maxInviteID domain.InviteID
	inUse := make(map[domain.InviteID]struct{}, len(invites))
	orphans := 0
	for _, inv := range invites {
		if _, ok := s.events.Get(inv.EventID); !ok {
			orphans++
			s.gateway.Execute(domain.DeleteInviteStmt(inv.ID))
			continue
		}
		s.invites.Add(inv)
		inUse[inv.ID] = struct{}{}
		maxInviteID = max(maxInviteID, inv.ID)
	}

	s.eventIDs.Rebuild(func(id domain.EventID) bool {
		_, ok := s.events.Get(id)
		return ok
	}, maxEventID)
	s.inviteIDs.Rebuild(func(id domain.InviteID) bool {
		_, ok := inUse[id]
		return ok
	}, maxInviteID)

	if orphans > 0 {
		s.logger.Warn("dropped invites of missing events", "count", orphans)
	}
	s.logger.Info("calendar loaded",
		"events", s.events.Len(),
		"invites", s.invites.Len(),
		"free_event_ids", s.eventIDs.FreeLen(),
		"free_invite_ids", s.inviteIDs.FreeLen(),
	)
	return nil
}

// CreateEvent stores ev and sends its snapshot to the creator. An event that already
// carries an id from NewEventID keeps it.
func (s *calendarService) CreateEvent(ev *domain.Event, sendType domain.SendEventType) *domain.Event {
	if ev.IsGuildScoped() {
		ev.GuildID = s.directory.GuildOf(ev.CreatorID)
	} else {
		ev.GuildID = 0
	}
	if ev.ID == 0 {
		ev.ID = s.eventIDs.Allocate()
	}
	s.events.Insert(ev)
	s.gateway.Execute(domain.UpsertEventStmt(ev))
	s.SendEvent(ev.CreatorID, ev, sendType)
	return ev
}

func (s *calendarService) UpdateEvent(ev *domain.Event) {
	s.gateway.Execute(domain.UpsertEventStmt(ev))
}

// AddInvite registers inv for ev. A nil ev marks a pre-invite, which only notifies the
// sender. Invites of guild announcements are announced but never stored.
func (s *calendarService) AddInvite(ev *domain.Event, inv *domain.Invite, tx *domain.Transaction) {
	if ev == nil || inv.IsPreInvite() {
		inv.EventID = 0
		s.SendEventInvite(inv)
		return
	}

	stored := !ev.IsGuildAnnouncement()
	if stored && inv.ID == 0 {
		inv.ID = s.inviteIDs.Allocate()
	}
	if stored {
		s.SendEventInvite(inv)
	}
	if !ev.IsGuildEvent() || inv.InviteeID == ev.CreatorID {
		s.SendEventInviteAlert(ev, inv)
	}
	if !stored {
		return
	}
	s.invites.Add(inv)
	s.UpdateInvite(inv, tx)
}

func (s *calendarService) UpdateInvite(inv *domain.Invite, tx *domain.Transaction) {
	stmt := domain.UpsertInviteStmt(inv)
	if tx != nil {
		tx.Append(stmt)
		return
	}
	s.gateway.Execute(stmt)
}

// RemoveEvent deletes the event and every invite it holds. Invitees other than remover
// get a mail so they learn about the cancellation while offline. A zero remover marks a
// system removal and sends no mail.
func (s *calendarService) RemoveEvent(eventID domain.EventID, remover domain.PlayerID) error {
	ev, ok := s.events.Get(eventID)
	if !ok {
		if remover != 0 {
			s.SendCommandResult(remover, domain.CommandEventInvalid, "")
		}
		return domain.ErrEventInvalid
	}
	s.removeEvent(ev, remover, nil)
	return nil
}

// removeEvent runs the cascade for a live event. When it is not nil, the event must be
// the one under it and is erased through it.
func (s *calendarService) removeEvent(ev *domain.Event, remover domain.PlayerID, it *store.Iterator) {
	s.sendToAllRelatives(ev, domain.RemovedAlertMessage{EventID: ev.ID, Time: ev.Time})

	invites := s.invites.RemoveEvent(ev.ID)
	tx := domain.NewTransaction()
	now := s.now()
	for _, inv := range invites {
		tx.Append(domain.DeleteInviteStmt(inv.ID))
	}
	for _, inv := range invites {
		if remover != 0 && inv.InviteeID != remover {
			s.mail.Enqueue(tx, domain.MailRecord{
				ReceiverID: inv.InviteeID,
				EventID:    ev.ID,
				Subject:    fmt.Sprintf("%d:%s", remover, ev.Title),
				Body:       strconv.FormatUint(uint64(domain.PackTime(ev.Time)), 10),
				CheckMask:  domain.MailCheckCopied,
				DeliverAt:  now,
				ExpireAt:   now.Add(mailExpiry),
			})
		}
	}
	tx.Append(domain.DeleteEventStmt(ev.ID))
	s.gateway.Commit(tx)

	for _, inv := range invites {
		if inv.OwnsID() {
			s.inviteIDs.Free(inv.ID)
		}
	}
	s.eventIDs.Free(ev.ID)
	if it != nil {
		s.events.Erase(it)
	} else {
		s.events.Remove(ev.ID)
	}
	s.logger.Debug("calendar event removed", "event_id", ev.ID, "invites", len(invites), "remover", remover)
}

func (s *calendarService) RemoveInvite(inviteID domain.InviteID, eventID domain.EventID, remover domain.PlayerID) error {
	ev, ok := s.events.Get(eventID)
	if !ok {
		s.logger.Debug("remove invite: event not found", "event_id", eventID, "invite_id", inviteID)
		return domain.ErrInviteNotFound
	}
	inv, ok := s.invites.FindInEvent(eventID, inviteID)
	if !ok {
		s.logger.Debug("remove invite: invite not found", "event_id", eventID, "invite_id", inviteID)
		return domain.ErrInviteNotFound
	}

	s.gateway.Execute(domain.DeleteInviteStmt(inv.ID))
	if !ev.IsGuildEvent() {
		s.SendEventInviteRemoveAlert(inv.InviteeID, ev, domain.StatusRemoved)
	}
	s.sendToAllRelatives(ev, domain.InviteRemovedMessage{
		InviteeID: inv.InviteeID,
		EventID:   ev.ID,
		Flags:     ev.Flags,
	})

	if inv.OwnsID() {
		s.inviteIDs.Free(inv.ID)
	}
	s.invites.Remove(eventID, inviteID)
	s.logger.Debug("calendar invite removed", "event_id", eventID, "invite_id", inviteID, "remover", remover)
	return nil
}

func (s *calendarService) RemoveAllPlayerEventsAndInvites(player domain.PlayerID) {
	for it := s.events.Iter(); it.Next(); {
		if ev := it.Event(); ev.CreatorID == player {
			s.removeEvent(ev, 0, it)
		}
	}
	for _, inv := range s.invites.PlayerInvites(player) {
		_ = s.RemoveInvite(inv.ID, inv.EventID, 0)
	}
}

func (s *calendarService) RemovePlayerGuildEventsAndSignups(player domain.PlayerID, guild domain.GuildID) {
	for it := s.events.Iter(); it.Next(); {
		ev := it.Event()
		if ev.CreatorID == player && (ev.IsGuildEvent() || ev.IsGuildAnnouncement()) {
			s.removeEvent(ev, player, it)
		}
	}
	for _, inv := range s.invites.PlayerInvites(player) {
		ev, ok := s.events.Get(inv.EventID)
		if !ok || !ev.IsGuildEvent() || ev.GuildID != guild {
			continue
		}
		_ = s.RemoveInvite(inv.ID, inv.EventID, 0)
	}
}

// DeleteOldEvents removes every event scheduled before now-retention and returns how
// many were removed.
func (s *calendarService) DeleteOldEvents(retention time.Duration, now time.Time) int {
	cutoff := now.Add(-retention)
	removed := 0
	for it := s.events.Iter(); it.Next(); {
		if ev := it.Event(); ev.Time.Before(cutoff) {
			s.removeEvent(ev, 0, it)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("old calendar events deleted", "count", removed, "cutoff", cutoff)
	}
	return removed
}

func (s *calendarService) GetEvent(id domain.EventID) (*domain.Event, bool) {
	return s.events.Get(id)
}

func (s *calendarService) GetInvite(id domain.InviteID) (*domain.Invite, bool) {
	return s.invites.Find(id)
}

func (s *calendarService) GetEventInvites(id domain.EventID) []*domain.Invite {
	return s.invites.EventInvites(id)
}

func (s *calendarService) GetPlayerInvites(player domain.PlayerID) []*domain.Invite {
	return s.invites.PlayerInvites(player)
}

// GetPlayerEvents returns the events player is invited to, followed by the events of
// their guild when they are connected.
func (s *calendarService) GetPlayerEvents(player domain.PlayerID) []*domain.Event {
	seen := make(map[domain.EventID]struct{})
	var out []*domain.Event
	for _, inv := range s.invites.PlayerInvites(player) {
		if _, dup := seen[inv.EventID]; dup {
			continue
		}
		if ev, ok := s.events.Get(inv.EventID); ok {
			seen[ev.ID] = struct{}{}
			out = append(out, ev)
		}
	}
	if s.sessions.IsConnected(player) {
		for _, ev := range s.events.GuildEvents(s.directory.GuildOf(player)) {
			if _, dup := seen[ev.ID]; !dup {
				seen[ev.ID] = struct{}{}
				out = append(out, ev)
			}
		}
	}
	return out
}

func (s *calendarService) GetEventsCreatedBy(player domain.PlayerID, includeGuildEvents bool) []*domain.Event {
	return s.events.CreatedBy(player, includeGuildEvents)
}

func (s *calendarService) GetGuildEvents(guild domain.GuildID) []*domain.Event {
	return s.events.GuildEvents(guild)
}

func (s *calendarService) GetPlayerNumPending(player domain.PlayerID) int {
	return s.invites.PendingCount(player)
}

func (s *calendarService) NewEventID() domain.EventID { return s.eventIDs.Allocate() }

func (s *calendarService) NewInviteID() domain.InviteID { return s.inviteIDs.Allocate() }

func (s *calendarService) FreeEventID(id domain.EventID) { s.eventIDs.Free(id) }

func (s *calendarService) FreeInviteID(id domain.InviteID) { s.inviteIDs.Free(id) }

func (s *calendarService) Stats() domain.CalendarStats {
	return domain.CalendarStats{
		Events:        s.events.Len(),
		Invites:       s.invites.Len(),
		MaxEventID:    s.eventIDs.Max(),
		FreeEventIDs:  s.eventIDs.FreeLen(),
		MaxInviteID:   s.inviteIDs.Max(),
		FreeInviteIDs: s.inviteIDs.FreeLen(),
	}
}

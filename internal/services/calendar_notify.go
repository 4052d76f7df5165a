package services

import (
	"time"

	"guildcalendar/internal/domain"
)

// guildAudience returns the guild that receives broadcasts about ev, if any.
func (s *calendarService) guildAudience(ev *domain.Event) (domain.GuildID, bool) {
	if !ev.IsGuildScoped() || ev.GuildID == 0 {
		return 0, false
	}
	return ev.GuildID, true
}

// reachedByBroadcast reports whether player already gets guild broadcasts about ev.
func (s *calendarService) reachedByBroadcast(ev *domain.Event, player domain.PlayerID) bool {
	guild, ok := s.guildAudience(ev)
	return ok && s.directory.GuildOf(player) == guild
}

// sendToAllRelatives delivers msg once to the event's guild and directly to every
// connected invitee the broadcast does not reach.
func (s *calendarService) sendToAllRelatives(ev *domain.Event, msg domain.Message) {
	if guild, ok := s.guildAudience(ev); ok {
		s.sessions.BroadcastGuild(guild, msg)
	}
	for _, inv := range s.invites.EventInvites(ev.ID) {
		if !s.sessions.IsConnected(inv.InviteeID) {
			continue
		}
		if s.reachedByBroadcast(ev, inv.InviteeID) {
			continue
		}
		s.sessions.SendDirect(inv.InviteeID, msg)
	}
}

func (s *calendarService) SendEvent(player domain.PlayerID, ev *domain.Event, sendType domain.SendEventType) {
	invites := s.invites.EventInvites(ev.ID)
	roster := make([]domain.RosterEntry, 0, len(invites))
	for _, inv := range invites {
		roster = append(roster, domain.RosterEntry{
			InviteeID:  inv.InviteeID,
			Level:      s.directory.LevelOf(inv.InviteeID),
			Status:     inv.Status,
			Rank:       inv.Rank,
			SameGuild:  ev.IsGuildEvent() && s.directory.GuildOf(inv.InviteeID) == ev.GuildID,
			InviteID:   inv.ID,
			StatusTime: inv.StatusTime,
			Text:       inv.Text,
		})
	}
	s.sessions.SendDirect(player, domain.EventSnapshotMessage{
		SendType:     sendType,
		CreatorID:    ev.CreatorID,
		EventID:      ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		Type:         ev.Type,
		Repeat:       domain.RepeatNever,
		MaxInvites:   domain.MaxInvitesPerEvent,
		DungeonID:    ev.DungeonID,
		Flags:        ev.Flags,
		Time:         ev.Time,
		TimezoneTime: ev.TimezoneTime,
		GuildID:      ev.GuildID,
		Roster:       roster,
	})
}

// SendEventInvite tells the invitee about inv. Pre-invites have no roster yet and go
// back to the sender.
func (s *calendarService) SendEventInvite(inv *domain.Invite) {
	msg := domain.InviteMessage{
		InviteeID:     inv.InviteeID,
		EventID:       inv.EventID,
		InviteID:      inv.ID,
		InviteeLevel:  s.directory.LevelOf(inv.InviteeID),
		Status:        inv.Status,
		HasStatusTime: inv.HasStatusTime(),
		IsSignUp:      inv.IsSignUp(),
	}
	if msg.HasStatusTime {
		msg.StatusTime = inv.StatusTime
	}
	if inv.IsPreInvite() {
		s.sessions.SendDirect(inv.SenderID, msg)
		return
	}
	s.sessions.SendDirect(inv.InviteeID, msg)
}

func (s *calendarService) SendEventInviteAlert(ev *domain.Event, inv *domain.Invite) {
	msg := domain.InviteAlertMessage{
		EventID:   ev.ID,
		Title:     ev.Title,
		Time:      ev.Time,
		Flags:     ev.Flags,
		Type:      ev.Type,
		DungeonID: ev.DungeonID,
		InviteID:  inv.ID,
		Status:    inv.Status,
		Rank:      inv.Rank,
		CreatorID: ev.CreatorID,
		SenderID:  inv.SenderID,
	}
	if guild, ok := s.guildAudience(ev); ok {
		s.sessions.BroadcastGuild(guild, msg)
		if s.reachedByBroadcast(ev, inv.InviteeID) {
			return
		}
	}
	s.sessions.SendDirect(inv.InviteeID, msg)
}

func (s *calendarService) SendEventUpdateAlert(ev *domain.Event, oldTime time.Time) {
	s.sendToAllRelatives(ev, domain.UpdateAlertMessage{
		EventID:     ev.ID,
		OldTime:     oldTime,
		Flags:       ev.Flags,
		Time:        ev.Time,
		Type:        ev.Type,
		DungeonID:   ev.DungeonID,
		Title:       ev.Title,
		Description: ev.Description,
		Repeat:      domain.RepeatNever,
		MaxInvites:  domain.MaxInvitesPerEvent,
	})
}

func (s *calendarService) SendEventStatus(ev *domain.Event, inv *domain.Invite) {
	s.sendToAllRelatives(ev, domain.StatusMessage{
		InviteeID:  inv.InviteeID,
		EventID:    ev.ID,
		Time:       ev.Time,
		Flags:      ev.Flags,
		Status:     inv.Status,
		Rank:       inv.Rank,
		StatusTime: inv.StatusTime,
	})
}

func (s *calendarService) SendEventModeratorStatusAlert(ev *domain.Event, inv *domain.Invite) {
	s.sendToAllRelatives(ev, domain.ModeratorStatusMessage{
		InviteeID: inv.InviteeID,
		EventID:   ev.ID,
		Rank:      inv.Rank,
	})
}

func (s *calendarService) SendEventInviteRemoveAlert(player domain.PlayerID, ev *domain.Event, status domain.InviteStatus) {
	s.sessions.SendDirect(player, domain.InviteRemovedAlertMessage{
		EventID: ev.ID,
		Time:    ev.Time,
		Flags:   ev.Flags,
		Status:  status,
	})
}

func (s *calendarService) SendClearPendingAction(player domain.PlayerID) {
	s.sessions.SendDirect(player, domain.ClearPendingActionMessage{})
}

func (s *calendarService) SendCommandResult(player domain.PlayerID, code domain.CommandError, param string) {
	if !code.HasParam() {
		param = ""
	}
	s.sessions.SendDirect(player, domain.CommandResultMessage{Code: code, Param: param})
}

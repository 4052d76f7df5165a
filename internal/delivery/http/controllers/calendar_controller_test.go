package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildcalendar/internal/delivery/http/helpers"
	"guildcalendar/internal/domain"
	"guildcalendar/internal/owner"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeCalendar implements the reads and removals the controller issues. Other methods
// panic through the nil embedded interface.
type fakeCalendar struct {
	domain.CalendarService

	events  map[domain.EventID]*domain.Event
	invites map[domain.EventID][]*domain.Invite

	removed      []domain.EventID
	removedBy    []domain.PlayerID
	cleanedAll   []domain.PlayerID
	cleanedGuild map[domain.PlayerID]domain.GuildID
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{
		events:       make(map[domain.EventID]*domain.Event),
		invites:      make(map[domain.EventID][]*domain.Invite),
		cleanedGuild: make(map[domain.PlayerID]domain.GuildID),
	}
}

func (f *fakeCalendar) GetEvent(id domain.EventID) (*domain.Event, bool) {
	ev, ok := f.events[id]
	return ev, ok
}

func (f *fakeCalendar) GetEventInvites(id domain.EventID) []*domain.Invite { return f.invites[id] }

func (f *fakeCalendar) GetPlayerInvites(player domain.PlayerID) []*domain.Invite {
	var out []*domain.Invite
	for _, list := range f.invites {
		for _, inv := range list {
			if inv.InviteeID == player {
				out = append(out, inv)
			}
		}
	}
	return out
}

func (f *fakeCalendar) GetPlayerNumPending(player domain.PlayerID) int {
	n := 0
	for _, inv := range f.GetPlayerInvites(player) {
		if inv.Status.IsPending() {
			n++
		}
	}
	return n
}

func (f *fakeCalendar) GetGuildEvents(guild domain.GuildID) []*domain.Event {
	var out []*domain.Event
	for _, ev := range f.events {
		if ev.GuildID == guild && (ev.IsGuildEvent() || ev.IsGuildAnnouncement()) {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakeCalendar) RemoveEvent(id domain.EventID, remover domain.PlayerID) error {
	if _, ok := f.events[id]; !ok {
		return domain.ErrEventInvalid
	}
	delete(f.events, id)
	f.removed = append(f.removed, id)
	f.removedBy = append(f.removedBy, remover)
	return nil
}

func (f *fakeCalendar) RemoveAllPlayerEventsAndInvites(player domain.PlayerID) {
	f.cleanedAll = append(f.cleanedAll, player)
}

func (f *fakeCalendar) RemovePlayerGuildEventsAndSignups(player domain.PlayerID, guild domain.GuildID) {
	f.cleanedGuild[player] = guild
}

// fakeRunner runs commands inline, or fails every call with err.
type fakeRunner struct {
	svc    *fakeCalendar
	err    error
	purged int
}

func (r *fakeRunner) Do(_ context.Context, cmd owner.Command) error {
	if r.err != nil {
		return r.err
	}
	cmd(r.svc)
	return nil
}

func (r *fakeRunner) PurgeOldEvents(context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.purged, nil
}

var raidTime = time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC)

func seededCalendar() *fakeCalendar {
	f := newFakeCalendar()
	f.events[1] = &domain.Event{ID: 1, CreatorID: 10, Title: "Molten Core", Time: raidTime}
	f.events[2] = &domain.Event{ID: 2, CreatorID: 10, GuildID: 5, Flags: domain.FlagGuildEvent, Title: "Onyxia", Time: raidTime}
	f.events[3] = &domain.Event{ID: 3, CreatorID: 11, GuildID: 5, Flags: domain.FlagGuildAnnouncement, Title: "Guild meeting", Time: raidTime}
	f.events[4] = &domain.Event{ID: 4, CreatorID: 12, GuildID: 5, Flags: domain.FlagWithoutInvites, Title: "Open raid", Time: raidTime}
	f.invites[1] = []*domain.Invite{
		{ID: 1, EventID: 1, InviteeID: 10, SenderID: 10, Status: domain.StatusConfirmed, Rank: domain.RankOwner},
		{ID: 2, EventID: 1, InviteeID: 20, SenderID: 10, Status: domain.StatusInvited},
	}
	f.invites[2] = []*domain.Invite{
		{ID: 3, EventID: 2, InviteeID: 20, SenderID: 10, Status: domain.StatusTentative},
	}
	return f
}

func serve(handler http.HandlerFunc, method, target, body string, pathValues map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}

func TestCalendarController_GetEvent(t *testing.T) {
	tests := []struct {
		name        string
		eventID     string
		runnerErr   error
		wantStatus  int
		wantCode    string
		wantInvites int
	}{
		{name: "found", eventID: "1", wantStatus: http.StatusOK, wantInvites: 2},
		{name: "no invites", eventID: "3", wantStatus: http.StatusOK, wantInvites: 0},
		{name: "missing", eventID: "99", wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "invalid id", eventID: "abc", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "zero id", eventID: "0", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "loop stopped", eventID: "1", runnerErr: owner.ErrStopped, wantStatus: http.StatusServiceUnavailable, wantCode: helpers.ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCalendarController(testLogger, &fakeRunner{svc: seededCalendar(), err: tt.runnerErr})

			rr := serve(ctrl.GetEvent, http.MethodGet, "/calendar/events/"+tt.eventID, "", map[string]string{"eventID": tt.eventID})

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr))
				return
			}
			var resp EventDetailSuccessResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Nil(t, resp.Error)
			assert.Equal(t, tt.eventID, fmt.Sprint(resp.Data.Event.ID))
			assert.Len(t, resp.Data.Invites, tt.wantInvites)
			assert.NotNil(t, resp.Data.Invites)
		})
	}
}

func TestCalendarController_RemoveEvent(t *testing.T) {
	svc := seededCalendar()
	ctrl := NewCalendarController(testLogger, &fakeRunner{svc: svc})

	rr := serve(ctrl.RemoveEvent, http.MethodDelete, "/calendar/events/2", "", map[string]string{"eventID": "2"})

	require.Equal(t, http.StatusOK, rr.Code)
	var resp RemovedEventSuccessResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, domain.EventID(2), resp.Data.EventID)
	assert.Equal(t, []domain.EventID{2}, svc.removed)
	assert.Equal(t, []domain.PlayerID{0}, svc.removedBy, "operator removals are system actions")

	rr = serve(ctrl.RemoveEvent, http.MethodDelete, "/calendar/events/2", "", map[string]string{"eventID": "2"})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, helpers.ErrCodeNotFound, decodeError(t, rr))
}

func TestCalendarController_GetPlayerInvites(t *testing.T) {
	ctrl := NewCalendarController(testLogger, &fakeRunner{svc: seededCalendar()})

	rr := serve(ctrl.GetPlayerInvites, http.MethodGet, "/calendar/players/20/invites", "", map[string]string{"playerID": "20"})

	require.Equal(t, http.StatusOK, rr.Code)
	var resp PlayerInvitesSuccessResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, domain.PlayerID(20), resp.Data.PlayerID)
	assert.Len(t, resp.Data.Invites, 2)
	assert.Equal(t, 2, resp.Data.Pending)

	rr = serve(ctrl.GetPlayerInvites, http.MethodGet, "/calendar/players/77/invites", "", map[string]string{"playerID": "77"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Empty(t, resp.Data.Invites)
	assert.Zero(t, resp.Data.Pending)
}

func TestCalendarController_GetGuildEvents(t *testing.T) {
	tests := []struct {
		name       string
		guildID    string
		query      string
		wantStatus int
		wantIDs    []domain.EventID
		wantTotal  int
		wantPages  int
	}{
		{name: "all on one page", guildID: "5", wantStatus: http.StatusOK, wantIDs: []domain.EventID{2, 3}, wantTotal: 2, wantPages: 1},
		{name: "second page", guildID: "5", query: "?page=2&page_size=1", wantStatus: http.StatusOK, wantIDs: []domain.EventID{3}, wantTotal: 2, wantPages: 2},
		{name: "page past the end", guildID: "5", query: "?page=5&page_size=1", wantStatus: http.StatusOK, wantIDs: []domain.EventID{}, wantTotal: 2, wantPages: 2},
		{name: "unknown guild", guildID: "6", wantStatus: http.StatusOK, wantIDs: []domain.EventID{}},
		{name: "guild id too large", guildID: "4294967296", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCalendarController(testLogger, &fakeRunner{svc: seededCalendar()})

			rr := serve(ctrl.GetGuildEvents, http.MethodGet, "/calendar/guilds/"+tt.guildID+"/events"+tt.query, "", map[string]string{"guildID": tt.guildID})

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, helpers.ErrCodeBadRequest, decodeError(t, rr))
				return
			}
			var resp GuildEventsSuccessResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			ids := []domain.EventID{}
			for _, ev := range resp.Data.Events {
				ids = append(ids, ev.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, resp.Data.Pagination.Total)
			assert.Equal(t, tt.wantPages, resp.Data.Pagination.TotalPages)
		})
	}
}

func TestCalendarController_CleanupPlayer(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantAll    []domain.PlayerID
		wantGuild  map[domain.PlayerID]domain.GuildID
	}{
		{name: "character", body: `{"scope":"character"}`, wantStatus: http.StatusNoContent, wantAll: []domain.PlayerID{10}, wantGuild: map[domain.PlayerID]domain.GuildID{}},
		{name: "guild", body: `{"scope":"guild","guild_id":5}`, wantStatus: http.StatusNoContent, wantGuild: map[domain.PlayerID]domain.GuildID{10: 5}},
		{name: "guild without id", body: `{"scope":"guild"}`, wantStatus: http.StatusBadRequest, wantGuild: map[domain.PlayerID]domain.GuildID{}},
		{name: "unknown scope", body: `{"scope":"account"}`, wantStatus: http.StatusBadRequest, wantGuild: map[domain.PlayerID]domain.GuildID{}},
		{name: "unknown field", body: `{"scope":"character","force":true}`, wantStatus: http.StatusBadRequest, wantGuild: map[domain.PlayerID]domain.GuildID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seededCalendar()
			ctrl := NewCalendarController(testLogger, &fakeRunner{svc: svc})

			rr := serve(ctrl.CleanupPlayer, http.MethodPost, "/calendar/players/10/cleanup", tt.body, map[string]string{"playerID": "10"})

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAll, svc.cleanedAll)
			assert.Equal(t, tt.wantGuild, svc.cleanedGuild)
		})
	}
}

func TestCalendarController_PurgeOldEvents(t *testing.T) {
	ctrl := NewCalendarController(testLogger, &fakeRunner{svc: newFakeCalendar(), purged: 4})

	rr := serve(ctrl.PurgeOldEvents, http.MethodPost, "/calendar/purge", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp PurgeSuccessResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 4, resp.Data.Removed)

	ctrl = NewCalendarController(testLogger, &fakeRunner{err: context.DeadlineExceeded})
	rr = serve(ctrl.PurgeOldEvents, http.MethodPost, "/calendar/purge", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, helpers.ErrCodeUnavailable, decodeError(t, rr))
}

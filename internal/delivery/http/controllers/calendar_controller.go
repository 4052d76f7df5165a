package controllers

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"guildcalendar/internal/delivery/http/helpers"
	"guildcalendar/internal/delivery/http/middleware"
	"guildcalendar/internal/domain"
	"guildcalendar/internal/owner"
)

// CalendarRunner runs commands on the goroutine that owns the calendar.
type CalendarRunner interface {
	Do(ctx context.Context, cmd owner.Command) error
	PurgeOldEvents(ctx context.Context) (int, error)
}

// Cleanup scopes accepted by POST /calendar/players/{playerID}/cleanup.
const (
	CleanupCharacter = "character"
	CleanupGuild     = "guild"
)

// EventDetail is the event with its full roster.
type EventDetail struct {
	Event   domain.Event    `json:"event"`
	Invites []domain.Invite `json:"invites"`
}

// EventDetailSuccessResponse is the success envelope for GET /calendar/events/{eventID} (200).
type EventDetailSuccessResponse struct {
	Data  EventDetail       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RemovedEvent struct {
	EventID domain.EventID `json:"event_id"`
}

// RemovedEventSuccessResponse is the success envelope for DELETE /calendar/events/{eventID} (200).
type RemovedEventSuccessResponse struct {
	Data  RemovedEvent      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PlayerInvites lists a player's invites and how many still wait on an answer.
type PlayerInvites struct {
	PlayerID domain.PlayerID `json:"player_id"`
	Pending  int             `json:"pending"`
	Invites  []domain.Invite `json:"invites"`
}

type PlayerInvitesSuccessResponse struct {
	Data  PlayerInvites     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type GuildEvents struct {
	GuildID    domain.GuildID         `json:"guild_id"`
	Events     []domain.Event         `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type GuildEventsSuccessResponse struct {
	Data  GuildEvents       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type PurgeResult struct {
	Removed int `json:"removed"`
}

type PurgeSuccessResponse struct {
	Data  PurgeResult       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CleanupRequest is the body of POST /calendar/players/{playerID}/cleanup.
// Scope "character" removes everything the character created or was invited to;
// scope "guild" removes what ties the character to GuildID.
type CleanupRequest struct {
	Scope   string         `json:"scope"`
	GuildID domain.GuildID `json:"guild_id"`
}

// Validate implements Validator.
func (c CleanupRequest) Validate() []string {
	var errs []string
	switch c.Scope {
	case CleanupCharacter:
	case CleanupGuild:
		if c.GuildID == 0 {
			errs = append(errs, "guild_id is required for scope guild")
		}
	case "":
		errs = append(errs, "scope is required")
	default:
		errs = append(errs, "scope must be character or guild")
	}
	return errs
}

type CalendarController struct {
	Logger *slog.Logger
	Runner CalendarRunner
}

func NewCalendarController(logger *slog.Logger, runner CalendarRunner) *CalendarController {
	return &CalendarController{
		Logger: logger,
		Runner: runner,
	}
}

// GetEvent godoc
// @Summary Get a calendar event
// @Description Returns the event and every invite attached to it.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventDetailSuccessResponse "data contains the event and its invites"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /calendar/events/{eventID} [get]
func (c *CalendarController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "eventID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID "+err.Error())
		return
	}
	var (
		detail EventDetail
		found  bool
	)
	err = c.Runner.Do(r.Context(), func(svc domain.CalendarService) {
		ev, ok := svc.GetEvent(domain.EventID(id))
		if !ok {
			return
		}
		found = true
		detail = EventDetail{Event: *ev, Invites: copyInvites(svc.GetEventInvites(ev.ID))}
	})
	if err != nil {
		c.writeRunnerError(w, r, err)
		return
	}
	if !found {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.ErrEventInvalid.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// RemoveEvent godoc
// @Summary Remove a calendar event
// @Description Removes the event and all its invites as a system action. Invitees are notified; no mail is sent.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.RemovedEventSuccessResponse "data contains the removed event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /calendar/events/{eventID} [delete]
func (c *CalendarController) RemoveEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "eventID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID "+err.Error())
		return
	}
	var removeErr error
	err = c.Runner.Do(r.Context(), func(svc domain.CalendarService) {
		removeErr = svc.RemoveEvent(domain.EventID(id), 0)
	})
	if err != nil {
		c.writeRunnerError(w, r, err)
		return
	}
	if errors.Is(removeErr, domain.ErrEventInvalid) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, removeErr.Error())
		return
	}
	if removeErr != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", removeErr)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, removeErr.Error())
		return
	}
	subject, _ := middleware.SubjectFromContext(r.Context())
	c.Logger.InfoContext(r.Context(), "calendar event removed", "event_id", id, "operator", subject)
	helpers.WriteJSONSuccess(w, http.StatusOK, RemovedEvent{EventID: domain.EventID(id)})
}

// GetPlayerInvites godoc
// @Summary List a player's invites
// @Description Returns every invite addressed to the player, ordered by event, and the number still pending.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param playerID path int true "Player ID"
// @Success 200 {object} controllers.PlayerInvitesSuccessResponse "data contains the invites and pending count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /calendar/players/{playerID}/invites [get]
func (c *CalendarController) GetPlayerInvites(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "playerID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "playerID "+err.Error())
		return
	}
	player := domain.PlayerID(id)
	resp := PlayerInvites{PlayerID: player}
	err = c.Runner.Do(r.Context(), func(svc domain.CalendarService) {
		resp.Invites = copyInvites(svc.GetPlayerInvites(player))
		resp.Pending = svc.GetPlayerNumPending(player)
	})
	if err != nil {
		c.writeRunnerError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// GetGuildEvents godoc
// @Summary List a guild's events
// @Description Returns the guild-scoped events of a guild, ordered by id.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param guildID path int true "Guild ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.GuildEventsSuccessResponse "data contains a page of events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /calendar/guilds/{guildID}/events [get]
func (c *CalendarController) GetGuildEvents(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "guildID")
	if err != nil || id > uint64(^uint32(0)) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "guildID must be a positive 32-bit integer")
		return
	}
	guild := domain.GuildID(id)
	page := helpers.ParsePagination(r)

	var events []domain.Event
	err = c.Runner.Do(r.Context(), func(svc domain.CalendarService) {
		for _, ev := range svc.GetGuildEvents(guild) {
			events = append(events, *ev)
		}
	})
	if err != nil {
		c.writeRunnerError(w, r, err)
		return
	}
	slices.SortFunc(events, func(a, b domain.Event) int { return cmp.Compare(a.ID, b.ID) })
	start, end := page.Slice(len(events))
	helpers.WriteJSONSuccess(w, http.StatusOK, GuildEvents{
		GuildID:    guild,
		Events:     append([]domain.Event{}, events[start:end]...),
		Pagination: helpers.NewPaginationMeta(page, len(events)),
	})
}

// CleanupPlayer godoc
// @Summary Remove a character's calendar data
// @Description Scope "character" removes every event the character created and every invite addressed to it (character deletion). Scope "guild" removes the character's guild events and its sign-ups to that guild's events (guild leave).
// @Tags calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playerID path int true "Player ID"
// @Param cleanup body CleanupRequest true "Cleanup scope"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /calendar/players/{playerID}/cleanup [post]
func (c *CalendarController) CleanupPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "playerID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "playerID "+err.Error())
		return
	}
	var req CleanupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	player := domain.PlayerID(id)
	err = c.Runner.Do(r.Context(), func(svc domain.CalendarService) {
		if req.Scope == CleanupGuild {
			svc.RemovePlayerGuildEventsAndSignups(player, req.GuildID)
			return
		}
		svc.RemoveAllPlayerEventsAndInvites(player)
	})
	if err != nil {
		c.writeRunnerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PurgeOldEvents godoc
// @Summary Purge old calendar events
// @Description Removes every event older than the configured retention, as the scheduled sweep does.
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PurgeSuccessResponse "data contains the number of removed events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /calendar/purge [post]
func (c *CalendarController) PurgeOldEvents(w http.ResponseWriter, r *http.Request) {
	n, err := c.Runner.PurgeOldEvents(r.Context())
	if err != nil {
		c.writeRunnerError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PurgeResult{Removed: n})
}

// writeRunnerError reports a command that never ran: the loop is gone or the client
// stopped waiting.
func (c *CalendarController) writeRunnerError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.WarnContext(r.Context(), "calendar command not run", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, err.Error())
}

// copyInvites detaches invites from calendar state so they can be encoded off the loop.
func copyInvites(invites []*domain.Invite) []domain.Invite {
	out := make([]domain.Invite, 0, len(invites))
	for _, inv := range invites {
		out = append(out, *inv)
	}
	return out
}

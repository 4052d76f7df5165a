package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guildcalendar/internal/delivery/http/controllers"
	"guildcalendar/internal/delivery/http/helpers"
	"guildcalendar/internal/delivery/http/middleware"
	"guildcalendar/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(calendarController *controllers.CalendarController, verifier domain.TokenVerifier, metrics http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Calendar
	mux.HandleFunc("GET /calendar/events/{eventID}", auth(calendarController.GetEvent))
	mux.HandleFunc("DELETE /calendar/events/{eventID}", auth(calendarController.RemoveEvent))
	mux.HandleFunc("GET /calendar/players/{playerID}/invites", auth(calendarController.GetPlayerInvites))
	mux.HandleFunc("POST /calendar/players/{playerID}/cleanup", auth(calendarController.CleanupPlayer))
	mux.HandleFunc("GET /calendar/guilds/{guildID}/events", auth(calendarController.GetGuildEvents))
	mux.HandleFunc("POST /calendar/purge", auth(calendarController.PurgeOldEvents))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

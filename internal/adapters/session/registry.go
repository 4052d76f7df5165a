// Package session tracks connected players and routes calendar messages to them.
package session

import (
	"log/slog"
	"sync"

	"guildcalendar/internal/domain"
)

// Sink writes messages to one client connection. Encoding is up to the sink.
type Sink interface {
	Send(msg domain.Message) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(msg domain.Message) error

func (f SinkFunc) Send(msg domain.Message) error { return f(msg) }

// Registry implements domain.Sessions over the set of attached players. Guild
// membership comes from the directory, the same one the calendar reads.
// It is safe for concurrent use.
type Registry struct {
	directory domain.Directory
	logger    *slog.Logger

	mu      sync.RWMutex
	players map[domain.PlayerID]Sink
}

func NewRegistry(directory domain.Directory, logger *slog.Logger) *Registry {
	return &Registry{
		directory: directory,
		logger:    logger,
		players:   make(map[domain.PlayerID]Sink),
	}
}

// Attach marks id as connected. Attaching again replaces the previous sink.
func (r *Registry) Attach(id domain.PlayerID, sink Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[id] = sink
}

func (r *Registry) Detach(id domain.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

func (r *Registry) IsConnected(id domain.PlayerID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.players[id]
	return ok
}

func (r *Registry) SendDirect(id domain.PlayerID, msg domain.Message) {
	r.mu.RLock()
	sink, ok := r.players[id]
	r.mu.RUnlock()
	if !ok {
		return
	}
	r.deliver(id, sink, msg)
}

func (r *Registry) BroadcastGuild(guild domain.GuildID, msg domain.Message) {
	if guild == 0 {
		return
	}
	type target struct {
		id   domain.PlayerID
		sink Sink
	}
	var targets []target
	r.mu.RLock()
	for id, sink := range r.players {
		if r.directory.GuildOf(id) == guild {
			targets = append(targets, target{id: id, sink: sink})
		}
	}
	r.mu.RUnlock()
	for _, t := range targets {
		r.deliver(t.id, t.sink, msg)
	}
}

func (r *Registry) deliver(id domain.PlayerID, sink Sink, msg domain.Message) {
	if err := sink.Send(msg); err != nil {
		r.logger.Debug("calendar message dropped", "player_id", id, "opcode", msg.Opcode(), "error", err)
	}
}

var _ domain.Sessions = (*Registry)(nil)

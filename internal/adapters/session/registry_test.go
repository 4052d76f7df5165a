package session

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"guildcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type guildBook struct {
	mu     sync.Mutex
	guilds map[domain.PlayerID]domain.GuildID
}

func newGuildBook(guilds map[domain.PlayerID]domain.GuildID) *guildBook {
	if guilds == nil {
		guilds = make(map[domain.PlayerID]domain.GuildID)
	}
	return &guildBook{guilds: guilds}
}

func (b *guildBook) GuildOf(p domain.PlayerID) domain.GuildID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.guilds[p]
}

func (b *guildBook) LevelOf(domain.PlayerID) uint8 { return 0 }

func (b *guildBook) set(p domain.PlayerID, g domain.GuildID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guilds[p] = g
}

type inbox struct {
	mu   sync.Mutex
	msgs []domain.Message
	err  error
}

func (b *inbox) Send(msg domain.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.msgs = append(b.msgs, msg)
	return nil
}

func (b *inbox) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.msgs)
}

func TestRegistry_SendDirect(t *testing.T) {
	r := NewRegistry(newGuildBook(nil), testLogger)
	a := &inbox{}
	r.Attach(1, a)

	r.SendDirect(1, domain.ClearPendingActionMessage{})
	r.SendDirect(2, domain.ClearPendingActionMessage{})

	assert.Equal(t, 1, a.count())
	assert.True(t, r.IsConnected(1))
	assert.False(t, r.IsConnected(2))

	r.Detach(1)
	r.SendDirect(1, domain.ClearPendingActionMessage{})
	assert.Equal(t, 1, a.count())
	assert.Zero(t, r.Online())
}

func TestRegistry_BroadcastGuild(t *testing.T) {
	book := newGuildBook(map[domain.PlayerID]domain.GuildID{1: 5, 2: 5, 3: 7})
	r := NewRegistry(book, testLogger)
	g5a, g5b, g7, none := &inbox{}, &inbox{}, &inbox{}, &inbox{}
	r.Attach(1, g5a)
	r.Attach(2, g5b)
	r.Attach(3, g7)
	r.Attach(4, none)

	r.BroadcastGuild(5, domain.RemovedAlertMessage{EventID: 1})
	r.BroadcastGuild(0, domain.RemovedAlertMessage{EventID: 2})

	assert.Equal(t, 1, g5a.count())
	assert.Equal(t, 1, g5b.count())
	assert.Zero(t, g7.count())
	assert.Zero(t, none.count())

	book.set(99, 5)
	r.BroadcastGuild(5, domain.RemovedAlertMessage{EventID: 3})
	assert.Zero(t, g7.count())
	assert.False(t, r.IsConnected(99))
}

func TestRegistry_BroadcastFollowsDirectory(t *testing.T) {
	book := newGuildBook(map[domain.PlayerID]domain.GuildID{1: 5, 2: 7})
	r := NewRegistry(book, testLogger)
	leaver, joiner := &inbox{}, &inbox{}
	r.Attach(1, leaver)
	r.Attach(2, joiner)

	book.set(1, 0)
	book.set(2, 5)
	r.BroadcastGuild(5, domain.RemovedAlertMessage{EventID: 1})

	assert.Zero(t, leaver.count())
	assert.Equal(t, 1, joiner.count())
}

func TestRegistry_SinkErrorIsDropped(t *testing.T) {
	r := NewRegistry(newGuildBook(map[domain.PlayerID]domain.GuildID{1: 5, 2: 5}), testLogger)
	broken := &inbox{err: errors.New("connection reset")}
	ok := &inbox{}
	r.Attach(1, broken)
	r.Attach(2, ok)

	r.BroadcastGuild(5, domain.ClearPendingActionMessage{})

	assert.Zero(t, broken.count())
	assert.Equal(t, 1, ok.count())
}

func TestRegistry_SinkFunc(t *testing.T) {
	r := NewRegistry(newGuildBook(nil), testLogger)
	var got domain.Message
	r.Attach(1, SinkFunc(func(msg domain.Message) error {
		got = msg
		return nil
	}))

	r.SendDirect(1, domain.CommandResultMessage{Code: domain.CommandEventInvalid})
	assert.Equal(t, domain.CommandResultMessage{Code: domain.CommandEventInvalid}, got)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := NewRegistry(newGuildBook(nil), testLogger)
	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id domain.PlayerID) {
			defer wg.Done()
			b := &inbox{}
			r.Attach(id, b)
			r.BroadcastGuild(5, domain.ClearPendingActionMessage{})
			r.SendDirect(id, domain.ClearPendingActionMessage{})
			r.Detach(id)
		}(domain.PlayerID(i))
	}
	wg.Wait()
	assert.Zero(t, r.Online())
}

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"guildcalendar/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterCache_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT c.guid, c.level, COALESCE\(gm.guildid, 0\), COALESCE\(a.email, ''\)\s+FROM characters c`).
		WillReturnRows(sqlmock.NewRows([]string{"guid", "level", "guildid", "email"}).
			AddRow(int64(10), int64(80), int64(5), "thrall@example.com").
			AddRow(int64(20), int64(70), int64(0), ""))

	cache := NewCharacterCache(db)
	require.NoError(t, cache.Load(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, domain.GuildID(5), cache.GuildOf(10))
	assert.Equal(t, uint8(80), cache.LevelOf(10))
	addr, ok := cache.EmailOf(10)
	assert.True(t, ok)
	assert.Equal(t, "thrall@example.com", addr)

	assert.Zero(t, cache.GuildOf(20))
	_, ok = cache.EmailOf(20)
	assert.False(t, ok, "empty email is not an address")

	assert.Zero(t, cache.GuildOf(99))
	assert.Zero(t, cache.LevelOf(99))
	_, ok = cache.EmailOf(99)
	assert.False(t, ok)
}

func TestCharacterCache_LoadError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM characters`).WillReturnError(sql.ErrConnDone)

	cache := NewCharacterCache(db)
	cache.SetGuild(10, 5)
	err = cache.Load(context.Background())
	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, domain.GuildID(5), cache.GuildOf(10), "failed load keeps previous content")
}

func TestCharacterCache_Updates(t *testing.T) {
	cache := NewCharacterCache(nil)

	cache.SetLevel(10, 60)
	cache.SetGuild(10, 5)
	assert.Equal(t, domain.GuildID(5), cache.GuildOf(10))
	assert.Equal(t, uint8(60), cache.LevelOf(10))

	cache.SetGuild(10, 0)
	assert.Zero(t, cache.GuildOf(10))
	assert.Equal(t, uint8(60), cache.LevelOf(10))
}

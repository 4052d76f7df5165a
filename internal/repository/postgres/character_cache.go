package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"guildcalendar/internal/domain"
)

type character struct {
	guild domain.GuildID
	level uint8
	email string
}

// CharacterCache answers guild, level and email lookups from memory. It is loaded once
// from the character tables and then kept current by the host through SetGuild and
// SetLevel. Safe for concurrent use.
type CharacterCache struct {
	DB *sql.DB

	mu    sync.RWMutex
	chars map[domain.PlayerID]character
}

func NewCharacterCache(db *sql.DB) *CharacterCache {
	return &CharacterCache{
		DB:    db,
		chars: make(map[domain.PlayerID]character),
	}
}

// Load replaces the cache content with the current character rows.
func (c *CharacterCache) Load(ctx context.Context) error {
	query := `
		SELECT c.guid, c.level, COALESCE(gm.guildid, 0), COALESCE(a.email, '')
		FROM characters c
		LEFT JOIN guild_member gm ON gm.guid = c.guid
		LEFT JOIN account a ON a.id = c.account
	`
	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	defer rows.Close()
	chars := make(map[domain.PlayerID]character)
	for rows.Next() {
		var id domain.PlayerID
		var ch character
		if err := rows.Scan(&id, &ch.level, &ch.guild, &ch.email); err != nil {
			return fmt.Errorf("scan character: %w", err)
		}
		chars[id] = ch
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load characters: %w", err)
	}

	c.mu.Lock()
	c.chars = chars
	c.mu.Unlock()
	return nil
}

func (c *CharacterCache) GuildOf(player domain.PlayerID) domain.GuildID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chars[player].guild
}

func (c *CharacterCache) LevelOf(player domain.PlayerID) uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chars[player].level
}

// EmailOf returns the account email of player, if the account has one.
func (c *CharacterCache) EmailOf(player domain.PlayerID) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.chars[player]
	if !ok || ch.email == "" {
		return "", false
	}
	return ch.email, true
}

// SetGuild records a guild change. Zero means the player left their guild.
func (c *CharacterCache) SetGuild(player domain.PlayerID, guild domain.GuildID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := c.chars[player]
	ch.guild = guild
	c.chars[player] = ch
}

func (c *CharacterCache) SetLevel(player domain.PlayerID, level uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := c.chars[player]
	ch.level = level
	c.chars[player] = ch
}

var (
	_ domain.Directory   = (*CharacterCache)(nil)
	_ domain.AddressBook = (*CharacterCache)(nil)
)

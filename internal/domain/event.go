package domain

import "time"

// PlayerID is the low counter of a character guid. Zero means "nobody" (system actions).
type PlayerID uint64

// GuildID identifies a guild. Zero means "no guild".
type GuildID uint32

// EventID identifies a calendar event. Zero is the "none" sentinel used by pre-invites.
type EventID uint64

// EventType is the kind of activity shown by the client calendar.
type EventType uint8

const (
	EventTypeRaid EventType = iota
	EventTypeDungeon
	EventTypePvP
	EventTypeMeeting
	EventTypeOther
)

// EventFlags is the bit set stored with every event.
type EventFlags uint32

const (
	FlagAllAllowed        EventFlags = 0x001
	FlagInvitesLocked     EventFlags = 0x010
	FlagWithoutInvites    EventFlags = 0x040
	FlagGuildEvent        EventFlags = 0x400
	FlagGuildAnnouncement EventFlags = 0x800
)

// GuildScopeFlags are the flags that tie an event to its creator's guild.
const GuildScopeFlags = FlagGuildEvent | FlagGuildAnnouncement | FlagWithoutInvites

// NoDungeon is the dungeon reference of events that are not bound to an instance.
const NoDungeon int32 = -1

// MaxInvitesPerEvent is advertised to clients in snapshots and update alerts.
const MaxInvitesPerEvent = 100

// RepeatNever is the only repeat option the calendar reports.
const RepeatNever uint8 = 0

// SendEventType tags an Event Snapshot with the reason it was sent.
type SendEventType uint8

const (
	SendEventGet SendEventType = iota
	SendEventAdd
	SendEventCopy
)

// Event is a scheduled calendar activity. Invites are kept apart, keyed by ID.
type Event struct {
	ID           EventID    `json:"id"`
	CreatorID    PlayerID   `json:"creator_id"`
	GuildID      GuildID    `json:"guild_id"`
	Type         EventType  `json:"type"`
	DungeonID    int32      `json:"dungeon_id"`
	Time         time.Time  `json:"time"`
	Flags        EventFlags `json:"flags"`
	TimezoneTime time.Time  `json:"timezone_time"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
}

// NewEvent returns a new Event with the given fields. ID is assigned by the calendar on create.
func NewEvent(creator PlayerID, eventType EventType, dungeonID int32, at time.Time, flags EventFlags, timezoneTime time.Time, title, description string) *Event {
	return &Event{
		CreatorID:    creator,
		Type:         eventType,
		DungeonID:    dungeonID,
		Time:         at,
		Flags:        flags,
		TimezoneTime: timezoneTime,
		Title:        title,
		Description:  description,
	}
}

// IsGuildEvent reports whether the GuildEvent flag is set.
func (e *Event) IsGuildEvent() bool { return e.Flags&FlagGuildEvent != 0 }

// IsGuildAnnouncement reports whether the event is a guild announcement (no stored invites).
func (e *Event) IsGuildAnnouncement() bool { return e.Flags&FlagGuildAnnouncement != 0 }

// IsGuildScoped reports whether the event belongs to a guild and is broadcast to it.
func (e *Event) IsGuildScoped() bool { return e.Flags&GuildScopeFlags != 0 }

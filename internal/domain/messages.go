package domain

import "time"

// Opcode names a calendar message. Encoding to the client wire format belongs to the
// session layer; the calendar only fills the fields in the order clients expect.
type Opcode string

const (
	OpInvite             Opcode = "calendar_event_invite"
	OpInviteAlert        Opcode = "calendar_event_invite_alert"
	OpEventSnapshot      Opcode = "calendar_send_event"
	OpUpdateAlert        Opcode = "calendar_event_updated_alert"
	OpStatus             Opcode = "calendar_event_status"
	OpRemovedAlert       Opcode = "calendar_event_removed_alert"
	OpInviteRemoved      Opcode = "calendar_event_invite_removed"
	OpInviteRemovedAlert Opcode = "calendar_event_invite_removed_alert"
	OpModeratorStatus    Opcode = "calendar_event_moderator_status_alert"
	OpCommandResult      Opcode = "calendar_command_result"
	OpClearPendingAction Opcode = "calendar_clear_pending_action"
)

// Message is one calendar notification.
type Message interface {
	Opcode() Opcode
}

type InviteMessage struct {
	InviteeID     PlayerID
	EventID       EventID
	InviteID      InviteID
	InviteeLevel  uint8
	Status        InviteStatus
	HasStatusTime bool
	StatusTime    time.Time
	IsSignUp      bool
}

func (InviteMessage) Opcode() Opcode { return OpInvite }

type InviteAlertMessage struct {
	EventID   EventID
	Title     string
	Time      time.Time
	Flags     EventFlags
	Type      EventType
	DungeonID int32
	InviteID  InviteID
	Status    InviteStatus
	Rank      ModerationRank
	CreatorID PlayerID
	SenderID  PlayerID
}

func (InviteAlertMessage) Opcode() Opcode { return OpInviteAlert }

// RosterEntry is one invite as listed in an Event Snapshot.
type RosterEntry struct {
	InviteeID  PlayerID
	Level      uint8
	Status     InviteStatus
	Rank       ModerationRank
	SameGuild  bool
	InviteID   InviteID
	StatusTime time.Time
	Text       string
}

type EventSnapshotMessage struct {
	SendType     SendEventType
	CreatorID    PlayerID
	EventID      EventID
	Title        string
	Description  string
	Type         EventType
	Repeat       uint8
	MaxInvites   uint32
	DungeonID    int32
	Flags        EventFlags
	Time         time.Time
	TimezoneTime time.Time
	GuildID      GuildID
	Roster       []RosterEntry
}

func (EventSnapshotMessage) Opcode() Opcode { return OpEventSnapshot }

type UpdateAlertMessage struct {
	EventID     EventID
	OldTime     time.Time
	Flags       EventFlags
	Time        time.Time
	Type        EventType
	DungeonID   int32
	Title       string
	Description string
	Repeat      uint8
	MaxInvites  uint32
}

func (UpdateAlertMessage) Opcode() Opcode { return OpUpdateAlert }

type StatusMessage struct {
	InviteeID  PlayerID
	EventID    EventID
	Time       time.Time
	Flags      EventFlags
	Status     InviteStatus
	Rank       ModerationRank
	StatusTime time.Time
}

func (StatusMessage) Opcode() Opcode { return OpStatus }

type RemovedAlertMessage struct {
	EventID EventID
	Time    time.Time
}

func (RemovedAlertMessage) Opcode() Opcode { return OpRemovedAlert }

type InviteRemovedMessage struct {
	InviteeID PlayerID
	EventID   EventID
	Flags     EventFlags
}

func (InviteRemovedMessage) Opcode() Opcode { return OpInviteRemoved }

type InviteRemovedAlertMessage struct {
	EventID EventID
	Time    time.Time
	Flags   EventFlags
	Status  InviteStatus
}

func (InviteRemovedAlertMessage) Opcode() Opcode { return OpInviteRemovedAlert }

type ModeratorStatusMessage struct {
	InviteeID PlayerID
	EventID   EventID
	Rank      ModerationRank
}

func (ModeratorStatusMessage) Opcode() Opcode { return OpModeratorStatus }

// CommandResultMessage acknowledges a request. Param is only meaningful when Code.HasParam().
type CommandResultMessage struct {
	Code  CommandError
	Param string
}

func (CommandResultMessage) Opcode() Opcode { return OpCommandResult }

type ClearPendingActionMessage struct{}

func (ClearPendingActionMessage) Opcode() Opcode { return OpClearPendingAction }

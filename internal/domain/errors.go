package domain

import "errors"

// Sentinel errors for calendar operations.
var (
	ErrNotFound       = errors.New("not found")
	ErrEventInvalid   = errors.New("calendar event does not exist")
	ErrInviteNotFound = errors.New("calendar invite not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStorageClosed  = errors.New("storage worker is closed")
)

// CommandError is the result code carried by a Command-Result message.
type CommandError uint32

const (
	CommandOK                     CommandError = 0
	CommandGuildEventsExceeded    CommandError = 1
	CommandEventsExceeded         CommandError = 2
	CommandSelfInvitesExceeded    CommandError = 3
	CommandOtherInvitesExceeded   CommandError = 4
	CommandPermissions            CommandError = 5
	CommandEventInvalid           CommandError = 6
	CommandNotInvited             CommandError = 7
	CommandInternal               CommandError = 8
	CommandGuildPlayerNotInGuild  CommandError = 9
	CommandAlreadyInvitedToEventS CommandError = 10
	CommandPlayerNotFound         CommandError = 11
	CommandNotAllied              CommandError = 12
	CommandIgnoringYouS           CommandError = 13
	CommandInvitesExceeded        CommandError = 14
	CommandInvalidDate            CommandError = 16
	CommandInvalidTime            CommandError = 17
	CommandNeedsTitle             CommandError = 19
	CommandEventPassed            CommandError = 20
	CommandEventLocked            CommandError = 21
	CommandDeleteCreatorFailed    CommandError = 22
	CommandSystemDisabled         CommandError = 24
	CommandRestrictedAccount      CommandError = 25
	CommandArenaEventsExceeded    CommandError = 26
	CommandRestrictedLevel        CommandError = 27
	CommandUserSquelched          CommandError = 28
	CommandNoInvite               CommandError = 29
	CommandEventWrongServer       CommandError = 36
	CommandInviteWrongServer      CommandError = 37
	CommandNoGuildInvites         CommandError = 38
	CommandInvalidSignup          CommandError = 39
	CommandNoModerator            CommandError = 40
)

// HasParam reports whether the code carries a supplementary string (player name).
func (c CommandError) HasParam() bool {
	switch c {
	case CommandOtherInvitesExceeded, CommandAlreadyInvitedToEventS, CommandIgnoringYouS:
		return true
	default:
		return false
	}
}

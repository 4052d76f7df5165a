package domain

// Directory answers read-only questions about characters, online or not.
type Directory interface {
	GuildOf(player PlayerID) GuildID
	LevelOf(player PlayerID) uint8
}

// AddressBook resolves the account email of a character, when one is on file.
type AddressBook interface {
	EmailOf(player PlayerID) (string, bool)
}

// Sessions delivers messages to connected players. Sends to players that are not
// connected are dropped; there is no queue and no retry.
type Sessions interface {
	IsConnected(player PlayerID) bool
	SendDirect(player PlayerID, msg Message)
	BroadcastGuild(guild GuildID, msg Message)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

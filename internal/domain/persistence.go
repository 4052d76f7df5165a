package domain

import "context"

// StatementKind selects the durable mutation a Statement performs.
type StatementKind uint8

const (
	StmtUpsertEvent StatementKind = iota + 1
	StmtUpsertInvite
	StmtDeleteEvent
	StmtDeleteInvite
	StmtInsertMail
)

func (k StatementKind) String() string {
	switch k {
	case StmtUpsertEvent:
		return "upsert_event"
	case StmtUpsertInvite:
		return "upsert_invite"
	case StmtDeleteEvent:
		return "delete_event"
	case StmtDeleteInvite:
		return "delete_invite"
	case StmtInsertMail:
		return "insert_mail"
	default:
		return "unknown"
	}
}

// Statement is one row mutation. Upserts carry a copy of the row taken when the
// statement was built, so later in-memory changes never leak into a queued write.
type Statement struct {
	Kind     StatementKind
	Event    Event
	Invite   Invite
	EventID  EventID
	InviteID InviteID
	Mail     MailRecord
}

func UpsertEventStmt(e *Event) Statement { return Statement{Kind: StmtUpsertEvent, Event: *e} }
func UpsertInviteStmt(i *Invite) Statement { return Statement{Kind: StmtUpsertInvite, Invite: *i} }
func DeleteEventStmt(id EventID) Statement { return Statement{Kind: StmtDeleteEvent, EventID: id} }
func DeleteInviteStmt(id InviteID) Statement { return Statement{Kind: StmtDeleteInvite, InviteID: id} }
func InsertMailStmt(m MailRecord) Statement { return Statement{Kind: StmtInsertMail, Mail: m} }

// Transaction groups statements that must reach storage atomically.
// It is built on the owning goroutine and handed to the gateway once complete.
type Transaction struct {
	stmts       []Statement
	afterCommit []func()
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// Append adds a statement to the transaction.
func (t *Transaction) Append(s Statement) {
	t.stmts = append(t.stmts, s)
}

// OnCommit registers fn to run after the storage worker committed the transaction.
// Hooks run on the worker goroutine and must not touch calendar state.
func (t *Transaction) OnCommit(fn func()) {
	t.afterCommit = append(t.afterCommit, fn)
}

func (t *Transaction) Statements() []Statement { return t.stmts }

func (t *Transaction) CommitHooks() []func() { return t.afterCommit }

func (t *Transaction) Len() int { return len(t.stmts) }

// PersistenceGateway accepts durable writes without blocking the caller.
// The returned channel receives exactly one value (nil on commit) and is then closed.
type PersistenceGateway interface {
	Execute(stmt Statement) <-chan error
	Commit(tx *Transaction) <-chan error
}

// CalendarRepository is the synchronous row store behind the gateway.
type CalendarRepository interface {
	LoadEvents(ctx context.Context) ([]*Event, error)
	LoadInvites(ctx context.Context) ([]*Invite, error)
	Apply(ctx context.Context, stmts []Statement) error
}

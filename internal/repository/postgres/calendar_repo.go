package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"guildcalendar/internal/domain"
)

type calendarRepository struct {
	DB *sql.DB
}

func NewCalendarRepository(db *sql.DB) domain.CalendarRepository {
	return &calendarRepository{
		DB: db,
	}
}

// Times are stored as unix seconds; 0 means "not set".
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

func (r *calendarRepository) LoadEvents(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, creator, title, description, type, dungeon, event_time, flags, timezone_time
		FROM calendar_events
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var eventTime, timezoneTime int64
		if err := rows.Scan(&e.ID, &e.CreatorID, &e.Title, &e.Description, &e.Type, &e.DungeonID, &eventTime, &e.Flags, &timezoneTime); err != nil {
			return nil, err
		}
		e.Time = fromUnix(eventTime)
		e.TimezoneTime = fromUnix(timezoneTime)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *calendarRepository) LoadInvites(ctx context.Context) ([]*domain.Invite, error) {
	query := `
		SELECT id, event, invitee, sender, status, status_time, rank, text
		FROM calendar_invites
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invites := make([]*domain.Invite, 0)
	for rows.Next() {
		inv := &domain.Invite{}
		var statusTime int64
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.InviteeID, &inv.SenderID, &inv.Status, &statusTime, &inv.Rank, &inv.Text); err != nil {
			return nil, err
		}
		inv.StatusTime = fromUnix(statusTime)
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// Apply runs stmts in one transaction, in order. Runs of consecutive invite deletes
// are sent as a single statement.
func (r *calendarRepository) Apply(ctx context.Context, stmts []domain.Statement) error {
	if len(stmts) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin calendar tx: %w", err)
	}
	for i := 0; i < len(stmts); {
		n := 1
		if stmts[i].Kind == domain.StmtDeleteInvite {
			for i+n < len(stmts) && stmts[i+n].Kind == domain.StmtDeleteInvite {
				n++
			}
			err = deleteInvites(ctx, tx, stmts[i:i+n])
		} else {
			err = applyOne(ctx, tx, stmts[i])
		}
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", stmts[i].Kind, err)
		}
		i += n
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit calendar tx: %w", err)
	}
	return nil
}

func applyOne(ctx context.Context, tx *sql.Tx, st domain.Statement) error {
	switch st.Kind {
	case domain.StmtUpsertEvent:
		e := st.Event
		_, err := tx.ExecContext(ctx, `
			INSERT INTO calendar_events (id, creator, title, description, type, dungeon, event_time, flags, timezone_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				creator = EXCLUDED.creator, title = EXCLUDED.title, description = EXCLUDED.description,
				type = EXCLUDED.type, dungeon = EXCLUDED.dungeon, event_time = EXCLUDED.event_time,
				flags = EXCLUDED.flags, timezone_time = EXCLUDED.timezone_time
		`, int64(e.ID), int64(e.CreatorID), e.Title, e.Description, int16(e.Type), e.DungeonID, toUnix(e.Time), int64(e.Flags), toUnix(e.TimezoneTime))
		return err
	case domain.StmtUpsertInvite:
		inv := st.Invite
		_, err := tx.ExecContext(ctx, `
			INSERT INTO calendar_invites (id, event, invitee, sender, status, status_time, rank, text)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				event = EXCLUDED.event, invitee = EXCLUDED.invitee, sender = EXCLUDED.sender,
				status = EXCLUDED.status, status_time = EXCLUDED.status_time, rank = EXCLUDED.rank,
				text = EXCLUDED.text
		`, int64(inv.ID), int64(inv.EventID), int64(inv.InviteeID), int64(inv.SenderID), int16(inv.Status), toUnix(inv.StatusTime), int16(inv.Rank), inv.Text)
		return err
	case domain.StmtDeleteEvent:
		_, err := tx.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, int64(st.EventID))
		return err
	case domain.StmtInsertMail:
		m := st.Mail
		_, err := tx.ExecContext(ctx, `
			INSERT INTO mail (receiver, event_id, subject, body, checked, deliver_time, expire_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, int64(m.ReceiverID), int64(m.EventID), m.Subject, m.Body, int16(m.CheckMask), toUnix(m.DeliverAt), toUnix(m.ExpireAt))
		return err
	default:
		return fmt.Errorf("unknown statement kind %d: %w", st.Kind, domain.ErrInvalidInput)
	}
}

func deleteInvites(ctx context.Context, tx *sql.Tx, stmts []domain.Statement) error {
	ids := make([]int64, 0, len(stmts))
	for _, st := range stmts {
		ids = append(ids, int64(st.InviteID))
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM calendar_invites WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

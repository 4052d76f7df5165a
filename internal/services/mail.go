package services

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"guildcalendar/internal/domain"
)

// eventRemovedTemplate is rendered for the email copy of a cancellation mail.
const eventRemovedTemplate = "event_removed"

type mailQueue struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	book     domain.AddressBook
	logger   *slog.Logger
}

// NewMailQueue returns a MailQueue that stores in-game mail rows. When mailer, renderer
// and book are all set, receivers with an email on file also get a copy by email once
// the storage transaction commits.
func NewMailQueue(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, book domain.AddressBook, logger *slog.Logger) domain.MailQueue {
	return &mailQueue{mailer: mailer, renderer: renderer, book: book, logger: logger}
}

func (q *mailQueue) Enqueue(tx *domain.Transaction, rec domain.MailRecord) {
	tx.Append(domain.InsertMailStmt(rec))
	if q.mailer == nil || q.renderer == nil || q.book == nil {
		return
	}
	addr, ok := q.book.EmailOf(rec.ReceiverID)
	if !ok {
		return
	}
	tx.OnCommit(func() {
		if err := q.relay(addr, rec); err != nil {
			q.logger.Warn("relay calendar mail", "receiver_id", rec.ReceiverID, "event_id", rec.EventID, "error", err)
		}
	})
}

func (q *mailQueue) relay(addr string, rec domain.MailRecord) error {
	data, err := eventRemovedData(addr, rec)
	if err != nil {
		return err
	}
	subject, htmlBody, textBody, err := q.renderer.Render(eventRemovedTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", eventRemovedTemplate, err)
	}
	if err := q.mailer.Send(addr, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event removed email: %w", err)
	}
	q.logger.Info("event removed email sent", "receiver_id", rec.ReceiverID, "event_id", rec.EventID)
	return nil
}

// eventRemovedData reads the cancellation mail back into template data. The subject is
// "<remover>:<title>" and the body is the packed event time.
func eventRemovedData(addr string, rec domain.MailRecord) (*domain.EventRemovedEmailData, error) {
	_, title, ok := strings.Cut(rec.Subject, ":")
	if !ok {
		return nil, fmt.Errorf("malformed mail subject %q: %w", rec.Subject, domain.ErrInvalidInput)
	}
	packed, err := strconv.ParseUint(rec.Body, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse mail body: %w", err)
	}
	return &domain.EventRemovedEmailData{
		Email:     addr,
		PlayerID:  rec.ReceiverID,
		EventID:   rec.EventID,
		Title:     title,
		EventTime: domain.UnpackTime(uint32(packed)),
	}, nil
}

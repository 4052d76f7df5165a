package domain

import "time"

// MailCheckMask is the delivery mask stored with an in-game mail record.
type MailCheckMask uint8

const (
	MailCheckNone     MailCheckMask = 0x00
	MailCheckRead     MailCheckMask = 0x01
	MailCheckReturned MailCheckMask = 0x02
	MailCheckCopied   MailCheckMask = 0x04
)

// MailRecord is an in-game mail queued for one player inside a storage transaction.
type MailRecord struct {
	ReceiverID PlayerID
	EventID    EventID
	Subject    string
	Body       string
	CheckMask  MailCheckMask
	DeliverAt  time.Time
	ExpireAt   time.Time
}

// MailQueue enqueues offline notifications as part of a storage transaction.
type MailQueue interface {
	Enqueue(tx *Transaction, rec MailRecord)
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventRemovedEmailData holds data for the event cancellation email.
type EventRemovedEmailData struct {
	Email     string
	PlayerID  PlayerID
	EventID   EventID
	Title     string
	EventTime time.Time
}

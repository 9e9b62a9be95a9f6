// Package mail delivers staff notifications over SMTP. Delivery is
// best-effort: an empty SMTP host turns the notifier into a no-op so local
// and test environments run without a mail server.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"library-api/internal/pkg/config"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"
)

const dateLayout = "2006-01-02"

type Notifier struct {
	cfg config.SMTPConfig
}

func NewNotifier(cfg config.SMTPConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

func (n *Notifier) Notify(ctx context.Context, event string, view *queries.ReservationView, recipients []string) error {
	if n.cfg.Host == "" {
		slog.Debug("smtp host not configured, skipping notification", "event", event)
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "notification cancelled")
	}

	subject, body := renderMessage(event, view)
	msg := buildMessage(n.cfg.From, recipients, subject, body)

	addr := n.cfg.Host + ":" + n.cfg.Port
	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.From, recipients, msg); err != nil {
		return errs.Wrap(err, "failed to send notification mail")
	}
	return nil
}

func renderMessage(event string, view *queries.ReservationView) (subject, body string) {
	period := view.StartDate.Format(dateLayout)
	if view.EndDate != nil {
		period += " to " + view.EndDate.Format(dateLayout)
	}

	switch event {
	case "cancelled":
		subject = fmt.Sprintf("Reservation cancelled: %s", view.BookTitle)
	default:
		subject = fmt.Sprintf("New reservation: %s", view.BookTitle)
	}

	body = fmt.Sprintf(
		"Reservation %s\nBook: %s\nReader: %s (%s)\nPeriod: %s\nStatus: %s\nReserved at: %s\n",
		event, view.BookTitle, view.ReaderName, view.ReaderEmail,
		period, view.Status, view.ReservedAt.Format(time.RFC3339),
	)
	return subject, body
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

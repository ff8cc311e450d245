// Package notify delivers roster change announcements to subscribers.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"radiorsser/internal/models"
)

// Change describes what happened to a station's roster during one
// reconciliation run.
type Change struct {
	StationName string
	New         []models.Program
	Archived    []models.Program
}

// Notifier reports whether delivery was confirmed. The reconciler uses that
// answer to gate deletion of archived programs.
type Notifier interface {
	Notify(recipients []string, change Change) bool
}

// SMTPNotifier sends the announcement as a plain-text email.
type SMTPNotifier struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewSMTP(host, port, from, username, password string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
	}
}

func (n *SMTPNotifier) Notify(recipients []string, change Change) bool {
	if len(recipients) == 0 {
		// Nothing to deliver counts as delivered.
		return true
	}
	if n.host == "" || n.from == "" {
		log.Println("SMTP is not configured, skipping notification")
		return false
	}

	msg := buildMessage(n.from, recipients, change)
	auth := smtp.PlainAuth("", n.username, n.password, n.host)

	if err := smtp.SendMail(n.host+":"+n.port, auth, n.from, recipients, msg); err != nil {
		log.Printf("Failed to send notification for station %s: %v", change.StationName, err)
		return false
	}
	return true
}

func buildMessage(from string, recipients []string, change Change) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s: program list updated\r\n", change.StationName)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	if len(change.New) > 0 {
		b.WriteString("New programs:\r\n")
		for _, p := range change.New {
			fmt.Fprintf(&b, "  - %s (%s)\r\n", p.Title, p.URL)
		}
		b.WriteString("\r\n")
	}
	if len(change.Archived) > 0 {
		b.WriteString("Archived programs:\r\n")
		for _, p := range change.Archived {
			fmt.Fprintf(&b, "  - %s\r\n", p.Title)
		}
	}

	return []byte(b.String())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

// sendFunc matches smtp.SendMail and is swapped out in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers password reset mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	send     sendFunc
	logger   *slog.Logger
}

// NewSMTPMailer creates an SMTPMailer. Auth is skipped when username
// is empty, which fits local relays and test servers.
func NewSMTPMailer(host string, port int, username, password, from string, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		send:     smtp.SendMail,
		logger:   logger.With("component", "mail"),
	}
}

// SendPasswordResetEmail mails the reset link to the given address.
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, to, resetLink string) error {
	if err := ctx.Err(); err != nil {
		return oops.Code("MAIL_SEND_FAILED").Wrap(err)
	}

	msg := buildResetMessage(m.from, to, resetLink)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	if err := m.send(addr, auth, m.from, []string{to}, msg); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("smtp_host", m.host).
			Wrapf(err, "sending password reset mail")
	}

	m.logger.DebugContext(ctx, "password reset mail sent", "smtp_host", m.host)
	return nil
}

func buildResetMessage(from, to, resetLink string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Reset your password\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString("<html><body>")
	b.WriteString("<p>A password reset was requested for your account.</p>")
	fmt.Fprintf(&b, "<p><a href=%q>Reset your password</a></p>", resetLink)
	b.WriteString("<p>The link expires in one hour. If you did not request this, you can ignore this mail.</p>")
	b.WriteString("</body></html>\r\n")
	return []byte(b.String())
}

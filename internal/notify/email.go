package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"movie-recommendation-service/internal/config"
	"movie-recommendation-service/internal/metrics"
)

// ErrNoRecipient is returned when an email notification has no address.
var ErrNoRecipient = errors.New("notification has no recipient address")

const emailBreakerName = "smtp"

// EmailChannel sends notifications over SMTP behind a circuit breaker. With
// no SMTP host configured it only logs the message.
type EmailChannel struct {
	cfg     config.SMTPConfig
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[struct{}]
	send    func(ctx context.Context, to, msg string) error
}

// NewEmailChannel creates an email channel.
func NewEmailChannel(cfg config.SMTPConfig) *EmailChannel {
	c := &EmailChannel{cfg: cfg, timeout: 15 * time.Second}
	c.send = c.sendSMTP

	metrics.CircuitBreakerState.WithLabelValues(emailBreakerName).Set(0)
	c.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        emailBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return c
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Send implements Dispatcher.
func (c *EmailChannel) Send(ctx context.Context, n Notification) error {
	if n.To == "" {
		return ErrNoRecipient
	}
	if !c.cfg.Enabled() {
		slog.Info("SMTP not configured, email logged only",
			"to", n.To, "subject", n.Subject, "user_id", n.UserID)
		return nil
	}

	msg := c.buildMessage(n)
	_, err := c.cb.Execute(func() (struct{}, error) {
		return struct{}{}, c.send(ctx, n.To, msg)
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", n.To, err)
	}
	return nil
}

func (c *EmailChannel) buildMessage(n Notification) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: Movie App <%s>\r\n", c.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", n.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", n.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(n.Body, "\n", "\r\n"))
	return msg.String()
}

func (c *EmailChannel) sendSMTP(ctx context.Context, to, msg string) error {
	addr := net.JoinHostPort(c.cfg.Host, fmt.Sprintf("%d", c.cfg.Port))

	dialer := &net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(c.timeout))
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if c.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if c.cfg.User != "" && c.cfg.Password != "" {
		auth := smtp.PlainAuth("", c.cfg.User, c.cfg.Password, c.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	// the message is accepted once Data is closed
	_ = client.Quit()
	return nil
}

package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/contact"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/osa911/contactrelay/internal/mail"

// Dialer opens the TCP connection to the relay
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Relay delivers submissions through the configured SMTP server
type Relay struct {
	cfg       config.SMTPConfig
	dialer    Dialer
	tlsConfig *tls.Config
	now       func() time.Time
	tracer    trace.Tracer
}

// Option customises a Relay
type Option func(*Relay)

// WithDialer replaces the network dialer
func WithDialer(d Dialer) Option {
	return func(r *Relay) { r.dialer = d }
}

// WithTLSConfig sets the TLS configuration used for STARTTLS.
// ServerName defaults to the relay host when left empty; nil keeps the default.
func WithTLSConfig(c *tls.Config) Option {
	return func(r *Relay) {
		if c != nil {
			r.tlsConfig = c
		}
	}
}

// WithClock overrides the time source used for the Date header
func WithClock(now func() time.Time) Option {
	return func(r *Relay) { r.now = now }
}

// NewRelay captures cfg; later changes to the caller's copy are not observed
func NewRelay(cfg config.SMTPConfig, opts ...Option) *Relay {
	r := &Relay{
		cfg:       cfg,
		dialer:    &net.Dialer{Timeout: cfg.Timeout},
		tlsConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		now:       time.Now,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configured reports whether Send will attempt a connection
func (r *Relay) Configured() bool {
	return r.cfg.Configured()
}

// Send attempts a single delivery of sub. It never panics and never blocks
// longer than the configured SMTP timeout.
func (r *Relay) Send(ctx context.Context, sub contact.Submission) (out Outcome) {
	ctx, span := r.tracer.Start(ctx, "smtp.send", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if p := recover(); p != nil {
			out = transportFailed(fmt.Errorf("smtp session panicked: %v", p))
		}
		span.SetAttributes(attribute.String("smtp.outcome", out.Status.String()))
		if out.Err != nil && out.Status != StatusNotConfigured {
			span.RecordError(out.Err)
			span.SetStatus(codes.Error, out.Err.Error())
		}
		span.End()
	}()

	if !r.cfg.Configured() {
		return notConfigured()
	}
	span.SetAttributes(
		attribute.String("smtp.addr", r.cfg.Addr()),
		attribute.Bool("smtp.auth", r.cfg.HasCredentials()),
	)

	msg := Compose(r.cfg, sub, r.now())
	err := r.session(ctx, func(c *smtp.Client) error {
		if err := c.Mail(r.cfg.From, nil); err != nil {
			return fmt.Errorf("MAIL FROM rejected: %w", err)
		}
		if err := c.Rcpt(r.cfg.To, nil); err != nil {
			return fmt.Errorf("RCPT TO rejected: %w", err)
		}
		w, err := c.Data()
		if err != nil {
			return fmt.Errorf("DATA rejected: %w", err)
		}
		if _, err := msg.WriteTo(w); err != nil {
			_ = w.Close()
			return fmt.Errorf("failed to write message: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("message rejected: %w", err)
		}
		return nil
	})
	if err != nil {
		return transportFailed(err)
	}
	return delivered()
}

// Probe connects, negotiates TLS and authenticates without sending mail
func (r *Relay) Probe(ctx context.Context) error {
	if !r.cfg.Configured() {
		return ErrNotConfigured
	}
	return r.session(ctx, func(c *smtp.Client) error {
		if err := c.Noop(); err != nil {
			return fmt.Errorf("NOOP failed: %w", err)
		}
		return nil
	})
}

// session runs fn inside a bounded, encrypted and optionally authenticated
// SMTP session. The connection is closed on every path. Once fn succeeds the
// message is accepted, so a failing QUIT is not reported.
func (r *Relay) session(ctx context.Context, fn func(c *smtp.Client) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	addr := r.cfg.Addr()
	conn, err := r.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	// Closing the connection unblocks any in-flight command once ctx expires
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if r.tlsConfig != nil {
		tlsConfig = r.tlsConfig.Clone()
	}
	if tlsConfig.ServerName == "" {
		tlsConfig.ServerName = r.cfg.Host
	}

	// NewClientStartTLS greets with EHLO and fails when STARTTLS is not offered
	c, err := smtp.NewClientStartTLS(conn, tlsConfig)
	if err != nil {
		conn.Close()
		return fmt.Errorf("STARTTLS failed: %w", err)
	}
	c.CommandTimeout = r.cfg.Timeout
	c.SubmissionTimeout = r.cfg.Timeout
	defer c.Close()

	if r.cfg.HasCredentials() {
		if err := c.Auth(sasl.NewPlainClient("", r.cfg.Username, r.cfg.Password)); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := fn(c); err != nil {
		return err
	}

	_ = c.Quit()
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deliver sends rendered reports to a recipient through an SMTP
// relay. Delivery is attempted exactly once; retry is a caller decision.
package deliver

import (
	"bytes"
	"context"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/meshintel/compscout/pkg/types"
)

const (
	subject        = "Your Competitor Report is Ready!"
	attachmentName = "Competitor_Report.pdf"

	bodyText = "Hi,\n\nAttached is your generated Competitor Report PDF.\n\nBest regards,\ncompscout"
)

// Dispatcher sends one document to one recipient. Implementations other
// than SMTPDispatcher exist only in tests.
type Dispatcher interface {
	Send(ctx context.Context, doc *types.ReportDocument, recipient string) (time.Time, error)
}

// SMTPDispatcher delivers reports through an outbound mail relay.
type SMTPDispatcher struct {
	cfg types.DeliveryConfig
}

// NewSMTPDispatcher returns a dispatcher for the given relay settings.
func NewSMTPDispatcher(cfg types.DeliveryConfig) *SMTPDispatcher {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 465
		cfg.SSL = true
	}
	if cfg.Username == "" {
		cfg.Username = cfg.Sender
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPDispatcher{cfg: cfg}
}

// ValidateAddress checks that addr is a syntactically well-formed bare
// email address. It runs before any network call is made.
func ValidateAddress(addr string) error {
	parsed, err := netmail.ParseAddress(addr)
	if err != nil {
		return fmt.Errorf("recipient %q: %w: %v", addr, types.ErrValidation, err)
	}
	// Reject display names and surrounding angle brackets; the pipeline
	// deals in bare addresses only.
	if parsed.Name != "" || parsed.Address != strings.TrimSpace(addr) {
		return fmt.Errorf("recipient %q: %w: not a bare address", addr, types.ErrValidation)
	}
	return nil
}

// Send attempts delivery exactly once and returns the delivery timestamp on
// success. Authentication and transport errors surface as ErrDelivery; no
// automatic retry is performed.
func (d *SMTPDispatcher) Send(ctx context.Context, doc *types.ReportDocument, recipient string) (time.Time, error) {
	if err := ValidateAddress(recipient); err != nil {
		return time.Time{}, err
	}

	msg, err := d.buildMessage(doc, recipient)
	if err != nil {
		return time.Time{}, fmt.Errorf("building message: %w: %w", types.ErrDelivery, err)
	}

	opts := []mail.Option{
		mail.WithPort(d.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(d.cfg.Username),
		mail.WithPassword(d.cfg.Password),
		mail.WithTimeout(d.cfg.Timeout),
	}
	if d.cfg.SSL {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(d.cfg.Host, opts...)
	if err != nil {
		return time.Time{}, fmt.Errorf("creating SMTP client: %w: %w", types.ErrDelivery, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return time.Time{}, fmt.Errorf("sending to %s: %w: %w", recipient, types.ErrDelivery, err)
	}

	return time.Now().UTC(), nil
}

// buildMessage assembles the outgoing mail with the report attached.
func (d *SMTPDispatcher) buildMessage(doc *types.ReportDocument, recipient string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(d.cfg.Sender); err != nil {
		return nil, fmt.Errorf("sender %q: %w", d.cfg.Sender, err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, bodyText)
	if err := msg.AttachReader(attachmentName, bytes.NewReader(doc.Bytes)); err != nil {
		return nil, fmt.Errorf("attaching report: %w", err)
	}
	return msg, nil
}

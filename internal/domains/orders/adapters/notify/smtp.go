// Package notify delivers order e-mails to customers.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

var (
	_ ports.Notifier = (*SMTPNotifier)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
	// AppURL prefixes tracking links.
	AppURL  string
	Timeout time.Duration
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPNotifier sends notifications through an SMTP relay.
type SMTPNotifier struct {
	client sender
	from   string
	appURL string
	now    func() time.Time
}

// NewSMTPNotifier builds a go-mail client. No connection is made until the first send.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(timeout),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return newSMTPNotifier(client, cfg.From, cfg.AppURL), nil
}

func newSMTPNotifier(client sender, from, appURL string) *SMTPNotifier {
	return &SMTPNotifier{client: client, from: from, appURL: appURL, now: time.Now}
}

func (n *SMTPNotifier) Notify(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error) {
	if notification.Order == nil || !notification.Order.HasEmail() {
		return nil, ports.ErrNoRecipient
	}
	rendered, err := Render(notification, n.appURL)
	if err != nil {
		return nil, err
	}
	recipient := *notification.Order.Email

	msg := mail.NewMsg()
	if err := msg.FromFormat("Fresh Harvest", n.from); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrNoRecipient, err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextHTML, rendered.HTML)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, fmt.Errorf("send %s for order %s: %w", notification.Kind, notification.Order.ID, err)
	}
	return &domain.NotificationReceipt{
		OrderID:   notification.Order.ID,
		Kind:      notification.Kind,
		Recipient: recipient,
		SentAt:    n.now().UTC(),
	}, nil
}

// LogNotifier records notifications in the log instead of sending them.
type LogNotifier struct {
	logger *slog.Logger
	appURL string
}

func NewLogNotifier(logger *slog.Logger, appURL string) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger, appURL: appURL}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error) {
	if notification.Order == nil || !notification.Order.HasEmail() {
		return nil, ports.ErrNoRecipient
	}
	rendered, err := Render(notification, n.appURL)
	if err != nil {
		return nil, err
	}
	n.logger.InfoContext(ctx, "customer notification",
		slog.String("order.id", notification.Order.ID),
		slog.String("kind", string(notification.Kind)),
		slog.String("to", *notification.Order.Email),
		slog.String("subject", rendered.Subject),
	)
	return &domain.NotificationReceipt{
		OrderID:   notification.Order.ID,
		Kind:      notification.Kind,
		Recipient: *notification.Order.Email,
		SentAt:    time.Now().UTC(),
	}, nil
}

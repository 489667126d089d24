package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/phenrril/codstore/internal/domain"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email mails order alerts to a single staff mailbox over SMTP.
type Email struct {
	from   string
	to     string
	sender mailSender
}

// NewEmail returns nil without an SMTP host or a recipient. from defaults to
// the SMTP user.
func NewEmail(host string, port int, user, password, from, to string) *Email {
	if host == "" || to == "" {
		return nil
	}
	if from == "" {
		from = user
	}
	return &Email{from: from, to: to, sender: gomail.NewDialer(host, port, user, password)}
}

func (e *Email) OrderCreated(ctx context.Context, o *domain.Order) error {
	return e.send(ctx, fmt.Sprintf("طلب جديد %s", o.OrderNumber), orderCreatedText(o))
}

func (e *Email) OrderStatusChanged(ctx context.Context, o *domain.Order, prev domain.OrderStatus) error {
	return e.send(ctx, fmt.Sprintf("تحديث الطلب %s", o.OrderNumber), statusChangedText(o, prev))
}

func (e *Email) send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", e.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := e.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

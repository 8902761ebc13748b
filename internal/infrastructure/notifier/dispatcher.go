package notifier

import (
	"context"
	"net/mail"
	"strings"
	"sync"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

type EmailSender interface {
	SendMail(ctx context.Context, m domain.Mail) error
}

type PushSender interface {
	SendPush(ctx context.Context, token, title, body string) error
}

type ChatSender interface {
	SendChat(ctx context.Context, phone, body string) error
}

// Dispatcher fans a notification out to every channel the target can
// receive on. Channel failures are logged and counted, never returned.
type Dispatcher struct {
	Email   EmailSender
	Push    PushSender
	Chat    ChatSender
	Logger  *zap.Logger
	Metrics *metrics.DrovoMetrics
}

func (d *Dispatcher) Notify(ctx context.Context, target domain.NotificationTarget, subject, body string) domain.DeliveryReport {
	report := domain.DeliveryReport{}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	send := func(channel domain.NotificationChannel, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fn()
			d.record(channel, err)
			mu.Lock()
			report[channel] = err == nil
			mu.Unlock()
		}()
	}

	if d.Email != nil && isEmail(target.Email) {
		send(domain.ChannelEmail, func() error {
			return d.Email.SendMail(ctx, domain.Mail{To: target.Email, Subject: subject, Body: body})
		})
	}
	if d.Push != nil && target.PushOptIn && target.PushToken != "" {
		send(domain.ChannelPush, func() error {
			return d.Push.SendPush(ctx, target.PushToken, subject, body)
		})
	}
	if phone, ok := ChatAddress(target.Phone); d.Chat != nil && ok {
		send(domain.ChannelChat, func() error {
			return d.Chat.SendChat(ctx, phone, subject+"\n\n"+body)
		})
	}

	wg.Wait()
	return report
}

func (d *Dispatcher) record(channel domain.NotificationChannel, err error) {
	if err != nil {
		d.Metrics.RecordNotification(string(channel), "failed")
		if d.Logger != nil {
			d.Logger.Warn("notification channel failed", zap.String("channel", string(channel)), zap.Error(err))
		}
		return
	}
	d.Metrics.RecordNotification(string(channel), "sent")
}

func isEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ChatAddress turns a 10-digit Indian number into the "91"-prefixed form.
func ChatAddress(phone string) (string, bool) {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	switch {
	case domain.IsValidPhone(phone):
		return "91" + phone, true
	case len(phone) == 12 && strings.HasPrefix(phone, "91") && domain.IsValidPhone(phone[2:]):
		return phone, true
	}
	return "", false
}

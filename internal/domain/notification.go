package domain

import "context"

type NotificationTarget struct {
	Name      string
	Email     string
	Phone     string
	PushOptIn bool
	PushToken string
}

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
	ChannelChat  NotificationChannel = "chat"
)

// DeliveryReport records which channels accepted a notification.
type DeliveryReport map[NotificationChannel]bool

func (r DeliveryReport) Any() bool {
	for _, ok := range r {
		if ok {
			return true
		}
	}
	return false
}

type Notifier interface {
	Notify(ctx context.Context, target NotificationTarget, subject, body string) DeliveryReport
}

type Mailer interface {
	SendMail(ctx context.Context, mail Mail) error
}

type Mail struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

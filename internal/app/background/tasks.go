package background

import (
	"context"
	"time"

	"github.com/drovo/drovo-service/internal/usecase"
	"go.uber.org/zap"
)

const healthProbeInterval = 15 * time.Second

type ChatSession interface {
	Run(ctx context.Context)
}

type HealthWatcher interface {
	Watch(ctx context.Context, interval time.Duration, check func(ctx context.Context) error)
}

type BackgroundTasks struct {
	SubscriptionUsecase usecase.SubscriptionUsecase
	ReminderInterval    time.Duration
	ReminderWindow      time.Duration

	// Optional.
	ChatSession ChatSession
	Health      HealthWatcher
	Ping        func(ctx context.Context) error

	Logger *zap.Logger
}

func NewBackgroundTasks(subscriptionUC usecase.SubscriptionUsecase, interval, window time.Duration, logger *zap.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		SubscriptionUsecase: subscriptionUC,
		ReminderInterval:    interval,
		ReminderWindow:      window,
		Logger:              logger,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startSubscriptionReminders(ctx)
	if bt.ChatSession != nil {
		go bt.ChatSession.Run(ctx)
	}
	if bt.Health != nil && bt.Ping != nil {
		go bt.Health.Watch(ctx, healthProbeInterval, bt.Ping)
	}
}

func (bt *BackgroundTasks) startSubscriptionReminders(ctx context.Context) {
	if bt.ReminderInterval <= 0 {
		bt.Logger.Warn("subscription reminders disabled", zap.Duration("interval", bt.ReminderInterval))
		return
	}
	ticker := time.NewTicker(bt.ReminderInterval)
	defer ticker.Stop()

	bt.remind(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.remind(ctx)
		}
	}
}

func (bt *BackgroundTasks) remind(ctx context.Context) {
	sent, err := bt.SubscriptionUsecase.RemindExpiringSubscriptions(ctx, bt.ReminderWindow)
	if err != nil {
		bt.Logger.Error("subscription reminder run failed", zap.Error(err))
		return
	}
	if sent > 0 {
		bt.Logger.Info("subscription reminders sent", zap.Int("count", sent))
	}
}

package background

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drovo/drovo-service/internal/domain"
	shopdto "github.com/drovo/drovo-service/internal/usecase/dto/shop"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type reminderStub struct {
	mu      sync.Mutex
	windows []time.Duration
	err     error
}

func (s *reminderStub) CreateSubscriptionOrder(context.Context, string, domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error) {
	return nil, nil
}

func (s *reminderStub) CreateRenewalOrder(context.Context, string, domain.PlanCode) (*shopdto.SubscriptionOrderOutput, error) {
	return nil, nil
}

func (s *reminderStub) CompleteShopSetup(context.Context, *shopdto.SetupInput) (*domain.Shop, error) {
	return nil, nil
}

func (s *reminderStub) RenewSubscription(context.Context, *shopdto.RenewInput) (*domain.Shop, error) {
	return nil, nil
}

func (s *reminderStub) RemindExpiringSubscriptions(_ context.Context, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = append(s.windows, window)
	return len(s.windows), s.err
}

func (s *reminderStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

type sessionStub struct{ started chan struct{} }

func (s *sessionStub) Run(ctx context.Context) {
	close(s.started)
	<-ctx.Done()
}

func TestStartAllRunsRemindersOnTick(t *testing.T) {
	stub := &reminderStub{}
	bt := NewBackgroundTasks(stub, 10*time.Millisecond, 72*time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bt.StartAll(ctx)

	assert.Eventually(t, func() bool { return stub.calls() >= 2 }, time.Second, 5*time.Millisecond)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, 72*time.Hour, stub.windows[0])
}

func TestReminderErrorsDoNotStopTheLoop(t *testing.T) {
	stub := &reminderStub{err: errors.New("db down")}
	bt := NewBackgroundTasks(stub, 10*time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bt.StartAll(ctx)

	assert.Eventually(t, func() bool { return stub.calls() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestZeroIntervalDisablesReminders(t *testing.T) {
	stub := &reminderStub{}
	bt := NewBackgroundTasks(stub, 0, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bt.StartAll(ctx)

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, stub.calls())
}

func TestStartAllRunsChatSession(t *testing.T) {
	session := &sessionStub{started: make(chan struct{})}
	bt := NewBackgroundTasks(&reminderStub{}, time.Hour, time.Hour, zap.NewNop())
	bt.ChatSession = session

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bt.StartAll(ctx)

	select {
	case <-session.started:
	case <-time.After(time.Second):
		t.Fatal("chat session was not started")
	}
}

package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedTransport struct {
	mu          sync.Mutex
	connectErrs []error
	connects    int
	sendErr     error
	sent        []string
}

func (s *scriptedTransport) Connect(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connects++
	if len(s.connectErrs) == 0 {
		return nil
	}
	err := s.connectErrs[0]
	s.connectErrs = s.connectErrs[1:]
	return err
}

func (s *scriptedTransport) SendText(_ context.Context, to, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		err := s.sendErr
		s.sendErr = nil
		return err
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *scriptedTransport) connectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connects
}

func TestSessionNotReadyFailsFast(t *testing.T) {
	s := NewSession(&scriptedTransport{}, time.Millisecond, time.Millisecond, zap.NewNop(), nil)
	assert.Equal(t, StateDisconnected, s.State())
	assert.ErrorIs(t, s.SendChat(context.Background(), "919876543210", "hi"), ErrSessionNotReady)
}

func TestSessionReconnectsWithBackoff(t *testing.T) {
	transport := &scriptedTransport{connectErrs: []error{errors.New("dial"), errors.New("dial")}}
	s := NewSession(transport, time.Millisecond, 4*time.Millisecond, zap.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.State() == StateReady }, time.Second, time.Millisecond)
	assert.Equal(t, 3, transport.connectCount())

	require.NoError(t, s.SendChat(context.Background(), "919876543210", "hi"))

	cancel()
	<-done
	assert.Equal(t, StateDisconnected, s.State())
}

func TestSessionRejectedTriggersReconnect(t *testing.T) {
	transport := &scriptedTransport{sendErr: ErrSessionRejected}
	s := NewSession(transport, time.Millisecond, time.Millisecond, zap.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	require.Eventually(t, func() bool { return s.State() == StateReady }, time.Second, time.Millisecond)
	assert.ErrorIs(t, s.SendChat(context.Background(), "919876543210", "hi"), ErrSessionRejected)

	require.Eventually(t, func() bool {
		return transport.connectCount() >= 2 && s.State() == StateReady
	}, time.Second, time.Millisecond)
	assert.NoError(t, s.SendChat(context.Background(), "919876543210", "again"))
}

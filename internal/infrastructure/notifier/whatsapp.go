package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

var (
	ErrSessionNotReady = errors.New("chat session not ready")
	ErrSessionRejected = errors.New("chat session credentials rejected")
)

type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnecting
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	}
	return "disconnected"
}

// ChatTransport is the wire side of a chat session.
type ChatTransport interface {
	// Connect checks the session is usable.
	Connect(ctx context.Context) error
	SendText(ctx context.Context, to, body string) error
}

// Session owns the chat connection state. Run supervises it and reconnects
// with exponential backoff; SendChat fails fast unless the session is ready.
type Session struct {
	transport  ChatTransport
	logger     *zap.Logger
	metrics    *metrics.DrovoMetrics
	minBackoff time.Duration
	maxBackoff time.Duration

	mu    sync.RWMutex
	state SessionState
	lost  chan struct{}
}

func NewSession(transport ChatTransport, minBackoff, maxBackoff time.Duration, logger *zap.Logger, m *metrics.DrovoMetrics) *Session {
	if minBackoff <= 0 {
		minBackoff = time.Second
	}
	if maxBackoff < minBackoff {
		maxBackoff = minBackoff
	}
	return &Session{
		transport:  transport,
		logger:     logger,
		metrics:    m,
		minBackoff: minBackoff,
		maxBackoff: maxBackoff,
		lost:       make(chan struct{}, 1),
	}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) setState(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.metrics.SetChatSessionState(int(state))
}

// Run blocks until ctx is done.
func (s *Session) Run(ctx context.Context) {
	backoff := s.minBackoff
	for {
		s.setState(StateConnecting)
		err := s.transport.Connect(ctx)
		if err == nil {
			s.setState(StateReady)
			s.logger.Info("chat session ready")
			backoff = s.minBackoff

			select {
			case <-ctx.Done():
				s.setState(StateDisconnected)
				return
			case <-s.lost:
				s.logger.Warn("chat session lost, reconnecting")
				continue
			}
		}

		s.setState(StateDisconnected)
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn("chat session connect failed", zap.Error(err), zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

func (s *Session) SendChat(ctx context.Context, phone, body string) error {
	if s.State() != StateReady {
		return ErrSessionNotReady
	}
	err := s.transport.SendText(ctx, phone, body)
	if errors.Is(err, ErrSessionRejected) {
		s.markLost()
	}
	return err
}

func (s *Session) markLost() {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return
	}
	s.state = StateDisconnected
	s.mu.Unlock()
	s.metrics.SetChatSessionState(int(StateDisconnected))

	select {
	case s.lost <- struct{}{}:
	default:
	}
}

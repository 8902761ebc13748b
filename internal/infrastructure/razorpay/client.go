package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/drovo/drovo-service/internal/config"
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

type HTTPGateway struct {
	baseURL    string
	keyID      string
	keySecret  string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.DrovoMetrics
}

func NewHTTPGateway(cfg config.Razorpay, logger *zap.Logger, m *metrics.DrovoMetrics) *HTTPGateway {
	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	return &HTTPGateway{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		timeout:    cfg.Timeout,
		retries:    retries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{},
		logger:     logger,
		metrics:    m,
	}
}

// KeyID is the public key the checkout widget needs.
func (g *HTTPGateway) KeyID() string { return g.keyID }

type statusError struct {
	status      int
	description string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway responded %d: %s", e.status, e.description)
}

func (e *statusError) retryable() bool {
	return e.status >= 500 || e.status == http.StatusTooManyRequests
}

// do sends one JSON request with retries on transport errors, 5xx and 429.
// Client errors are returned at once as domain.ErrGateway.
func (g *HTTPGateway) do(ctx context.Context, operation, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= g.retries; attempt++ {
		started := time.Now()
		lastErr = g.attempt(ctx, method, path, body, out)
		if lastErr == nil {
			g.metrics.RecordGatewayRequest(operation, "ok", time.Since(started))
			return nil
		}

		var se *statusError
		if errors.As(lastErr, &se) && !se.retryable() {
			g.metrics.RecordGatewayRequest(operation, "rejected", time.Since(started))
			return fmt.Errorf("%w: %s", domain.ErrGateway, se.description)
		}
		g.metrics.RecordGatewayRequest(operation, "error", time.Since(started))
		g.logger.Warn("gateway request failed",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		if attempt == g.retries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, ctx.Err())
		case <-time.After(g.retryDelay):
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, lastErr)
}

func (g *HTTPGateway) attempt(ctx context.Context, method, path string, body []byte, out any) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	response, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.Unmarshal(responseBodyBytes, out)
	}

	var errorResponse errorResponse
	description := http.StatusText(response.StatusCode)
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err == nil && errorResponse.Error.Description != "" {
		description = errorResponse.Error.Description
	}
	return &statusError{status: response.StatusCode, description: description}
}

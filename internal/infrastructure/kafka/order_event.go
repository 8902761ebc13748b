package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/drovo/drovo-service/internal/domain"
)

// PublishOrderEvent keys messages by shop so a shop's events stay ordered.
func (k *DefaultKafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	return k.Publish(ctx, domain.Message{Key: []byte(event.ShopID), Value: v})
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderEvent(context.Context, domain.OrderEvent) error { return nil }

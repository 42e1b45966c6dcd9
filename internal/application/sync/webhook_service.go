package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
)

// WebhookService manages the webhook subscriptions registered on the
// storefront for this app.
type WebhookService struct {
	platform storefront.Platform
	logger   *zap.Logger
}

// NewWebhookService creates a new webhook management service
func NewWebhookService(platform storefront.Platform, logger *zap.Logger) *WebhookService {
	return &WebhookService{platform: platform, logger: logger}
}

// ListSubscriptions returns the webhook subscriptions registered on the platform
func (s *WebhookService) ListSubscriptions(ctx context.Context) ([]storefront.Webhook, error) {
	return s.platform.ListWebhooks(ctx)
}

// Subscribe registers a callback address for a topic
func (s *WebhookService) Subscribe(ctx context.Context, topic, address string) (*storefront.Webhook, error) {
	wh, err := s.platform.RegisterWebhook(ctx, topic, address)
	if err != nil {
		return nil, err
	}
	s.logger.Info("webhook subscription registered",
		zap.Int64("webhook_id", wh.ID),
		zap.String("topic", wh.Topic),
		zap.String("address", wh.Address))
	return wh, nil
}

// EnsureOrderSubscription registers the orders/create topic at address
// unless an identical subscription already exists. Called at startup so a
// freshly deployed connector starts receiving deliveries without a manual
// subscribe call.
func (s *WebhookService) EnsureOrderSubscription(ctx context.Context, address string) error {
	subs, err := s.platform.ListWebhooks(ctx)
	if err != nil {
		return err
	}
	for _, wh := range subs {
		if wh.Topic == storefront.TopicOrdersCreate && wh.Address == address {
			s.logger.Debug("webhook subscription already present",
				zap.Int64("webhook_id", wh.ID),
				zap.String("address", wh.Address))
			return nil
		}
	}
	_, err = s.Subscribe(ctx, storefront.TopicOrdersCreate, address)
	return err
}

// Unsubscribe removes a webhook subscription
func (s *WebhookService) Unsubscribe(ctx context.Context, id int64) error {
	if err := s.platform.RemoveWebhook(ctx, id); err != nil {
		return err
	}
	s.logger.Info("webhook subscription removed", zap.Int64("webhook_id", id))
	return nil
}

// Package sync contains application services that pull orders and payouts
// from the storefront platform into the local store, both on demand and
// through webhook deliveries.
package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
	"github.com/buffmasterbran/pirani-connector/internal/domain/shared"
	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
)

// OrderService imports storefront orders into the local store.
type OrderService struct {
	platform    storefront.Platform
	orderRepo   order.Repository
	idempotency shared.IdempotencyStore
	idemCfg     shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewOrderService creates a new order sync service
func NewOrderService(
	platform storefront.Platform,
	orderRepo order.Repository,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		platform:    platform,
		orderRepo:   orderRepo,
		idempotency: idempotency,
		idemCfg:     shared.DefaultIdempotencyConfig(),
		logger:      logger,
	}
}

// WithIdempotencyConfig replaces the webhook dedup settings and returns the
// service for chaining. A zero TTL keeps the default.
func (s *OrderService) WithIdempotencyConfig(cfg shared.IdempotencyConfig) *OrderService {
	if cfg.TTL == 0 {
		cfg.TTL = s.idemCfg.TTL
	}
	s.idemCfg = cfg
	return s
}

// ImportResult summarises one import run.
type ImportResult struct {
	// Fetched is how many records the platform returned
	Fetched int
	// Imported is how many records were newly stored
	Imported int
	// Skipped is how many records already existed locally
	Skipped int
}

// ImportOrders fetches recent orders from the platform and stores the ones
// not seen before. Existing orders are left untouched so locally attached
// ERP references survive re-imports.
func (s *OrderService) ImportOrders(ctx context.Context) (*ImportResult, error) {
	orders, err := s.platform.FetchOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching orders: %w", err)
	}

	result := &ImportResult{Fetched: len(orders)}
	for i := range orders {
		inserted, err := s.orderRepo.Save(ctx, &orders[i])
		if err != nil {
			return nil, fmt.Errorf("saving order %d: %w", orders[i].ID, err)
		}
		if inserted {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	s.logger.Info("order import finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ListOrders returns the stored orders, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.orderRepo.List(ctx)
}

// GetOrder returns one stored order
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// LookupOrder finds an order by name, checking the local store first and
// falling back to a platform search. A platform hit is stored before it is
// returned.
func (s *OrderService) LookupOrder(ctx context.Context, name string) (*order.Order, error) {
	o, err := s.orderRepo.FindByName(ctx, name)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, order.ErrOrderNotFound) {
		return nil, err
	}

	o, err = s.platform.FetchOrderByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if _, err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("saving order %d: %w", o.ID, err)
	}
	s.logger.Info("order fetched from platform on lookup",
		zap.Int64("order_id", o.ID),
		zap.String("order_name", o.Name))
	return o, nil
}

// AttachDepositNumber records the ERP deposit an order was booked under
func (s *OrderService) AttachDepositNumber(ctx context.Context, id int64, depositNumber string) error {
	if depositNumber == "" {
		return order.ErrEmptyDepositNumber
	}
	return s.orderRepo.SetERPDepositNumber(ctx, id, depositNumber)
}

// ProcessOrderWebhook handles one order webhook delivery. The signature is
// verified before the body is touched, replayed deliveries are dropped via
// the idempotency store, and a body that does not parse as an order is
// logged and acknowledged rather than failed so the platform does not retry
// it forever.
func (s *OrderService) ProcessOrderWebhook(ctx context.Context, body []byte, signature, deliveryID string) error {
	if err := s.platform.VerifyWebhookSignature(body, signature); err != nil {
		return err
	}

	dedup := s.idemCfg.Enabled && deliveryID != ""
	if dedup {
		seen, err := s.idempotency.IsProcessed(ctx, deliveryID)
		if err != nil {
			// The store being down must not drop deliveries
			s.logger.Warn("idempotency store unavailable, processing anyway",
				zap.String("delivery_id", deliveryID),
				zap.Error(err))
		} else if seen {
			s.logger.Info("duplicate webhook delivery dropped",
				zap.String("delivery_id", deliveryID))
			return nil
		}
	}

	o, err := s.platform.DecodeWebhookOrder(body)
	if err != nil {
		// Retrying the same bytes can never succeed, so record the
		// delivery as handled
		s.logger.Warn("webhook body did not parse as an order",
			zap.String("delivery_id", deliveryID),
			zap.Error(err))
		if dedup {
			s.markDelivered(ctx, deliveryID)
		}
		return nil
	}

	inserted, err := s.orderRepo.Save(ctx, o)
	if err != nil {
		// Deliberately not marked processed: the platform retries failed
		// deliveries and the retry must not be dropped as a duplicate
		return fmt.Errorf("saving webhook order %d: %w", o.ID, err)
	}

	if dedup {
		s.markDelivered(ctx, deliveryID)
	}
	s.logger.Info("order webhook processed",
		zap.Int64("order_id", o.ID),
		zap.String("order_name", o.Name),
		zap.Bool("inserted", inserted))
	return nil
}

func (s *OrderService) markDelivered(ctx context.Context, deliveryID string) {
	if _, err := s.idempotency.MarkProcessed(ctx, deliveryID, s.idemCfg.TTL); err != nil {
		s.logger.Warn("failed to record webhook delivery",
			zap.String("delivery_id", deliveryID),
			zap.Error(err))
	}
}

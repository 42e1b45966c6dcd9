// Package storefront contains the port interface for the e-commerce
// storefront platform the dashboard imports from.
//
// Design Pattern: Ports & Adapters
//   - The port (this interface) is defined here in the domain layer
//   - The adapter (Shopify Admin API client) is in the infrastructure layer
package storefront

import (
	"context"
	"errors"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
)

var (
	ErrNotConfigured    = errors.New("storefront: platform not configured")
	ErrRequestFailed    = errors.New("storefront: platform request failed")
	ErrInvalidResponse  = errors.New("storefront: invalid platform response")
	ErrRateLimited      = errors.New("storefront: platform rate limited")
	ErrOrderNotFound    = errors.New("storefront: order not found on platform")
	ErrInvalidSignature = errors.New("storefront: invalid webhook signature")
)

// TopicOrdersCreate is the subscription topic for new order deliveries.
const TopicOrdersCreate = "orders/create"

// Webhook is a webhook subscription registered on the storefront.
type Webhook struct {
	// ID is the storefront subscription ID
	ID int64
	// Topic is the event topic, e.g. "orders/create"
	Topic string
	// Address is the callback URL the storefront delivers to
	Address string
	// Format is the delivery payload format, normally "json"
	Format string
}

// Platform is the port for fetching records from the storefront. Adapters
// return canonical domain shapes: raw-field leniency (JSON-string-encoded
// arrays) is handled inside the adapter, logged there, and never surfaces
// past this interface.
type Platform interface {
	// FetchOrders pulls recent orders, following pagination
	FetchOrders(ctx context.Context) ([]order.Order, error)

	// FetchOrderByID pulls a single order
	FetchOrderByID(ctx context.Context, id int64) (*order.Order, error)

	// FetchOrderByName searches for an order by its exact name, matched
	// case-insensitively against the platform's search results
	FetchOrderByName(ctx context.Context, name string) (*order.Order, error)

	// FetchPayouts pulls recent payouts, without transactions
	FetchPayouts(ctx context.Context) ([]payout.Payout, error)

	// FetchPayoutTransactions pulls the balance transactions of one payout
	FetchPayoutTransactions(ctx context.Context, payoutID int64) ([]payout.Transaction, error)

	// ListWebhooks lists the webhook subscriptions registered for this app
	ListWebhooks(ctx context.Context) ([]Webhook, error)

	// RegisterWebhook subscribes a callback address to a topic
	RegisterWebhook(ctx context.Context, topic, address string) (*Webhook, error)

	// RemoveWebhook deletes a webhook subscription
	RemoveWebhook(ctx context.Context, id int64) error

	// VerifyWebhookSignature checks a webhook delivery's HMAC signature
	// against the shared secret
	VerifyWebhookSignature(body []byte, signature string) error

	// DecodeWebhookOrder parses the body of an order webhook delivery
	DecodeWebhookOrder(body []byte) (*order.Order, error)
}

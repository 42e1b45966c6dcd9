// Package shopify implements the storefront platform port against the
// Shopify Admin REST API.
package shopify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// errNotFound marks an HTTP 404 from the Admin API
var errNotFound = errors.New("shopify: resource not found")

// Adapter implements the storefront Platform interface for Shopify
type Adapter struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdapter creates a new Shopify adapter with the given configuration
func NewAdapter(config *Config, logger *zap.Logger) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}, nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// FetchOrders pulls recent orders, following Link-header pagination
func (a *Adapter) FetchOrders(ctx context.Context) ([]order.Order, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(a.config.PageSize))
	query.Set("status", "any")
	pageURL := a.buildURL("/orders.json", query)

	var orders []order.Order
	for pageURL != "" {
		body, next, err := a.doRequest(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}

		var page shopifyOrdersResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
		}
		for i := range page.Orders {
			orders = append(orders, a.convertOrder(&page.Orders[i]))
		}
		pageURL = next
	}
	return orders, nil
}

// FetchOrderByID pulls a single order
func (a *Adapter) FetchOrderByID(ctx context.Context, id int64) (*order.Order, error) {
	pageURL := a.buildURL(fmt.Sprintf("/orders/%d.json", id), nil)
	body, _, err := a.doRequest(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: id %d", storefront.ErrOrderNotFound, id)
		}
		return nil, err
	}

	var envelope shopifyOrderResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	converted := a.convertOrder(&envelope.Order)
	return &converted, nil
}

// FetchOrderByName searches for an order by its exact name. The Admin API
// name filter matches loosely, so the result is re-checked for an exact
// case-insensitive match.
func (a *Adapter) FetchOrderByName(ctx context.Context, name string) (*order.Order, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("status", "any")
	pageURL := a.buildURL("/orders.json", query)

	body, _, err := a.doRequest(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	var page shopifyOrdersResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	for i := range page.Orders {
		if strings.EqualFold(page.Orders[i].Name, name) {
			converted := a.convertOrder(&page.Orders[i])
			return &converted, nil
		}
	}
	return nil, fmt.Errorf("%w: name %q", storefront.ErrOrderNotFound, name)
}

// ---------------------------------------------------------------------------
// Payout Operations
// ---------------------------------------------------------------------------

// FetchPayouts pulls recent payouts, following Link-header pagination.
// Transactions are fetched separately per payout.
func (a *Adapter) FetchPayouts(ctx context.Context) ([]payout.Payout, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(a.config.PageSize))
	pageURL := a.buildURL("/shopify_payments/payouts.json", query)

	var payouts []payout.Payout
	for pageURL != "" {
		body, next, err := a.doRequest(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}

		var page shopifyPayoutsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
		}
		for i := range page.Payouts {
			payouts = append(payouts, a.convertPayout(&page.Payouts[i]))
		}
		pageURL = next
	}
	return payouts, nil
}

// FetchPayoutTransactions pulls the balance transactions of one payout
func (a *Adapter) FetchPayoutTransactions(ctx context.Context, payoutID int64) ([]payout.Transaction, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(a.config.PageSize))
	query.Set("payout_id", strconv.FormatInt(payoutID, 10))
	pageURL := a.buildURL("/shopify_payments/balance/transactions.json", query)

	var transactions []payout.Transaction
	for pageURL != "" {
		body, next, err := a.doRequest(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}

		var page shopifyTransactionsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
		}
		for i := range page.Transactions {
			transactions = append(transactions, a.convertTransaction(&page.Transactions[i], payoutID))
		}
		pageURL = next
	}
	return transactions, nil
}

// ---------------------------------------------------------------------------
// Webhook Subscription Operations
// ---------------------------------------------------------------------------

// ListWebhooks lists the webhook subscriptions registered for this app
func (a *Adapter) ListWebhooks(ctx context.Context) ([]storefront.Webhook, error) {
	body, _, err := a.doRequest(ctx, http.MethodGet, a.buildURL("/webhooks.json", nil), nil)
	if err != nil {
		return nil, err
	}

	var envelope shopifyWebhooksResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	webhooks := make([]storefront.Webhook, 0, len(envelope.Webhooks))
	for _, w := range envelope.Webhooks {
		webhooks = append(webhooks, convertWebhook(&w))
	}
	return webhooks, nil
}

// RegisterWebhook subscribes a callback address to a topic
func (a *Adapter) RegisterWebhook(ctx context.Context, topic, address string) (*storefront.Webhook, error) {
	payload, err := json.Marshal(shopifyWebhookCreateRequest{
		Webhook: shopifyWebhookCreatePayload{
			Topic:   topic,
			Address: address,
			Format:  "json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shopify: encoding webhook subscription: %w", err)
	}

	body, _, err := a.doRequest(ctx, http.MethodPost, a.buildURL("/webhooks.json", nil), payload)
	if err != nil {
		return nil, err
	}

	var envelope shopifyWebhookResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	converted := convertWebhook(&envelope.Webhook)
	return &converted, nil
}

// RemoveWebhook deletes a webhook subscription
func (a *Adapter) RemoveWebhook(ctx context.Context, id int64) error {
	_, _, err := a.doRequest(ctx, http.MethodDelete, a.buildURL(fmt.Sprintf("/webhooks/%d.json", id), nil), nil)
	return err
}

// VerifyWebhookSignature checks a delivery's X-Shopify-Hmac-Sha256 header
// value against the shared webhook secret
func (a *Adapter) VerifyWebhookSignature(body []byte, signature string) error {
	mac := hmac.New(sha256.New, []byte(a.config.WebhookSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if signature == "" || !hmac.Equal([]byte(expected), []byte(signature)) {
		return storefront.ErrInvalidSignature
	}
	return nil
}

// DecodeWebhookOrder parses the body of an order webhook delivery. Webhook
// deliveries usually carry the order at the top level, but some relays wrap
// it in a REST-style {"order": {...}} envelope, so both shapes are accepted.
func (a *Adapter) DecodeWebhookOrder(body []byte) (*order.Order, error) {
	var raw struct {
		shopifyOrder
		Order *shopifyOrder `json:"order"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrInvalidResponse, err)
	}
	o := &raw.shopifyOrder
	if o.ID == 0 && raw.Order != nil {
		o = raw.Order
	}
	if o.ID == 0 {
		return nil, fmt.Errorf("%w: webhook body carries no order id", storefront.ErrInvalidResponse)
	}
	converted := a.convertOrder(o)
	return &converted, nil
}

// ---------------------------------------------------------------------------
// HTTP Plumbing
// ---------------------------------------------------------------------------

// buildURL joins a path and query onto the versioned Admin API base URL
func (a *Adapter) buildURL(path string, query url.Values) string {
	u := a.config.APIBaseURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doRequest performs one Admin API request. It returns the response body and
// the next-page URL from the Link header, if any.
func (a *Adapter) doRequest(ctx context.Context, method, rawURL string, payload []byte) ([]byte, string, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", a.config.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", storefront.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, "", fmt.Errorf("%w: retry after %s", storefront.ErrRateLimited, resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", errNotFound
	case resp.StatusCode >= 400:
		return nil, "", fmt.Errorf("%w: HTTP %d", storefront.ErrRequestFailed, resp.StatusCode)
	}

	return body, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" URL from an Admin API Link header.
// The header looks like:
//
//	<https://shop/admin/api/2024-01/orders.json?page_info=abc>; rel="next"
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		if strings.TrimSpace(segments[1]) != `rel="next"` {
			continue
		}
		target := strings.TrimSpace(segments[0])
		target = strings.TrimPrefix(target, "<")
		target = strings.TrimSuffix(target, ">")
		return target
	}
	return ""
}

// ---------------------------------------------------------------------------
// Conversion
// ---------------------------------------------------------------------------

// convertOrder converts a wire order to the canonical domain shape. The two
// array fields arrive either natively or JSON-string-encoded; a field that
// decodes neither way is logged and treated as absent.
func (a *Adapter) convertOrder(raw *shopifyOrder) order.Order {
	gateways, err := order.DecodeStringList(raw.PaymentGatewayNames)
	if err != nil {
		a.logger.Warn("order payment gateway names did not decode, treating as absent",
			zap.Int64("order_id", raw.ID),
			zap.Error(err))
		gateways = nil
	}

	lines, err := order.DecodeShippingLines(raw.ShippingLines)
	if err != nil {
		a.logger.Warn("order shipping lines did not decode, treating as absent",
			zap.Int64("order_id", raw.ID),
			zap.Error(err))
		lines = nil
	}

	return order.Order{
		ID:                  raw.ID,
		Name:                raw.Name,
		FinancialStatus:     raw.FinancialStatus,
		FulfillmentStatus:   raw.FulfillmentStatus,
		TotalPrice:          raw.TotalPrice,
		Currency:            raw.Currency,
		PaymentGatewayNames: gateways,
		ShippingLines:       lines,
		PlacedAt:            a.parseTime(raw.CreatedAt, raw.ID, "created_at"),
	}
}

// convertPayout converts a wire payout to the domain shape
func (a *Adapter) convertPayout(raw *shopifyPayout) payout.Payout {
	return payout.Payout{
		ID:       raw.ID,
		Status:   raw.Status,
		Date:     a.parseTime(raw.Date, raw.ID, "date"),
		Amount:   raw.Amount,
		Currency: raw.Currency,
	}
}

// convertTransaction converts a wire balance transaction to the domain shape
func (a *Adapter) convertTransaction(raw *shopifyBalanceTransaction, payoutID int64) payout.Transaction {
	t := payout.Transaction{
		ID:            raw.ID,
		PayoutID:      raw.PayoutID,
		SourceOrderID: raw.SourceOrderID,
		Type:          raw.Type,
		Amount:        raw.Amount,
		Fee:           raw.Fee,
		Net:           raw.Net,
		Currency:      raw.Currency,
	}
	if t.PayoutID == 0 {
		t.PayoutID = payoutID
	}
	if raw.ProcessedAt != "" {
		t.ProcessedAt = a.parseTime(raw.ProcessedAt, raw.ID, "processed_at")
	}
	return t
}

// convertWebhook converts a wire webhook subscription to the domain shape
func convertWebhook(raw *shopifyWebhook) storefront.Webhook {
	return storefront.Webhook{
		ID:      raw.ID,
		Topic:   raw.Topic,
		Address: raw.Address,
		Format:  raw.Format,
	}
}

// parseTime parses an Admin API timestamp. Payout dates arrive date-only,
// everything else as ISO 8601 with offset. A value that parses neither way
// is logged and comes back zero.
func (a *Adapter) parseTime(value string, recordID int64, field string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	a.logger.Warn("timestamp field did not parse",
		zap.Int64("record_id", recordID),
		zap.String("field", field),
		zap.String("value", value))
	return time.Time{}
}

// Ensure Adapter implements the Platform interface
var _ storefront.Platform = (*Adapter)(nil)

package shopify

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Order Related Types
// ---------------------------------------------------------------------------

// shopifyOrdersResponse is the envelope for GET /orders.json
type shopifyOrdersResponse struct {
	Orders []shopifyOrder `json:"orders"`
}

// shopifyOrderResponse is the envelope for GET /orders/{id}.json
type shopifyOrderResponse struct {
	Order shopifyOrder `json:"order"`
}

// shopifyOrder is an order as delivered by the Admin API or by an order
// webhook. PaymentGatewayNames and ShippingLines stay raw here: the API
// delivers them either as native arrays or as JSON-encoded strings, and the
// conversion layer folds both encodings into the canonical slices.
type shopifyOrder struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	FinancialStatus     string          `json:"financial_status"`
	FulfillmentStatus   string          `json:"fulfillment_status"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	Currency            string          `json:"currency"`
	PaymentGatewayNames json.RawMessage `json:"payment_gateway_names"`
	ShippingLines       json.RawMessage `json:"shipping_lines"`
	CreatedAt           string          `json:"created_at"`
}

// ---------------------------------------------------------------------------
// Payout Related Types
// ---------------------------------------------------------------------------

// shopifyPayoutsResponse is the envelope for
// GET /shopify_payments/payouts.json
type shopifyPayoutsResponse struct {
	Payouts []shopifyPayout `json:"payouts"`
}

// shopifyPayout is a Shopify Payments payout
type shopifyPayout struct {
	ID       int64           `json:"id"`
	Status   string          `json:"status"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// shopifyTransactionsResponse is the envelope for
// GET /shopify_payments/balance/transactions.json
type shopifyTransactionsResponse struct {
	Transactions []shopifyBalanceTransaction `json:"transactions"`
}

// shopifyBalanceTransaction is one balance transaction settled by a payout.
// The API occasionally reports placeholder rows with a zero ID, no source
// order and no processing date; those are delivered as-is and filtered by
// the import pipeline.
type shopifyBalanceTransaction struct {
	ID            int64           `json:"id"`
	PayoutID      int64           `json:"payout_id"`
	Type          string          `json:"type"`
	SourceOrderID int64           `json:"source_order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Net           decimal.Decimal `json:"net"`
	Currency      string          `json:"currency"`
	ProcessedAt   string          `json:"processed_at"`
}

// ---------------------------------------------------------------------------
// Webhook Subscription Types
// ---------------------------------------------------------------------------

// shopifyWebhooksResponse is the envelope for GET /webhooks.json
type shopifyWebhooksResponse struct {
	Webhooks []shopifyWebhook `json:"webhooks"`
}

// shopifyWebhookResponse is the envelope for POST /webhooks.json
type shopifyWebhookResponse struct {
	Webhook shopifyWebhook `json:"webhook"`
}

// shopifyWebhook is a webhook subscription registered on the shop
type shopifyWebhook struct {
	ID      int64  `json:"id"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

// shopifyWebhookCreateRequest is the request body for POST /webhooks.json
type shopifyWebhookCreateRequest struct {
	Webhook shopifyWebhookCreatePayload `json:"webhook"`
}

// shopifyWebhookCreatePayload carries the subscription fields
type shopifyWebhookCreatePayload struct {
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

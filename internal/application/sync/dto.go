package sync

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
)

// ImportResultResponse is the import result representation for API responses
type ImportResultResponse struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ToImportResultResponse converts an import result to its response representation
func ToImportResultResponse(r *ImportResult) ImportResultResponse {
	return ImportResultResponse{
		Fetched:  r.Fetched,
		Imported: r.Imported,
		Skipped:  r.Skipped,
	}
}

// ShippingLineResponse is the shipping line representation for API responses
type ShippingLineResponse struct {
	Code  string          `json:"code"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// OrderResponse is the order representation for API responses
type OrderResponse struct {
	ID                  int64                  `json:"id"`
	Name                string                 `json:"name"`
	FinancialStatus     string                 `json:"financial_status"`
	FulfillmentStatus   string                 `json:"fulfillment_status"`
	TotalPrice          decimal.Decimal        `json:"total_price"`
	Currency            string                 `json:"currency"`
	PaymentGatewayNames []string               `json:"payment_gateway_names"`
	ShippingLines       []ShippingLineResponse `json:"shipping_lines"`
	PlacedAt            time.Time              `json:"placed_at"`
	ERPDepositNumber    string                 `json:"erp_deposit_number,omitempty"`
	ImportedAt          time.Time              `json:"imported_at"`
}

// ToOrderResponse converts a domain order to its response representation
func ToOrderResponse(o *order.Order) OrderResponse {
	lines := make([]ShippingLineResponse, 0, len(o.ShippingLines))
	for _, l := range o.ShippingLines {
		lines = append(lines, ShippingLineResponse{Code: l.Code, Title: l.Title, Price: l.Price})
	}
	gateways := o.PaymentGatewayNames
	if gateways == nil {
		gateways = []string{}
	}
	return OrderResponse{
		ID:                  o.ID,
		Name:                o.Name,
		FinancialStatus:     o.FinancialStatus,
		FulfillmentStatus:   o.FulfillmentStatus,
		TotalPrice:          o.TotalPrice,
		Currency:            o.Currency,
		PaymentGatewayNames: gateways,
		ShippingLines:       lines,
		PlacedAt:            o.PlacedAt,
		ERPDepositNumber:    o.ERPDepositNumber,
		ImportedAt:          o.ImportedAt,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}

// TransactionResponse is the payout transaction representation for API responses
type TransactionResponse struct {
	ID            int64           `json:"id"`
	PayoutID      int64           `json:"payout_id"`
	SourceOrderID int64           `json:"source_order_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Net           decimal.Decimal `json:"net"`
	Currency      string          `json:"currency"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

// PayoutResponse is the payout representation for API responses
type PayoutResponse struct {
	ID           int64                 `json:"id"`
	Status       string                `json:"status"`
	Date         time.Time             `json:"date"`
	Amount       decimal.Decimal       `json:"amount"`
	Currency     string                `json:"currency"`
	Transactions []TransactionResponse `json:"transactions"`
	ImportedAt   time.Time             `json:"imported_at"`
}

// ToPayoutResponse converts a domain payout to its response representation
func ToPayoutResponse(p *payout.Payout) PayoutResponse {
	txns := make([]TransactionResponse, 0, len(p.Transactions))
	for _, t := range p.Transactions {
		txns = append(txns, TransactionResponse{
			ID:            t.ID,
			PayoutID:      t.PayoutID,
			SourceOrderID: t.SourceOrderID,
			Type:          t.Type,
			Amount:        t.Amount,
			Fee:           t.Fee,
			Net:           t.Net,
			Currency:      t.Currency,
			ProcessedAt:   t.ProcessedAt,
		})
	}
	return PayoutResponse{
		ID:           p.ID,
		Status:       p.Status,
		Date:         p.Date,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Transactions: txns,
		ImportedAt:   p.ImportedAt,
	}
}

// ToPayoutResponses converts a slice of domain payouts
func ToPayoutResponses(payouts []payout.Payout) []PayoutResponse {
	responses := make([]PayoutResponse, 0, len(payouts))
	for i := range payouts {
		responses = append(responses, ToPayoutResponse(&payouts[i]))
	}
	return responses
}

// SettingResponse is the payout setting representation for API responses
type SettingResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ERPAccountID string    `json:"erp_account_id,omitempty"`
	Type         string    `json:"type"`
	DefaultValue string    `json:"default_value"`
	CurrentValue string    `json:"current_value"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToSettingResponse converts a domain setting to its response representation
func ToSettingResponse(s *payout.Setting) SettingResponse {
	return SettingResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		Description:  s.Description,
		ERPAccountID: s.ERPAccountID,
		Type:         s.Type,
		DefaultValue: s.DefaultValue,
		CurrentValue: s.CurrentValue,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToSettingResponses converts a slice of domain settings
func ToSettingResponses(settings []payout.Setting) []SettingResponse {
	responses := make([]SettingResponse, 0, len(settings))
	for i := range settings {
		responses = append(responses, ToSettingResponse(&settings[i]))
	}
	return responses
}

// WebhookResponse is the webhook subscription representation for API responses
type WebhookResponse struct {
	ID      int64  `json:"id"`
	Topic   string `json:"topic"`
	Address string `json:"address"`
	Format  string `json:"format"`
}

// ToWebhookResponse converts a webhook subscription to its response representation
func ToWebhookResponse(w *storefront.Webhook) WebhookResponse {
	return WebhookResponse{ID: w.ID, Topic: w.Topic, Address: w.Address, Format: w.Format}
}

// ToWebhookResponses converts a slice of webhook subscriptions
func ToWebhookResponses(webhooks []storefront.Webhook) []WebhookResponse {
	responses := make([]WebhookResponse, 0, len(webhooks))
	for i := range webhooks {
		responses = append(responses, ToWebhookResponse(&webhooks[i]))
	}
	return responses
}

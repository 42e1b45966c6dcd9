package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name: "valid config",
			config: &Config{
				ShopDomain:    "acme.myshopify.com",
				AccessToken:   "shpat_test_token",
				WebhookSecret: "whsec_test_secret",
			},
			wantErr: nil,
		},
		{
			name: "missing shop domain",
			config: &Config{
				AccessToken:   "shpat_test_token",
				WebhookSecret: "whsec_test_secret",
			},
			wantErr: ErrConfigMissingShopDomain,
		},
		{
			name: "missing access token",
			config: &Config{
				ShopDomain:    "acme.myshopify.com",
				WebhookSecret: "whsec_test_secret",
			},
			wantErr: ErrConfigMissingAccessToken,
		},
		{
			name: "missing webhook secret",
			config: &Config{
				ShopDomain:  "acme.myshopify.com",
				AccessToken: "shpat_test_token",
			},
			wantErr: ErrConfigMissingWebhookSecret,
		},
		{
			name: "page size above API maximum",
			config: &Config{
				ShopDomain:    "acme.myshopify.com",
				AccessToken:   "shpat_test_token",
				WebhookSecret: "whsec_test_secret",
				PageSize:      500,
			},
			wantErr: ErrConfigInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				// Check defaults are set
				assert.Equal(t, DefaultAPIVersion, tt.config.APIVersion)
				assert.Equal(t, DefaultPageSize, tt.config.PageSize)
				assert.Equal(t, DefaultTimeout, tt.config.Timeout)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	config := NewConfig("acme.myshopify.com", "shpat_test_token", "whsec_test_secret")
	assert.Equal(t, "acme.myshopify.com", config.ShopDomain)
	assert.Equal(t, "shpat_test_token", config.AccessToken)
	assert.Equal(t, "whsec_test_secret", config.WebhookSecret)
	assert.Equal(t, "https://acme.myshopify.com/admin/api/"+DefaultAPIVersion, config.APIBaseURL())
}

func TestNewAdapter(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		adapter, err := NewAdapter(NewConfig("acme.myshopify.com", "shpat_test_token", "whsec_test_secret"), nil)
		require.NoError(t, err)
		assert.NotNil(t, adapter)
	})

	t.Run("invalid config", func(t *testing.T) {
		adapter, err := NewAdapter(&Config{}, nil)
		assert.Error(t, err)
		assert.Nil(t, adapter)
	})
}

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func newTestAdapter(t *testing.T, serverURL string) *Adapter {
	t.Helper()
	config := NewConfig("acme.myshopify.com", "shpat_test_token", "whsec_test_secret")
	config.BaseURL = serverURL
	config.PageSize = 2
	adapter, err := NewAdapter(config, nil)
	require.NoError(t, err)
	return adapter
}

func newMockShopifyServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shpat_test_token", r.Header.Get("X-Shopify-Access-Token"))
		handler(w, r)
	}))
}

// ---------------------------------------------------------------------------
// Order Fetching Tests
// ---------------------------------------------------------------------------

func TestAdapter_FetchOrders(t *testing.T) {
	t.Run("follows pagination", func(t *testing.T) {
		var server *httptest.Server
		server = newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders.json", r.URL.Path)
			if r.URL.Query().Get("page_info") == "" {
				assert.Equal(t, "2", r.URL.Query().Get("limit"))
				assert.Equal(t, "any", r.URL.Query().Get("status"))
				w.Header().Set("Link", fmt.Sprintf(`<%s/orders.json?page_info=next-page>; rel="next"`, server.URL))
				fmt.Fprint(w, `{"orders": [
					{"id": 1001, "name": "#1001", "financial_status": "paid",
					 "total_price": "49.90", "currency": "USD",
					 "payment_gateway_names": ["shopify_payments"],
					 "shipping_lines": [{"code": "dhl", "title": "DHL", "price": "5.00"}],
					 "created_at": "2024-03-01T10:00:00-05:00"},
					{"id": 1002, "name": "#1002", "financial_status": "pending",
					 "total_price": "10.00", "currency": "USD",
					 "payment_gateway_names": "[\"manual\"]",
					 "shipping_lines": "[]",
					 "created_at": "2024-03-02T11:00:00-05:00"}
				]}`)
				return
			}
			assert.Equal(t, "next-page", r.URL.Query().Get("page_info"))
			fmt.Fprint(w, `{"orders": [
				{"id": 1003, "name": "#1003", "financial_status": "paid",
				 "total_price": "15.00", "currency": "USD",
				 "payment_gateway_names": ["gift_card"],
				 "created_at": "2024-03-03T09:00:00-05:00"}
			]}`)
		})
		defer server.Close()

		orders, err := newTestAdapter(t, server.URL).FetchOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 3)

		assert.Equal(t, int64(1001), orders[0].ID)
		assert.Equal(t, "#1001", orders[0].Name)
		assert.True(t, decimal.NewFromFloat(49.90).Equal(orders[0].TotalPrice))
		assert.Equal(t, "shopify_payments", orders[0].PaymentMethod())
		assert.Equal(t, "dhl", orders[0].ShipmentMethod())
		assert.Equal(t, 2024, orders[0].PlacedAt.Year())

		// String-encoded array fields decode the same as native ones
		assert.Equal(t, "manual", orders[1].PaymentMethod())
		assert.Empty(t, orders[1].ShippingLines)
		assert.Equal(t, "gift_card", orders[2].PaymentMethod())
	})

	t.Run("malformed array field treated as absent", func(t *testing.T) {
		server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"orders": [
				{"id": 1004, "name": "#1004", "total_price": "20.00", "currency": "USD",
				 "payment_gateway_names": "not json",
				 "created_at": "2024-03-04T09:00:00-05:00"}
			]}`)
		})
		defer server.Close()

		orders, err := newTestAdapter(t, server.URL).FetchOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Empty(t, orders[0].PaymentGatewayNames)
	})

	t.Run("server error", func(t *testing.T) {
		server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, err := newTestAdapter(t, server.URL).FetchOrders(context.Background())
		assert.ErrorIs(t, err, storefront.ErrRequestFailed)
	})

	t.Run("rate limited", func(t *testing.T) {
		server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "2.0")
			w.WriteHeader(http.StatusTooManyRequests)
		})
		defer server.Close()

		_, err := newTestAdapter(t, server.URL).FetchOrders(context.Background())
		assert.ErrorIs(t, err, storefront.ErrRateLimited)
	})
}

func TestAdapter_FetchOrderByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/1001.json", r.URL.Path)
			fmt.Fprint(w, `{"order": {"id": 1001, "name": "#1001", "financial_status": "paid",
				"total_price": "49.90", "currency": "USD",
				"payment_gateway_names": ["shopify_payments"],
				"created_at": "2024-03-01T10:00:00-05:00"}}`)
		})
		defer server.Close()

		fetched, err := newTestAdapter(t, server.URL).FetchOrderByID(context.Background(), 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(1001), fetched.ID)
		assert.Equal(t, "paid", fetched.FinancialStatus)
	})

	t.Run("not found", func(t *testing.T) {
		server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer server.Close()

		_, err := newTestAdapter(t, server.URL).FetchOrderByID(context.Background(), 9999)
		assert.ErrorIs(t, err, storefront.ErrOrderNotFound)
	})
}

func TestAdapter_FetchOrderByName(t *testing.T) {
	server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "#1001", r.URL.Query().Get("name"))
		// The API name filter matches loosely and can return near misses
		fmt.Fprint(w, `{"orders": [
			{"id": 1010, "name": "#10010", "total_price": "1.00", "currency": "USD",
			 "created_at": "2024-03-01T10:00:00-05:00"},
			{"id": 1001, "name": "#1001", "total_price": "49.90", "currency": "USD",
			 "created_at": "2024-03-01T10:00:00-05:00"}
		]}`)
	})
	defer server.Close()

	t.Run("exact match wins over near miss", func(t *testing.T) {
		fetched, err := newTestAdapter(t, server.URL).FetchOrderByName(context.Background(), "#1001")
		require.NoError(t, err)
		assert.Equal(t, int64(1001), fetched.ID)
	})

	t.Run("no exact match", func(t *testing.T) {
		empty := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"orders": []}`)
		})
		defer empty.Close()

		_, err := newTestAdapter(t, empty.URL).FetchOrderByName(context.Background(), "#1001")
		assert.ErrorIs(t, err, storefront.ErrOrderNotFound)
	})
}

// ---------------------------------------------------------------------------
// Payout Fetching Tests
// ---------------------------------------------------------------------------

func TestAdapter_FetchPayouts(t *testing.T) {
	server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shopify_payments/payouts.json", r.URL.Path)
		fmt.Fprint(w, `{"payouts": [
			{"id": 5001, "status": "paid", "date": "2024-03-01", "amount": "120.50", "currency": "USD"},
			{"id": 5002, "status": "in_transit", "date": "2024-03-02", "amount": "80.00", "currency": "USD"}
		]}`)
	})
	defer server.Close()

	payouts, err := newTestAdapter(t, server.URL).FetchPayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 2)

	assert.Equal(t, int64(5001), payouts[0].ID)
	assert.Equal(t, "paid", payouts[0].Status)
	assert.True(t, decimal.NewFromFloat(120.50).Equal(payouts[0].Amount))
	assert.Equal(t, time.March, payouts[0].Date.Month())
	assert.Empty(t, payouts[0].Transactions)
}

func TestAdapter_FetchPayoutTransactions(t *testing.T) {
	server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shopify_payments/balance/transactions.json", r.URL.Path)
		assert.Equal(t, "5001", r.URL.Query().Get("payout_id"))
		// The second row is a placeholder the storefront sometimes reports;
		// it is delivered as-is and filtered by the import pipeline
		fmt.Fprint(w, `{"transactions": [
			{"id": 9001, "type": "charge", "source_order_id": 1001,
			 "amount": "49.90", "fee": "1.50", "net": "48.40", "currency": "USD",
			 "processed_at": "2024-03-01T12:00:00-05:00"},
			{"id": 0, "type": "payout", "source_order_id": 0,
			 "amount": "-120.50", "fee": "0.00", "net": "-120.50", "currency": "USD",
			 "processed_at": ""}
		]}`)
	})
	defer server.Close()

	transactions, err := newTestAdapter(t, server.URL).FetchPayoutTransactions(context.Background(), 5001)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, int64(9001), transactions[0].ID)
	assert.Equal(t, int64(5001), transactions[0].PayoutID)
	assert.Equal(t, int64(1001), transactions[0].SourceOrderID)
	assert.True(t, transactions[0].IsComplete())

	assert.False(t, transactions[1].IsComplete())
}

// ---------------------------------------------------------------------------
// Webhook Subscription Tests
// ---------------------------------------------------------------------------

func TestAdapter_ListWebhooks(t *testing.T) {
	server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhooks.json", r.URL.Path)
		fmt.Fprint(w, `{"webhooks": [
			{"id": 42, "topic": "orders/create", "address": "https://connector.example.com/webhooks/orders", "format": "json"}
		]}`)
	})
	defer server.Close()

	webhooks, err := newTestAdapter(t, server.URL).ListWebhooks(context.Background())
	require.NoError(t, err)
	require.Len(t, webhooks, 1)
	assert.Equal(t, int64(42), webhooks[0].ID)
	assert.Equal(t, "orders/create", webhooks[0].Topic)
}

func TestAdapter_RegisterWebhook(t *testing.T) {
	server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webhooks.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req shopifyWebhookCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "orders/create", req.Webhook.Topic)
		assert.Equal(t, "json", req.Webhook.Format)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"webhook": {"id": 42, "topic": %q, "address": %q, "format": "json"}}`,
			req.Webhook.Topic, req.Webhook.Address)
	})
	defer server.Close()

	webhook, err := newTestAdapter(t, server.URL).RegisterWebhook(
		context.Background(), "orders/create", "https://connector.example.com/webhooks/orders")
	require.NoError(t, err)
	assert.Equal(t, int64(42), webhook.ID)
	assert.Equal(t, "https://connector.example.com/webhooks/orders", webhook.Address)
}

func TestAdapter_RemoveWebhook(t *testing.T) {
	server := newMockShopifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/webhooks/42.json", r.URL.Path)
		fmt.Fprint(w, `{}`)
	})
	defer server.Close()

	err := newTestAdapter(t, server.URL).RemoveWebhook(context.Background(), 42)
	assert.NoError(t, err)
}

// ---------------------------------------------------------------------------
// Webhook Delivery Tests
// ---------------------------------------------------------------------------

func TestAdapter_VerifyWebhookSignature(t *testing.T) {
	adapter, err := NewAdapter(NewConfig("acme.myshopify.com", "shpat_test_token", "whsec_test_secret"), nil)
	require.NoError(t, err)

	body := []byte(`{"id": 1001, "name": "#1001"}`)
	mac := hmac.New(sha256.New, []byte("whsec_test_secret"))
	mac.Write(body)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, adapter.VerifyWebhookSignature(body, signature))
	})

	t.Run("tampered body", func(t *testing.T) {
		err := adapter.VerifyWebhookSignature([]byte(`{"id": 1002}`), signature)
		assert.ErrorIs(t, err, storefront.ErrInvalidSignature)
	})

	t.Run("empty signature", func(t *testing.T) {
		err := adapter.VerifyWebhookSignature(body, "")
		assert.ErrorIs(t, err, storefront.ErrInvalidSignature)
	})
}

func TestAdapter_DecodeWebhookOrder(t *testing.T) {
	adapter, err := NewAdapter(NewConfig("acme.myshopify.com", "shpat_test_token", "whsec_test_secret"), nil)
	require.NoError(t, err)

	t.Run("top level order with string-encoded fields", func(t *testing.T) {
		decoded, err := adapter.DecodeWebhookOrder([]byte(`{
			"id": 1001, "name": "#1001", "financial_status": "paid",
			"total_price": "49.90", "currency": "USD",
			"payment_gateway_names": "[\"shopify_payments\"]",
			"shipping_lines": "[{\"code\": \"dhl\", \"title\": \"DHL\", \"price\": \"5.00\"}]",
			"created_at": "2024-03-01T10:00:00-05:00"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1001), decoded.ID)
		assert.Equal(t, "shopify_payments", decoded.PaymentMethod())
		assert.Equal(t, "dhl", decoded.ShipmentMethod())
	})

	t.Run("order wrapped in a REST-style envelope", func(t *testing.T) {
		decoded, err := adapter.DecodeWebhookOrder([]byte(`{"order": {
			"id": 1002, "name": "#1002", "financial_status": "paid",
			"total_price": "12.50", "currency": "USD",
			"created_at": "2024-03-01T10:00:00-05:00"}}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1002), decoded.ID)
		assert.Equal(t, "#1002", decoded.Name)
	})

	t.Run("unparseable body", func(t *testing.T) {
		_, err := adapter.DecodeWebhookOrder([]byte(`<html>not json</html>`))
		assert.ErrorIs(t, err, storefront.ErrInvalidResponse)
	})

	t.Run("body without order id", func(t *testing.T) {
		_, err := adapter.DecodeWebhookOrder([]byte(`{"kind": "ping"}`))
		assert.ErrorIs(t, err, storefront.ErrInvalidResponse)
	})
}

// ---------------------------------------------------------------------------
// Pagination Tests
// ---------------------------------------------------------------------------

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "next only",
			header: `<https://acme.myshopify.com/admin/api/2024-01/orders.json?page_info=abc>; rel="next"`,
			want:   "https://acme.myshopify.com/admin/api/2024-01/orders.json?page_info=abc",
		},
		{
			name: "previous and next",
			header: `<https://acme.myshopify.com/orders.json?page_info=prev>; rel="previous", ` +
				`<https://acme.myshopify.com/orders.json?page_info=next>; rel="next"`,
			want: "https://acme.myshopify.com/orders.json?page_info=next",
		},
		{
			name:   "previous only",
			header: `<https://acme.myshopify.com/orders.json?page_info=prev>; rel="previous"`,
			want:   "",
		},
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPageURL(tt.header))
		})
	}
}

package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	syncapp "github.com/buffmasterbran/pirani-connector/internal/application/sync"
)

// Shopify webhook delivery headers
const (
	// HeaderWebhookSignature carries the HMAC-SHA256 of the raw body
	HeaderWebhookSignature = "X-Shopify-Hmac-Sha256"
	// HeaderWebhookDeliveryID uniquely identifies one delivery attempt
	HeaderWebhookDeliveryID = "X-Shopify-Webhook-Id"
)

// WebhookHandler handles the webhook intake endpoint and the subscription
// management endpoints
type WebhookHandler struct {
	BaseHandler
	orderService   *syncapp.OrderService
	webhookService *syncapp.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(orderService *syncapp.OrderService, webhookService *syncapp.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		orderService:   orderService,
		webhookService: webhookService,
	}
}

// SubscribeRequest represents a request to register a webhook subscription
type SubscribeRequest struct {
	Topic   string `json:"topic" binding:"required,min=1"`
	Address string `json:"address" binding:"required,url"`
}

// ---------------------------------------------------------------------------
// Intake
// ---------------------------------------------------------------------------

// ReceiveOrder is the intake endpoint the storefront delivers order events
// to. The raw body is read before any decoding because the signature covers
// the exact bytes on the wire. Anything past signature verification is
// acknowledged with 200 so the platform does not retry deliveries we have
// already decided to drop.
func (h *WebhookHandler) ReceiveOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(HeaderWebhookSignature)
	deliveryID := c.GetHeader(HeaderWebhookDeliveryID)

	if err := h.orderService.ProcessOrderWebhook(c.Request.Context(), body, signature, deliveryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"received": true})
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

// ListSubscriptions returns the webhook subscriptions registered on the platform
func (h *WebhookHandler) ListSubscriptions(c *gin.Context) {
	webhooks, err := h.webhookService.ListSubscriptions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToWebhookResponses(webhooks))
}

// Subscribe registers a callback address for a topic
func (h *WebhookHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	wh, err := h.webhookService.Subscribe(c.Request.Context(), req.Topic, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, syncapp.ToWebhookResponse(wh))
}

// Unsubscribe removes a webhook subscription
func (h *WebhookHandler) Unsubscribe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID format")
		return
	}

	if err := h.webhookService.Unsubscribe(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

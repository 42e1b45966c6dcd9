package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	syncapp "github.com/buffmasterbran/pirani-connector/internal/application/sync"
)

// PayoutHandler handles payout sync and payout settings API endpoints
type PayoutHandler struct {
	BaseHandler
	payoutService *syncapp.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(payoutService *syncapp.PayoutService) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// CreateSettingRequest represents a request to create a payout setting
type CreateSettingRequest struct {
	Name         string `json:"name" binding:"required,min=1"`
	Type         string `json:"type" binding:"required,min=1"`
	Value        string `json:"value" binding:"required,min=1"`
	ERPAccountID string `json:"erp_account_id" binding:"omitempty,max=50"`
	Description  string `json:"description"`
}

// UpdateSettingValueRequest represents a request to override a setting value
type UpdateSettingValueRequest struct {
	Value string `json:"value" binding:"required,min=1"`
}

// ---------------------------------------------------------------------------
// Payouts
// ---------------------------------------------------------------------------

// Import pulls recent payouts and their transactions from the storefront
func (h *PayoutHandler) Import(c *gin.Context) {
	result, err := h.payoutService.ImportPayouts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToImportResultResponse(result))
}

// List returns the stored payouts with transactions, newest date first
func (h *PayoutHandler) List(c *gin.Context) {
	payouts, err := h.payoutService.ListPayouts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToPayoutResponses(payouts))
}

// GetByID returns a stored payout by its storefront ID
func (h *PayoutHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid payout ID format")
		return
	}

	p, err := h.payoutService.GetPayout(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToPayoutResponse(p))
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// ListSettings returns every payout setting, ordered by name
func (h *PayoutHandler) ListSettings(c *gin.Context) {
	settings, err := h.payoutService.ListSettings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToSettingResponses(settings))
}

// CreateSetting creates a new payout setting
func (h *PayoutHandler) CreateSetting(c *gin.Context) {
	var req CreateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.payoutService.CreateSetting(c.Request.Context(), syncapp.CreateSettingInput{
		Name:         req.Name,
		Type:         req.Type,
		Value:        req.Value,
		ERPAccountID: req.ERPAccountID,
		Description:  req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, syncapp.ToSettingResponse(setting))
}

// UpdateSettingValue overrides a setting's current value
func (h *PayoutHandler) UpdateSettingValue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid setting ID format")
		return
	}

	var req UpdateSettingValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	setting, err := h.payoutService.UpdateSettingValue(c.Request.Context(), id, req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToSettingResponse(setting))
}

// RevertSetting restores a setting's current value to its default
func (h *PayoutHandler) RevertSetting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid setting ID format")
		return
	}

	setting, err := h.payoutService.RevertSetting(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToSettingResponse(setting))
}

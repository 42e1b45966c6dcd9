package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	syncapp "github.com/buffmasterbran/pirani-connector/internal/application/sync"
)

// OrderHandler handles order sync API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *syncapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *syncapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// AttachDepositRequest represents a request to record the ERP deposit an
// order landed on
type AttachDepositRequest struct {
	DepositNumber string `json:"deposit_number" binding:"required,min=1"`
}

// Import pulls recent orders from the storefront into the local store
func (h *OrderHandler) Import(c *gin.Context) {
	result, err := h.orderService.ImportOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToImportResultResponse(result))
}

// List returns the stored orders, newest placement first
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToOrderResponses(orders))
}

// GetByID returns a stored order by its storefront ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToOrderResponse(o))
}

// Lookup finds an order by its exact name, checking the local store first
// and falling back to a storefront search
func (h *OrderHandler) Lookup(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		h.BadRequest(c, "Query parameter 'name' is required")
		return
	}

	o, err := h.orderService.LookupOrder(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, syncapp.ToOrderResponse(o))
}

// AttachDeposit records the ERP deposit number an order was posted to
func (h *OrderHandler) AttachDeposit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req AttachDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.orderService.AttachDepositNumber(c.Request.Context(), id, req.DepositNumber); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

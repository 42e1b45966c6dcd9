package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mappingapp "github.com/buffmasterbran/pirani-connector/internal/application/mapping"
	"github.com/buffmasterbran/pirani-connector/internal/domain/mapping"
)

// MappingHandler handles mapping table API endpoints
type MappingHandler struct {
	BaseHandler
	mappingService *mappingapp.MappingService
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(mappingService *mappingapp.MappingService) *MappingHandler {
	return &MappingHandler{
		mappingService: mappingService,
	}
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateEntryRequest represents a request to create a mapping entry.
// Exactly one of source_code and source_fixed_value must be supplied:
// source_code creates a coded entry, source_fixed_value a fixed one.
type CreateEntryRequest struct {
	SourceCode       string `json:"source_code" binding:"omitempty,min=1"`
	SourceFixedValue string `json:"source_fixed_value" binding:"omitempty,min=1"`
	TargetID         string `json:"target_id" binding:"required,min=1"`
}

// UpdateEntryRequest represents a partial update to a mapping entry
type UpdateEntryRequest struct {
	TargetID      *string `json:"target_id" binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active"`
	Kind          *string `json:"kind" binding:"omitempty,min=1"`
	CustomFieldID *string `json:"custom_field_id"`
}

// SetDefaultRequest represents a request to set a category's fallback pair
type SetDefaultRequest struct {
	SourceValue string `json:"source_value"`
	TargetValue string `json:"target_value" binding:"required,min=1"`
}

// CategoryResponse represents a mapping category in API responses
type CategoryResponse struct {
	Category    mapping.Category `json:"category"`
	DisplayName string           `json:"display_name"`
}

// ---------------------------------------------------------------------------
// Category catalogue
// ---------------------------------------------------------------------------

// ListCategories returns the five mapping categories with display names
func (h *MappingHandler) ListCategories(c *gin.Context) {
	categories := mapping.AllCategories
	resp := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, CategoryResponse{Category: cat, DisplayName: cat.DisplayName()})
	}
	h.Success(c, resp)
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

// ListEntries returns every entry of a category, active or not
func (h *MappingHandler) ListEntries(c *gin.Context) {
	category, err := mapping.ParseCategory(c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entries, err := h.mappingService.ListEntries(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]mappingapp.EntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, mappingapp.ToEntryResponse(&entries[i]))
	}
	h.Success(c, resp)
}

// CreateEntry creates a coded or fixed entry in a category
func (h *MappingHandler) CreateEntry(c *gin.Context) {
	category, err := mapping.ParseCategory(c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.SourceCode != "" && req.SourceFixedValue != "" {
		h.BadRequest(c, "supply either source_code or source_fixed_value, not both")
		return
	}

	var entry *mapping.Entry
	if req.SourceFixedValue != "" {
		entry, err = h.mappingService.CreateFixedEntry(c.Request.Context(), category, req.SourceFixedValue, req.TargetID)
	} else {
		entry, err = h.mappingService.AddMapping(c.Request.Context(), category, req.SourceCode, req.TargetID)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, mappingapp.ToEntryResponse(entry))
}

// GetEntry returns a single entry by ID
func (h *MappingHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	entry, err := h.mappingService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mappingapp.ToEntryResponse(entry))
}

// UpdateEntry applies a partial update to an entry
func (h *MappingHandler) UpdateEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := mappingapp.UpdateEntryInput{
		TargetID:      req.TargetID,
		IsActive:      req.IsActive,
		CustomFieldID: req.CustomFieldID,
	}
	if req.Kind != nil {
		kind := mapping.Kind(*req.Kind)
		input.Kind = &kind
	}

	entry, err := h.mappingService.UpdateEntry(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mappingapp.ToEntryResponse(entry))
}

// DeleteEntry removes an entry
func (h *MappingHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	if err := h.mappingService.DeleteEntry(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

// GetDefault returns the fallback pair for a category
func (h *MappingHandler) GetDefault(c *gin.Context) {
	category, err := mapping.ParseCategory(c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	def, err := h.mappingService.GetDefault(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mappingapp.ToDefaultResponse(def))
}

// SetDefault creates or replaces the fallback pair for a category
func (h *MappingHandler) SetDefault(c *gin.Context) {
	category, err := mapping.ParseCategory(c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req SetDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	def := &mapping.Default{
		Category:    category,
		SourceValue: req.SourceValue,
		TargetValue: req.TargetValue,
	}
	if err := h.mappingService.SetDefault(c.Request.Context(), def); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mappingapp.ToDefaultResponse(def))
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// ValidationReport runs validation over the stored orders and returns
// every mapping error plus the deduplicated unmapped code lists
func (h *MappingHandler) ValidationReport(c *gin.Context) {
	report, err := h.mappingService.ValidationReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mappingapp.ToReportResponse(report))
}

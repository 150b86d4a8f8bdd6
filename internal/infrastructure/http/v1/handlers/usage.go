package handlers

import (
	"github.com/gin-gonic/gin"

	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/usage"
	"millstock/internal/infrastructure/http/v1/dto"
)

// UsageHandler serves usage documents of one product kind.
type UsageHandler struct {
	*BaseHandler
	service *usage.Service
	kind    product.Kind
}

// NewUsageHandler creates a usage handler for the given kind.
func NewUsageHandler(service *usage.Service, kind product.Kind) *UsageHandler {
	return &UsageHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		kind:        kind,
	}
}

// RegisterRoutes mounts the handler on a route group.
func (h *UsageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST: validates availability and debits stock.
func (h *UsageHandler) Create(c *gin.Context) {
	var req dto.CreateUsageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntity(h.kind)
	if err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), entry)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.NewUsageMutationResponse("usage recorded", res))
}

// List handles GET: newest first, paginated.
func (h *UsageHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /:id.
func (h *UsageHandler) Get(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.service.Get(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entry)
}

// Update handles PUT /:id: patches the entry and reconciles stock.
func (h *UsageHandler) Update(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUsageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.Get(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := req.ApplyTo(entry); err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), entry)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewUsageMutationResponse("usage updated", res))
}

// Delete handles DELETE /:id: restores the debited stock and removes the entry.
func (h *UsageHandler) Delete(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Delete(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewUsageMutationResponse("usage deleted", res))
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/swap"
	"millstock/internal/infrastructure/http/v1/dto"
)

// SwapHandler serves inter-factory swap documents of one product kind.
type SwapHandler struct {
	*BaseHandler
	service *swap.Service
	kind    product.Kind
}

// NewSwapHandler creates a swap handler for the given kind.
func NewSwapHandler(service *swap.Service, kind product.Kind) *SwapHandler {
	return &SwapHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		kind:        kind,
	}
}

// RegisterRoutes mounts the handler on a route group.
func (h *SwapHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST: debits the source factory, credits the target.
func (h *SwapHandler) Create(c *gin.Context) {
	var req dto.CreateSwapRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sw, err := req.ToEntity(h.kind)
	if err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), sw)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.NewSwapMutationResponse("swap recorded", res))
}

// List handles GET: newest first, paginated.
func (h *SwapHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /:id.
func (h *SwapHandler) Get(c *gin.Context) {
	swapID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	sw, err := h.service.Get(c.Request.Context(), swapID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sw)
}

// Update handles PUT /:id: undoes the old transfer, applies the new one.
func (h *SwapHandler) Update(c *gin.Context) {
	swapID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSwapRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sw, err := h.service.Get(c.Request.Context(), swapID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := req.ApplyTo(sw); err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), sw)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewSwapMutationResponse("swap updated", res))
}

// Delete handles DELETE /:id: reverses both legs and removes the swap.
func (h *SwapHandler) Delete(c *gin.Context) {
	swapID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Delete(c.Request.Context(), swapID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewSwapMutationResponse("swap deleted", res))
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/purchase"
	"millstock/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves purchase documents of one product kind. Board
// and reel purchases mount separate instances on separate route groups.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
	kind    product.Kind
}

// NewPurchaseHandler creates a purchase handler for the given kind.
func NewPurchaseHandler(service *purchase.Service, kind product.Kind) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		kind:        kind,
	}
}

// RegisterRoutes mounts the handler on a route group.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST: records the purchase and credits stock.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
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
	h.Created(c, dto.NewPurchaseMutationResponse("purchase recorded", res))
}

// List handles GET: newest first, paginated.
func (h *PurchaseHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
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
func (h *PurchaseHandler) Update(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePurchaseRequest
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
	h.OK(c, dto.NewPurchaseMutationResponse("purchase updated", res))
}

// Delete handles DELETE /:id: reverses the credit and removes the entry.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Delete(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewPurchaseMutationResponse("purchase deleted", res))
}

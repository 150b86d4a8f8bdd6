package handlers

import (
	"github.com/gin-gonic/gin"

	"millstock/internal/domain/catalogs/product"
	"millstock/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog. On top of the generic
// catalog surface it supports filtering the list by product kind.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a product catalog handler.
func NewProductHandler(service *product.Service) *ProductHandler {
	inner := NewCatalogHandler(CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateProductRequest) (*product.Product, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) error {
			req.ApplyTo(existing)
			return nil
		},
	})
	return &ProductHandler{CatalogHandler: inner, service: service}
}

// RegisterRoutes mounts the handler on a route group.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /products, optionally narrowed by ?kind=.
func (h *ProductHandler) List(c *gin.Context) {
	kind := c.Query("kind")
	if kind == "" {
		h.CatalogHandler.List(c)
		return
	}

	result, err := h.service.ListByKind(c.Request.Context(), product.Kind(kind), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

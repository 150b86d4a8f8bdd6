package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"millstock/internal/core/tx"
	"millstock/internal/core/types"
	"millstock/internal/domain/registers/boardstock"
	"millstock/internal/domain/registers/stock"
	"millstock/internal/infrastructure/http/v1/dto"
)

// StockHandler serves read-only views over the per-factory stock
// register. Balances are mutated only through documents; every read
// here runs in a read-only transaction for a consistent snapshot.
type StockHandler struct {
	*BaseHandler
	stocks *stock.Service
	ro     tx.ReadOnlyManager
}

// NewStockHandler creates a stock register handler.
func NewStockHandler(stocks *stock.Service, ro tx.ReadOnlyManager) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(),
		stocks:      stocks,
		ro:          ro,
	}
}

// RegisterRoutes mounts the handler on a route group.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/factory/:factoryId", h.FactoryStock)
	rg.GET("/availability/:productId", h.ProductAvailability)
}

// List handles GET /stocks: all stock records, newest first.
func (h *StockHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	var records []stock.Record
	err := h.ro.ReadOnly(c.Request.Context(), func(ctx context.Context) error {
		var err error
		records, err = h.stocks.List(ctx, limit, offset)
		return err
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, records, int64(len(records)), limit, offset)
}

// FactoryStock handles GET /stocks/factory/:factoryId: balances of one factory.
func (h *StockHandler) FactoryStock(c *gin.Context) {
	factoryID, ok := h.ParseID(c, "factoryId")
	if !ok {
		return
	}
	var records []stock.Record
	err := h.ro.ReadOnly(c.Request.Context(), func(ctx context.Context) error {
		var err error
		records, err = h.stocks.FactoryStock(ctx, factoryID)
		return err
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, records)
}

// ProductAvailability handles GET /stocks/availability/:productId: the
// product's total across all factories.
func (h *StockHandler) ProductAvailability(c *gin.Context) {
	productID, ok := h.ParseID(c, "productId")
	if !ok {
		return
	}
	var total types.Quantity
	err := h.ro.ReadOnly(c.Request.Context(), func(ctx context.Context) error {
		var err error
		total, err = h.stocks.ProductAvailability(ctx, productID)
		return err
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ProductAvailabilityResponse{
		ProductID: productID.String(),
		Available: total,
	})
}

// BoardStockHandler serves the global board stock register.
type BoardStockHandler struct {
	*BaseHandler
	stocks *boardstock.Service
}

// NewBoardStockHandler creates a board stock handler.
func NewBoardStockHandler(stocks *boardstock.Service) *BoardStockHandler {
	return &BoardStockHandler{
		BaseHandler: NewBaseHandler(),
		stocks:      stocks,
	}
}

// RegisterRoutes mounts the handler on a route group.
func (h *BoardStockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

// Create handles POST /board-stocks: registers a new board stock row
// with its opening quantity. Subsequent changes go through job cards.
func (h *BoardStockHandler) Create(c *gin.Context) {
	var req dto.CreateBoardStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	row := req.ToEntity()
	if err := h.stocks.Create(c.Request.Context(), row); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, row)
}

// List handles GET /board-stocks.
func (h *BoardStockHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	rows, err := h.stocks.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, rows, int64(len(rows)), limit, offset)
}

// Get handles GET /board-stocks/:id.
func (h *BoardStockHandler) Get(c *gin.Context) {
	stockID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	row, err := h.stocks.Get(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}

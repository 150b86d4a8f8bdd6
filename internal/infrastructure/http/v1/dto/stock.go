package dto

import (
	"millstock/internal/core/types"
	"millstock/internal/domain/registers/boardstock"
)

// ProductAvailabilityResponse is the system-wide total for one product.
type ProductAvailabilityResponse struct {
	ProductID string         `json:"productId"`
	Available types.Quantity `json:"available"`
}

// CreateBoardStockRequest registers a new board stock row with its
// opening quantity.
type CreateBoardStockRequest struct {
	Name     string         `json:"name" binding:"required"`
	Quantity types.Quantity `json:"quantity"`
}

// ToEntity converts the request to a board stock row.
func (r *CreateBoardStockRequest) ToEntity() *boardstock.Stock {
	return boardstock.NewStock(r.Name, r.Quantity)
}

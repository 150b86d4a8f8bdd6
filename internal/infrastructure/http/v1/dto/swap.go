package dto

import (
	"millstock/internal/core/types"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/swap"
)

// CreateSwapRequest transfers a quantity between two factories.
type CreateSwapRequest struct {
	Date          string         `json:"date,omitempty"`
	Quantity      types.Quantity `json:"quantity" binding:"required"`
	Type          string         `json:"type,omitempty"`
	ProductID     string         `json:"productId" binding:"required"`
	FromFactoryID string         `json:"fromFactoryId" binding:"required"`
	ToFactoryID   string         `json:"toFactoryId" binding:"required"`
	Comment       string         `json:"comment,omitempty"`
}

// ToEntity converts the request to a swap of the given kind.
func (r *CreateSwapRequest) ToEntity(kind product.Kind) (*swap.Swap, error) {
	sw := swap.New(kind)
	sw.Quantity = r.Quantity
	sw.Type = r.Type
	sw.Comment = r.Comment

	if r.Date != "" {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, err
		}
		sw.Date = d
	}
	var err error
	if sw.ProductID, err = parseID("productId", r.ProductID); err != nil {
		return nil, err
	}
	if sw.FromFactoryID, err = parseID("fromFactoryId", r.FromFactoryID); err != nil {
		return nil, err
	}
	if sw.ToFactoryID, err = parseID("toFactoryId", r.ToFactoryID); err != nil {
		return nil, err
	}
	return sw, nil
}

// UpdateSwapRequest patches a swap.
type UpdateSwapRequest struct {
	Date          *string         `json:"date,omitempty"`
	Quantity      *types.Quantity `json:"quantity,omitempty"`
	Type          *string         `json:"type,omitempty"`
	ProductID     *string         `json:"productId,omitempty"`
	FromFactoryID *string         `json:"fromFactoryId,omitempty"`
	ToFactoryID   *string         `json:"toFactoryId,omitempty"`
	Comment       *string         `json:"comment,omitempty"`
}

// ApplyTo overlays the request onto an existing swap.
func (r *UpdateSwapRequest) ApplyTo(sw *swap.Swap) error {
	if r.Date != nil {
		d, err := parseDate(*r.Date)
		if err != nil {
			return err
		}
		sw.Date = d
	}
	if r.Quantity != nil {
		sw.Quantity = *r.Quantity
	}
	if r.Type != nil {
		sw.Type = *r.Type
	}
	if r.Comment != nil {
		sw.Comment = *r.Comment
	}

	var err error
	if r.ProductID != nil {
		if sw.ProductID, err = parseID("productId", *r.ProductID); err != nil {
			return err
		}
	}
	if r.FromFactoryID != nil {
		if sw.FromFactoryID, err = parseID("fromFactoryId", *r.FromFactoryID); err != nil {
			return err
		}
	}
	if r.ToFactoryID != nil {
		if sw.ToFactoryID, err = parseID("toFactoryId", *r.ToFactoryID); err != nil {
			return err
		}
	}
	return nil
}

// SwapMutationResponse is the body of mutating swap endpoints.
type SwapMutationResponse struct {
	Message      string                `json:"message"`
	Swap         *swap.Swap            `json:"swap"`
	StockUpdated []StockChangeResponse `json:"stockUpdated,omitempty"`
}

// NewSwapMutationResponse builds the response from a service result.
func NewSwapMutationResponse(message string, res *swap.Result) SwapMutationResponse {
	return SwapMutationResponse{
		Message:      message,
		Swap:         res.Swap,
		StockUpdated: FromStockChanges(res.StockUpdated),
	}
}

package dto

import (
	"millstock/internal/core/types"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/usage"
)

// CreateUsageRequest creates a usage entry. Kind is fixed by the route.
type CreateUsageRequest struct {
	Date      string         `json:"date,omitempty"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	Type      string         `json:"type,omitempty"`
	ProductID string         `json:"productId" binding:"required"`
	FactoryID string         `json:"factoryId" binding:"required"`
	Comment   string         `json:"comment,omitempty"`
}

// ToEntity converts the request to a usage entry of the given kind.
func (r *CreateUsageRequest) ToEntity(kind product.Kind) (*usage.Entry, error) {
	e := usage.New(kind)
	e.Quantity = r.Quantity
	e.Type = r.Type
	e.Comment = r.Comment

	if r.Date != "" {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, err
		}
		e.Date = d
	}
	var err error
	if e.ProductID, err = parseID("productId", r.ProductID); err != nil {
		return nil, err
	}
	if e.FactoryID, err = parseID("factoryId", r.FactoryID); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateUsageRequest patches a usage entry.
type UpdateUsageRequest struct {
	Date      *string         `json:"date,omitempty"`
	Quantity  *types.Quantity `json:"quantity,omitempty"`
	Type      *string         `json:"type,omitempty"`
	ProductID *string         `json:"productId,omitempty"`
	FactoryID *string         `json:"factoryId,omitempty"`
	Comment   *string         `json:"comment,omitempty"`
}

// ApplyTo overlays the request onto an existing entry.
func (r *UpdateUsageRequest) ApplyTo(e *usage.Entry) error {
	if r.Date != nil {
		d, err := parseDate(*r.Date)
		if err != nil {
			return err
		}
		e.Date = d
	}
	if r.Quantity != nil {
		e.Quantity = *r.Quantity
	}
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Comment != nil {
		e.Comment = *r.Comment
	}

	var err error
	if r.ProductID != nil {
		if e.ProductID, err = parseID("productId", *r.ProductID); err != nil {
			return err
		}
	}
	if r.FactoryID != nil {
		if e.FactoryID, err = parseID("factoryId", *r.FactoryID); err != nil {
			return err
		}
	}
	return nil
}

// UsageMutationResponse is the body of mutating usage endpoints.
type UsageMutationResponse struct {
	Message      string                `json:"message"`
	Entry        *usage.Entry          `json:"entry"`
	StockUpdated []StockChangeResponse `json:"stockUpdated,omitempty"`
}

// NewUsageMutationResponse builds the response from a service result.
func NewUsageMutationResponse(message string, res *usage.Result) UsageMutationResponse {
	return UsageMutationResponse{
		Message:      message,
		Entry:        res.Entry,
		StockUpdated: FromStockChanges(res.StockUpdated),
	}
}

package dto

import (
	"millstock/internal/core/apperror"
	"millstock/internal/core/types"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/purchase"
)

// CreatePurchaseRequest creates a purchase entry. The product kind is
// fixed by the route (board vs reel), not by the payload.
type CreatePurchaseRequest struct {
	Date       string         `json:"date,omitempty"`
	BillNo     string         `json:"billNo" binding:"required"`
	Quantity   types.Quantity `json:"quantity" binding:"required"`
	UnitPrice  string         `json:"unitPrice" binding:"required"`
	Type       string         `json:"type,omitempty"`
	SupplierID string         `json:"supplierId" binding:"required"`
	ProductID  string         `json:"productId" binding:"required"`
	FactoryID  string         `json:"factoryId" binding:"required"`
	Comment    string         `json:"comment,omitempty"`
}

// ToEntity converts the request to a purchase entry of the given kind.
func (r *CreatePurchaseRequest) ToEntity(kind product.Kind) (*purchase.Entry, error) {
	e := purchase.New(kind)
	e.BillNo = r.BillNo
	e.Quantity = r.Quantity
	e.Type = r.Type
	e.Comment = r.Comment

	price, err := types.NewMoneyFromString(r.UnitPrice)
	if err != nil {
		return nil, apperror.NewValidation("invalid unit price").
			WithDetail("field", "unitPrice").
			WithCause(err)
	}
	e.UnitPrice = price

	if r.Date != "" {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, err
		}
		e.Date = d
	}
	if e.SupplierID, err = parseID("supplierId", r.SupplierID); err != nil {
		return nil, err
	}
	if e.ProductID, err = parseID("productId", r.ProductID); err != nil {
		return nil, err
	}
	if e.FactoryID, err = parseID("factoryId", r.FactoryID); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdatePurchaseRequest patches a purchase entry. Absent fields keep
// their prior values.
type UpdatePurchaseRequest struct {
	Date       *string         `json:"date,omitempty"`
	BillNo     *string         `json:"billNo,omitempty"`
	Quantity   *types.Quantity `json:"quantity,omitempty"`
	UnitPrice  *string         `json:"unitPrice,omitempty"`
	Type       *string         `json:"type,omitempty"`
	SupplierID *string         `json:"supplierId,omitempty"`
	ProductID  *string         `json:"productId,omitempty"`
	FactoryID  *string         `json:"factoryId,omitempty"`
	Comment    *string         `json:"comment,omitempty"`
}

// ApplyTo overlays the request onto an existing entry.
func (r *UpdatePurchaseRequest) ApplyTo(e *purchase.Entry) error {
	if r.Date != nil {
		d, err := parseDate(*r.Date)
		if err != nil {
			return err
		}
		e.Date = d
	}
	if r.BillNo != nil {
		e.BillNo = *r.BillNo
	}
	if r.Quantity != nil {
		e.Quantity = *r.Quantity
	}
	if r.UnitPrice != nil {
		price, err := types.NewMoneyFromString(*r.UnitPrice)
		if err != nil {
			return apperror.NewValidation("invalid unit price").
				WithDetail("field", "unitPrice").
				WithCause(err)
		}
		e.UnitPrice = price
	}
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Comment != nil {
		e.Comment = *r.Comment
	}

	var err error
	if r.SupplierID != nil {
		if e.SupplierID, err = parseID("supplierId", *r.SupplierID); err != nil {
			return err
		}
	}
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

// PurchaseMutationResponse is the body of mutating purchase endpoints:
// the entry plus the stock records the operation touched.
type PurchaseMutationResponse struct {
	Message      string                `json:"message"`
	Entry        *purchase.Entry       `json:"entry"`
	StockUpdated []StockChangeResponse `json:"stockUpdated,omitempty"`
}

// NewPurchaseMutationResponse builds the response from a service result.
func NewPurchaseMutationResponse(message string, res *purchase.Result) PurchaseMutationResponse {
	return PurchaseMutationResponse{
		Message:      message,
		Entry:        res.Entry,
		StockUpdated: FromStockChanges(res.StockUpdated),
	}
}

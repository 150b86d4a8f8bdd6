package purchase

import (
	"context"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain/catalogs/product"
)

// Entry is a stock-increasing document: a delivery of a product into a
// factory. Each entry owns exactly one forward credit against the stock
// record for its (product, factory) pair.
type Entry struct {
	entity.Document

	BillNo    string         `json:"billNo" db:"bill_no"`
	Quantity  types.Quantity `json:"quantity" db:"quantity"`
	UnitPrice types.Money    `json:"unitPrice" db:"unit_price"`

	// Type is a free classifier used by board purchases only.
	Type string       `json:"type,omitempty" db:"type"`
	Kind product.Kind `json:"kind" db:"kind"`

	SupplierID id.ID `json:"supplierId" db:"supplier_id"`
	ProductID  id.ID `json:"productId" db:"product_id"`
	FactoryID  id.ID `json:"factoryId" db:"factory_id"`
}

// New creates a purchase entry with a fresh identifier and timestamps.
func New(kind product.Kind) *Entry {
	return &Entry{
		Document: entity.NewDocument(),
		Kind:     kind,
	}
}

// TotalCost is quantity times unit price, exact decimal.
func (e *Entry) TotalCost() types.Money {
	return e.UnitPrice.Mul(e.Quantity.Decimal())
}

func (e *Entry) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}
	if !e.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", e.Quantity.String())
	}
	if !e.Kind.Valid() {
		return apperror.NewValidation("unknown product kind").
			WithDetail("kind", string(e.Kind))
	}
	if e.Type != "" && e.Kind != product.KindBoard {
		return apperror.NewValidation("type is only valid for board purchases").
			WithDetail("kind", string(e.Kind))
	}
	if id.IsNil(e.SupplierID) {
		return apperror.NewValidation("supplier is required")
	}
	if id.IsNil(e.ProductID) {
		return apperror.NewValidation("product is required")
	}
	if id.IsNil(e.FactoryID) {
		return apperror.NewValidation("factory is required")
	}
	return nil
}

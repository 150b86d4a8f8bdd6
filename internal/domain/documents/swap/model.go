package swap

import (
	"context"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain/catalogs/product"
)

// Swap transfers a quantity of one product between two factories. It
// debits the source stock record and credits (or creates) the target
// record, atomically, so the product's system-wide total never moves.
type Swap struct {
	entity.Document

	Quantity types.Quantity `json:"quantity" db:"quantity"`
	Type     string         `json:"type,omitempty" db:"type"`
	Kind     product.Kind   `json:"kind" db:"kind"`

	ProductID     id.ID `json:"productId" db:"product_id"`
	FromFactoryID id.ID `json:"fromFactoryId" db:"from_factory_id"`
	ToFactoryID   id.ID `json:"toFactoryId" db:"to_factory_id"`
}

// New creates a swap with a fresh identifier and timestamps.
func New(kind product.Kind) *Swap {
	return &Swap{
		Document: entity.NewDocument(),
		Kind:     kind,
	}
}

func (sw *Swap) Validate(ctx context.Context) error {
	if err := sw.Document.Validate(ctx); err != nil {
		return err
	}
	if !sw.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", sw.Quantity.String())
	}
	if !sw.Kind.Valid() {
		return apperror.NewValidation("unknown product kind").
			WithDetail("kind", string(sw.Kind))
	}
	if id.IsNil(sw.ProductID) {
		return apperror.NewValidation("product is required")
	}
	if id.IsNil(sw.FromFactoryID) {
		return apperror.NewValidation("source factory is required")
	}
	if id.IsNil(sw.ToFactoryID) {
		return apperror.NewValidation("target factory is required")
	}
	if sw.FromFactoryID == sw.ToFactoryID {
		return apperror.NewValidation("source and target factory must differ").
			WithDetail("factory_id", sw.FromFactoryID.String())
	}
	return nil
}

// Package stock provides the per-factory stock register.
//
// One Record exists per (product, factory) pair and carries the denormalized
// running balance every purchase, usage and swap mutates.
package stock

import (
	"time"

	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
)

// Record is the denormalized running balance of a product at a factory.
//
// Records are created lazily with OpeningStock=0 on the first purchase or
// swap-in for a (product, factory) pair that lacks one, and are never
// hard-deleted by normal flow. Unique on (product_id, factory_id).
type Record struct {
	entity.BaseEntity

	ProductID id.ID `db:"product_id" json:"productId"`
	FactoryID id.ID `db:"factory_id" json:"factoryId"`

	OpeningStock types.Quantity `db:"opening_stock" json:"openingStock"`
	CurrentStock types.Quantity `db:"current_stock" json:"currentStock"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewRecord creates a record for a pair that has no prior stock.
func NewRecord(productID, factoryID id.ID) *Record {
	now := time.Now().UTC()
	return &Record{
		BaseEntity: entity.NewBaseEntity(),
		ProductID:  productID,
		FactoryID:  factoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Change is the user-facing summary of one record mutation, returned by
// document endpoints as the stock_updated payload.
type Change struct {
	ProductID id.ID          `json:"productId"`
	FactoryID id.ID          `json:"factoryId"`
	Previous  types.Quantity `json:"previous"`
	Current   types.Quantity `json:"current"`
}

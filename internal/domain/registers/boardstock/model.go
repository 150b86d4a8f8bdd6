// Package boardstock provides the single-table board stock register consumed
// by job cards.
//
// Unlike the per-factory stock register, board stock rows are global: a job
// card references a Stock row directly and its consumption decrements
// Quantity in place, with no separate ledger row.
package boardstock

import (
	"time"

	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
)

// Stock is one global board stock row.
type Stock struct {
	entity.BaseEntity

	// Name identifies the board specification (e.g. "3-ply 150gsm 42in").
	Name string `db:"name" json:"name"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewStock creates a board stock row.
func NewStock(name string, quantity types.Quantity) *Stock {
	now := time.Now().UTC()
	return &Stock{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Change summarizes one board stock mutation for responses.
type Change struct {
	StockID  id.ID          `json:"stockId"`
	Previous types.Quantity `json:"previous"`
	Current  types.Quantity `json:"current"`
}

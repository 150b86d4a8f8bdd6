package jobcard

import (
	"context"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
)

// Card is a production order consuming board stock. Unlike the factory
// documents it references a board stock row directly (the board register
// has no factory dimension) and decrements its quantity with no separate
// ledger row.
type Card struct {
	entity.Document

	CardNo   string         `json:"cardNo" db:"card_no"`
	Quantity types.Quantity `json:"quantity" db:"quantity"`

	StockID       id.ID `json:"stockId" db:"stock_id"`
	DistributorID id.ID `json:"distributorId,omitempty" db:"distributor_id"`
}

// New creates a job card with a fresh identifier and timestamps.
func New() *Card {
	return &Card{Document: entity.NewDocument()}
}

func (c *Card) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}
	if !c.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", c.Quantity.String())
	}
	if id.IsNil(c.StockID) {
		return apperror.NewValidation("stock is required")
	}
	return nil
}

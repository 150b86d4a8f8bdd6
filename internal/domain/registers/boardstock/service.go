package boardstock

import (
	"context"
	"fmt"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain/ledger"
)

// Service applies job-card consumption to board stock rows. All mutating
// methods expect to run inside the caller's transaction.
type Service struct {
	repo Repository
}

// NewService creates a new board stock service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Consume debits a board stock row, validated for sufficiency.
func (s *Service) Consume(ctx context.Context, stockID id.ID, amount types.Quantity) (Change, error) {
	row, err := s.repo.GetForUpdate(ctx, stockID)
	if err != nil {
		return Change{}, err
	}

	prev := row.Quantity
	newQty, err := ledger.ApplyDebit(stockID, row.Quantity, amount)
	if err != nil {
		return Change{}, err
	}
	row.Quantity = newQty

	if err := s.repo.Save(ctx, row); err != nil {
		return Change{}, fmt.Errorf("save board stock: %w", err)
	}

	return Change{StockID: stockID, Previous: prev, Current: row.Quantity}, nil
}

// Restore credits a previously consumed quantity back. Never validated.
func (s *Service) Restore(ctx context.Context, stockID id.ID, amount types.Quantity) (Change, error) {
	row, err := s.repo.GetForUpdate(ctx, stockID)
	if err != nil {
		return Change{}, err
	}

	prev := row.Quantity
	row.Quantity = ledger.ReverseDebit(row.Quantity, amount)

	if err := s.repo.Save(ctx, row); err != nil {
		return Change{}, fmt.Errorf("save board stock: %w", err)
	}

	return Change{StockID: stockID, Previous: prev, Current: row.Quantity}, nil
}

// AdjustValidated applies a signed delta: positive consumes more (validated),
// negative restores.
func (s *Service) AdjustValidated(ctx context.Context, stockID id.ID, delta types.Quantity) (Change, error) {
	switch {
	case delta.IsPositive():
		return s.Consume(ctx, stockID, delta)
	case delta.IsNegative():
		return s.Restore(ctx, stockID, delta.Neg())
	default:
		row, err := s.repo.Get(ctx, stockID)
		if err != nil {
			return Change{}, err
		}
		return Change{StockID: stockID, Previous: row.Quantity, Current: row.Quantity}, nil
	}
}

// Get returns a board stock row.
func (s *Service) Get(ctx context.Context, stockID id.ID) (*Stock, error) {
	return s.repo.Get(ctx, stockID)
}

// Create inserts a new board stock row.
func (s *Service) Create(ctx context.Context, row *Stock) error {
	if row.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if row.Quantity.IsNegative() {
		return apperror.NewValidation("quantity must not be negative").WithDetail("field", "quantity")
	}
	return s.repo.Create(ctx, row)
}

// List returns board stock rows, newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Stock, error) {
	return s.repo.List(ctx, limit, offset)
}

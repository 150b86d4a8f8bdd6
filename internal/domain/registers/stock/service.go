package stock

import (
	"context"
	"fmt"

	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain/ledger"
	"millstock/pkg/logger"
)

// Service applies ledger mutations to stock records.
//
// Every mutating method expects to run inside the caller's transaction: the
// repository locks the row, the ledger engine computes the new balance, and
// Save writes it back. Nothing here opens its own transaction.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Credit increases the balance for (product, factory), creating the record
// with opening_stock=0 when absent.
func (s *Service) Credit(ctx context.Context, productID, factoryID id.ID, amount types.Quantity) (Change, error) {
	rec, err := s.repo.FindOrCreateForUpdate(ctx, productID, factoryID)
	if err != nil {
		return Change{}, fmt.Errorf("load stock record: %w", err)
	}

	prev := rec.CurrentStock
	rec.CurrentStock = ledger.ApplyCredit(rec.CurrentStock, amount)

	if err := s.repo.Save(ctx, rec); err != nil {
		return Change{}, fmt.Errorf("save stock record: %w", err)
	}

	return Change{ProductID: productID, FactoryID: factoryID, Previous: prev, Current: rec.CurrentStock}, nil
}

// Debit decreases the balance for (product, factory), validated for
// sufficiency. The record must already exist.
func (s *Service) Debit(ctx context.Context, productID, factoryID id.ID, amount types.Quantity) (Change, error) {
	rec, err := s.repo.GetForUpdate(ctx, productID, factoryID)
	if err != nil {
		return Change{}, err
	}

	prev := rec.CurrentStock
	newBalance, err := ledger.ApplyDebit(productID, rec.CurrentStock, amount)
	if err != nil {
		return Change{}, err
	}
	rec.CurrentStock = newBalance

	if err := s.repo.Save(ctx, rec); err != nil {
		return Change{}, fmt.Errorf("save stock record: %w", err)
	}

	return Change{ProductID: productID, FactoryID: factoryID, Previous: prev, Current: rec.CurrentStock}, nil
}

// AdjustValidated applies a signed delta: positive deltas credit, negative
// deltas debit with sufficiency validation. A zero delta is a no-op.
func (s *Service) AdjustValidated(ctx context.Context, productID, factoryID id.ID, delta types.Quantity) (Change, error) {
	switch {
	case delta.IsPositive():
		return s.Credit(ctx, productID, factoryID, delta)
	case delta.IsNegative():
		return s.Debit(ctx, productID, factoryID, delta.Neg())
	default:
		rec, err := s.repo.Get(ctx, productID, factoryID)
		if err != nil {
			return Change{}, err
		}
		return Change{ProductID: productID, FactoryID: factoryID, Previous: rec.CurrentStock, Current: rec.CurrentStock}, nil
	}
}

// ReverseCredit undoes a prior credit. The reversal is not validated against
// sufficiency; when it drives the balance negative a reconciliation warning
// is logged rather than silently clamping to zero, so data inconsistency
// (usage already consumed what this credit contributed) stays visible.
func (s *Service) ReverseCredit(ctx context.Context, productID, factoryID id.ID, amount types.Quantity) (Change, error) {
	rec, err := s.repo.GetForUpdate(ctx, productID, factoryID)
	if err != nil {
		return Change{}, err
	}

	prev := rec.CurrentStock
	rec.CurrentStock = ledger.ReverseCredit(rec.CurrentStock, amount)

	if rec.CurrentStock.IsNegative() {
		logger.Warn(ctx, "stock reversal drove balance negative, needs reconciliation",
			"product_id", productID,
			"factory_id", factoryID,
			"reversed", amount.String(),
			"balance", rec.CurrentStock.String(),
		)
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return Change{}, fmt.Errorf("save stock record: %w", err)
	}

	return Change{ProductID: productID, FactoryID: factoryID, Previous: prev, Current: rec.CurrentStock}, nil
}

// ReverseDebit credits back a previously debited quantity. Always succeeds;
// the record is created when absent (the pair may have been emptied since).
func (s *Service) ReverseDebit(ctx context.Context, productID, factoryID id.ID, amount types.Quantity) (Change, error) {
	rec, err := s.repo.FindOrCreateForUpdate(ctx, productID, factoryID)
	if err != nil {
		return Change{}, fmt.Errorf("load stock record: %w", err)
	}

	prev := rec.CurrentStock
	rec.CurrentStock = ledger.ReverseDebit(rec.CurrentStock, amount)

	if err := s.repo.Save(ctx, rec); err != nil {
		return Change{}, fmt.Errorf("save stock record: %w", err)
	}

	return Change{ProductID: productID, FactoryID: factoryID, Previous: prev, Current: rec.CurrentStock}, nil
}

// --- Read paths ---

// Get returns the record for (product, factory).
func (s *Service) Get(ctx context.Context, productID, factoryID id.ID) (*Record, error) {
	return s.repo.Get(ctx, productID, factoryID)
}

// FactoryStock returns all records for a factory.
func (s *Service) FactoryStock(ctx context.Context, factoryID id.ID) ([]Record, error) {
	return s.repo.ListByFactory(ctx, factoryID)
}

// ProductAvailability sums current stock of a product across factories.
func (s *Service) ProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	records, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}

	var total types.Quantity
	for _, r := range records {
		total = total.Add(r.CurrentStock)
	}
	return total, nil
}

// List returns stock records, newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, error) {
	return s.repo.List(ctx, limit, offset)
}

package usage

import (
	"context"
	"fmt"
	"time"

	"millstock/internal/core/apperror"
	appctx "millstock/internal/core/context"
	"millstock/internal/core/id"
	"millstock/internal/core/tx"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/registers/stock"
)

// Result pairs a persisted entry with the stock changes it produced.
type Result struct {
	Entry        *Entry         `json:"entry"`
	StockUpdated []stock.Change `json:"stockUpdated"`
}

// Service handles usage documents of one product kind.
type Service struct {
	kind      product.Kind
	txManager tx.Manager
	repo      Repository
	stocks    *stock.Service
	products  *product.Service
	factories *factory.Service
	audit     domain.AuditRecorder
}

// ServiceConfig wires the usage service dependencies.
type ServiceConfig struct {
	Kind      product.Kind
	TxManager tx.Manager
	Repo      Repository
	Stocks    *stock.Service
	Products  *product.Service
	Factories *factory.Service
	Audit     domain.AuditRecorder
}

// NewService creates a usage service scoped to one product kind.
func NewService(cfg ServiceConfig) *Service {
	audit := cfg.Audit
	if audit == nil {
		audit = domain.NopAuditRecorder{}
	}
	return &Service{
		kind:      cfg.Kind,
		txManager: cfg.TxManager,
		repo:      cfg.Repo,
		stocks:    cfg.Stocks,
		products:  cfg.Products,
		factories: cfg.Factories,
		audit:     audit,
	}
}

// Create records a usage and debits the stock record, failing with
// INSUFFICIENT_STOCK when the quantity exceeds the current balance. On
// failure the record keeps its pre-operation value.
func (s *Service) Create(ctx context.Context, e *Entry) (*Result, error) {
	e.Kind = s.kind
	if err := e.Validate(ctx); err != nil {
		return nil, err
	}

	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkRefs(ctx, e); err != nil {
			return err
		}

		change, err := s.stocks.Debit(ctx, e.ProductID, e.FactoryID, e.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create usage: %w", err)
		}

		res = &Result{Entry: e, StockUpdated: []stock.Change{change}}
		s.recordAudit(ctx, domain.AuditCreate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update rewrites an entry. With product and factory unchanged the
// quantity difference moves: a growing usage debits more (validated), a
// shrinking one credits the difference back. When either reference
// changes, the full old quantity is credited back to the old record and
// the full new quantity debited off the new one, validated.
func (s *Service) Update(ctx context.Context, e *Entry) (*Result, error) {
	e.Kind = s.kind
	if err := e.Validate(ctx); err != nil {
		return nil, err
	}

	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if err := s.checkRefs(ctx, e); err != nil {
			return err
		}

		var changes []stock.Change
		if prev.ProductID == e.ProductID && prev.FactoryID == e.FactoryID {
			difference := e.Quantity.Sub(prev.Quantity)
			if !difference.IsZero() {
				// Usage deltas run opposite to the stock sign: more
				// usage means a deeper debit.
				change, err := s.stocks.AdjustValidated(ctx, e.ProductID, e.FactoryID, difference.Neg())
				if err != nil {
					return err
				}
				changes = append(changes, change)
			}
		} else {
			undo, err := s.stocks.ReverseDebit(ctx, prev.ProductID, prev.FactoryID, prev.Quantity)
			if err != nil {
				return err
			}
			redo, err := s.stocks.Debit(ctx, e.ProductID, e.FactoryID, e.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, undo, redo)
		}

		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update usage: %w", err)
		}

		res = &Result{Entry: e, StockUpdated: changes}
		s.recordAudit(ctx, domain.AuditUpdate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete credits the consumed quantity back and removes the entry.
// A prior debit is always reversible, so the restore is unchecked.
func (s *Service) Delete(ctx context.Context, entryID id.ID) (*Result, error) {
	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}

		change, err := s.stocks.ReverseDebit(ctx, prev.ProductID, prev.FactoryID, prev.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entryID); err != nil {
			return fmt.Errorf("delete usage: %w", err)
		}

		res = &Result{Entry: prev, StockUpdated: []stock.Change{change}}
		s.recordAudit(ctx, domain.AuditDelete, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns a single entry.
func (s *Service) Get(ctx context.Context, entryID id.ID) (*Entry, error) {
	return s.repo.GetByID(ctx, entryID)
}

// List returns entries of this service's kind, newest first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Entry], error) {
	return s.repo.List(ctx, s.kind, filter)
}

func (s *Service) checkRefs(ctx context.Context, e *Entry) error {
	if err := s.products.RequireKind(ctx, e.ProductID, s.kind); err != nil {
		return err
	}

	ok, err := s.factories.Exists(ctx, e.FactoryID)
	if err != nil {
		return fmt.Errorf("check factory: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("Factory", e.FactoryID.String())
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action domain.AuditAction, res *Result) {
	s.audit.Record(ctx, domain.AuditEvent{
		At:         time.Now().UTC(),
		Actor:      appctx.GetUserEmail(ctx),
		Action:     action,
		EntityType: "usage",
		EntityID:   res.Entry.ID,
		Payload: map[string]any{
			"kind":          string(s.kind),
			"quantity":      res.Entry.Quantity.String(),
			"stock_updated": res.StockUpdated,
		},
	})
}

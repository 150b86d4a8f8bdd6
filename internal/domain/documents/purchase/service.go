package purchase

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
	"millstock/internal/domain/catalogs/supplier"
	"millstock/internal/domain/registers/stock"
)

// Result pairs a persisted entry with the stock changes it produced.
type Result struct {
	Entry        *Entry         `json:"entry"`
	StockUpdated []stock.Change `json:"stockUpdated"`
}

// Service handles purchase documents of one product kind. Board and reel
// purchases run through separate instances of the same service.
type Service struct {
	kind      product.Kind
	txManager tx.Manager
	repo      Repository
	stocks    *stock.Service
	products  *product.Service
	factories *factory.Service
	suppliers *supplier.Service
	audit     domain.AuditRecorder
}

// ServiceConfig wires the purchase service dependencies.
type ServiceConfig struct {
	Kind      product.Kind
	TxManager tx.Manager
	Repo      Repository
	Stocks    *stock.Service
	Products  *product.Service
	Factories *factory.Service
	Suppliers *supplier.Service
	Audit     domain.AuditRecorder
}

// NewService creates a purchase service scoped to one product kind.
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
		suppliers: cfg.Suppliers,
		audit:     audit,
	}
}

// Create records a purchase and credits the target stock record,
// creating it with a zero opening balance when absent. Entry insert and
// stock write commit together or not at all.
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

		change, err := s.stocks.Credit(ctx, e.ProductID, e.FactoryID, e.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create purchase: %w", err)
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

// Update rewrites an entry. When product and factory are unchanged only
// the quantity difference moves (a shrinking purchase debits the record,
// validated for sufficiency). When either changes, the full old quantity
// is reversed off the old record and the full new quantity credited to
// the new one. Any failure rolls the whole transaction back.
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
			delta := e.Quantity.Sub(prev.Quantity)
			if !delta.IsZero() {
				change, err := s.stocks.AdjustValidated(ctx, e.ProductID, e.FactoryID, delta)
				if err != nil {
					return err
				}
				changes = append(changes, change)
			}
		} else {
			undo, err := s.stocks.ReverseCredit(ctx, prev.ProductID, prev.FactoryID, prev.Quantity)
			if err != nil {
				return err
			}
			redo, err := s.stocks.Credit(ctx, e.ProductID, e.FactoryID, e.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, undo, redo)
		}

		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update purchase: %w", err)
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

// Delete reverses the entry's credit and removes it. The reversal is
// unchecked: if usage already consumed what this purchase contributed the
// balance goes negative and a reconciliation warning is logged.
func (s *Service) Delete(ctx context.Context, entryID id.ID) (*Result, error) {
	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}

		change, err := s.stocks.ReverseCredit(ctx, prev.ProductID, prev.FactoryID, prev.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entryID); err != nil {
			return fmt.Errorf("delete purchase: %w", err)
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

	ok, err = s.suppliers.Exists(ctx, e.SupplierID)
	if err != nil {
		return fmt.Errorf("check supplier: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("Supplier", e.SupplierID.String())
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action domain.AuditAction, res *Result) {
	s.audit.Record(ctx, domain.AuditEvent{
		At:         time.Now().UTC(),
		Actor:      appctx.GetUserEmail(ctx),
		Action:     action,
		EntityType: "purchase",
		EntityID:   res.Entry.ID,
		Payload: map[string]any{
			"kind":          string(s.kind),
			"quantity":      res.Entry.Quantity.String(),
			"stock_updated": res.StockUpdated,
		},
	})
}

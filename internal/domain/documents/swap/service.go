package swap

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

// Result pairs a persisted swap with the stock changes it produced.
type Result struct {
	Swap         *Swap          `json:"swap"`
	StockUpdated []stock.Change `json:"stockUpdated"`
}

// Service handles inter-factory transfers of one product kind.
type Service struct {
	kind      product.Kind
	txManager tx.Manager
	repo      Repository
	stocks    *stock.Service
	products  *product.Service
	factories *factory.Service
	audit     domain.AuditRecorder
}

// ServiceConfig wires the swap service dependencies.
type ServiceConfig struct {
	Kind      product.Kind
	TxManager tx.Manager
	Repo      Repository
	Stocks    *stock.Service
	Products  *product.Service
	Factories *factory.Service
	Audit     domain.AuditRecorder
}

// NewService creates a swap service scoped to one product kind.
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

// Create debits the source record and credits the target record for the
// same product in one transaction. The source record must already exist
// and hold enough stock; the target record is created when absent. Any
// failure leaves both records at their pre-operation values.
func (s *Service) Create(ctx context.Context, sw *Swap) (*Result, error) {
	sw.Kind = s.kind
	if err := sw.Validate(ctx); err != nil {
		return nil, err
	}

	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkRefs(ctx, sw); err != nil {
			return err
		}

		changes, err := s.apply(ctx, sw)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, sw); err != nil {
			return fmt.Errorf("create swap: %w", err)
		}

		res = &Result{Swap: sw, StockUpdated: changes}
		s.recordAudit(ctx, domain.AuditCreate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update fully reverses the prior swap's effect, then re-runs the create
// path against the new tuple. The reversal is unchecked; the re-applied
// debit is validated. If re-validation fails the transaction rolls back,
// leaving the original swap and both stock records untouched.
func (s *Service) Update(ctx context.Context, sw *Swap) (*Result, error) {
	sw.Kind = s.kind
	if err := sw.Validate(ctx); err != nil {
		return nil, err
	}

	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, sw.ID)
		if err != nil {
			return err
		}
		if err := s.checkRefs(ctx, sw); err != nil {
			return err
		}

		undone, err := s.reverse(ctx, prev)
		if err != nil {
			return err
		}
		redone, err := s.apply(ctx, sw)
		if err != nil {
			return err
		}

		if err := s.repo.Update(ctx, sw); err != nil {
			return fmt.Errorf("update swap: %w", err)
		}

		res = &Result{Swap: sw, StockUpdated: append(undone, redone...)}
		s.recordAudit(ctx, domain.AuditUpdate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete reverses the swap's effect and removes it: the quantity goes
// back to the source factory and comes off the target, unchecked.
func (s *Service) Delete(ctx context.Context, swapID id.ID) (*Result, error) {
	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, swapID)
		if err != nil {
			return err
		}

		changes, err := s.reverse(ctx, prev)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, swapID); err != nil {
			return fmt.Errorf("delete swap: %w", err)
		}

		res = &Result{Swap: prev, StockUpdated: changes}
		s.recordAudit(ctx, domain.AuditDelete, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns a single swap.
func (s *Service) Get(ctx context.Context, swapID id.ID) (*Swap, error) {
	return s.repo.GetByID(ctx, swapID)
}

// List returns swaps of this service's kind, newest first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Swap], error) {
	return s.repo.List(ctx, s.kind, filter)
}

// apply moves the quantity out of the source and into the target. The
// debit is validated for sufficiency, the credit always succeeds.
func (s *Service) apply(ctx context.Context, sw *Swap) ([]stock.Change, error) {
	out, err := s.stocks.Debit(ctx, sw.ProductID, sw.FromFactoryID, sw.Quantity)
	if err != nil {
		return nil, err
	}
	in, err := s.stocks.Credit(ctx, sw.ProductID, sw.ToFactoryID, sw.Quantity)
	if err != nil {
		return nil, err
	}
	return []stock.Change{out, in}, nil
}

// reverse undoes a previously applied swap, unchecked on both sides.
func (s *Service) reverse(ctx context.Context, sw *Swap) ([]stock.Change, error) {
	back, err := s.stocks.ReverseDebit(ctx, sw.ProductID, sw.FromFactoryID, sw.Quantity)
	if err != nil {
		return nil, err
	}
	off, err := s.stocks.ReverseCredit(ctx, sw.ProductID, sw.ToFactoryID, sw.Quantity)
	if err != nil {
		return nil, err
	}
	return []stock.Change{back, off}, nil
}

func (s *Service) checkRefs(ctx context.Context, sw *Swap) error {
	if err := s.products.RequireKind(ctx, sw.ProductID, s.kind); err != nil {
		return err
	}

	for _, factoryID := range []id.ID{sw.FromFactoryID, sw.ToFactoryID} {
		ok, err := s.factories.Exists(ctx, factoryID)
		if err != nil {
			return fmt.Errorf("check factory: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("Factory", factoryID.String())
		}
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action domain.AuditAction, res *Result) {
	s.audit.Record(ctx, domain.AuditEvent{
		At:         time.Now().UTC(),
		Actor:      appctx.GetUserEmail(ctx),
		Action:     action,
		EntityType: "swap",
		EntityID:   res.Swap.ID,
		Payload: map[string]any{
			"kind":          string(s.kind),
			"quantity":      res.Swap.Quantity.String(),
			"stock_updated": res.StockUpdated,
		},
	})
}

package jobcard

import (
	"context"
	"fmt"
	"time"

	"millstock/internal/core/apperror"
	appctx "millstock/internal/core/context"
	"millstock/internal/core/id"
	"millstock/internal/core/tx"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/domain/registers/boardstock"
)

// Result pairs a persisted card with the board stock changes it produced.
type Result struct {
	Card         *Card              `json:"card"`
	StockUpdated []boardstock.Change `json:"stockUpdated"`
}

// Service handles job card documents against the board stock register.
type Service struct {
	txManager    tx.Manager
	repo         Repository
	stocks       *boardstock.Service
	distributors *distributor.Service
	audit        domain.AuditRecorder
}

// ServiceConfig wires the job card service dependencies.
type ServiceConfig struct {
	TxManager    tx.Manager
	Repo         Repository
	Stocks       *boardstock.Service
	Distributors *distributor.Service
	Audit        domain.AuditRecorder
}

// NewService creates a job card service.
func NewService(cfg ServiceConfig) *Service {
	audit := cfg.Audit
	if audit == nil {
		audit = domain.NopAuditRecorder{}
	}
	return &Service{
		txManager:    cfg.TxManager,
		repo:         cfg.Repo,
		stocks:       cfg.Stocks,
		distributors: cfg.Distributors,
		audit:        audit,
	}
}

// Create consumes the card's quantity off the referenced stock row,
// validated for sufficiency, and persists the card in the same
// transaction.
func (s *Service) Create(ctx context.Context, c *Card) (*Result, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkRefs(ctx, c); err != nil {
			return err
		}

		change, err := s.stocks.Consume(ctx, c.StockID, c.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create job card: %w", err)
		}

		res = &Result{Card: c, StockUpdated: []boardstock.Change{change}}
		s.recordAudit(ctx, domain.AuditCreate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Update handles three cases: same stock row with a changed quantity
// adjusts by the difference (deeper consumption is validated); a changed
// stock row restores the full amount to the old row and consumes the
// full new amount off the new one, validated; otherwise the stock is
// untouched.
func (s *Service) Update(ctx context.Context, c *Card) (*Result, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := s.checkRefs(ctx, c); err != nil {
			return err
		}

		var changes []boardstock.Change
		switch {
		case prev.StockID == c.StockID && prev.Quantity != c.Quantity:
			change, err := s.stocks.AdjustValidated(ctx, c.StockID, c.Quantity.Sub(prev.Quantity))
			if err != nil {
				return err
			}
			changes = append(changes, change)
		case prev.StockID != c.StockID:
			undo, err := s.stocks.Restore(ctx, prev.StockID, prev.Quantity)
			if err != nil {
				return err
			}
			redo, err := s.stocks.Consume(ctx, c.StockID, c.Quantity)
			if err != nil {
				return err
			}
			changes = append(changes, undo, redo)
		}

		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update job card: %w", err)
		}

		res = &Result{Card: c, StockUpdated: changes}
		s.recordAudit(ctx, domain.AuditUpdate, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Delete restores the consumed quantity to the referenced stock row and
// removes the card.
func (s *Service) Delete(ctx context.Context, cardID id.ID) (*Result, error) {
	var res *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		prev, err := s.repo.GetByID(ctx, cardID)
		if err != nil {
			return err
		}

		change, err := s.stocks.Restore(ctx, prev.StockID, prev.Quantity)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, cardID); err != nil {
			return fmt.Errorf("delete job card: %w", err)
		}

		res = &Result{Card: prev, StockUpdated: []boardstock.Change{change}}
		s.recordAudit(ctx, domain.AuditDelete, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns a single card.
func (s *Service) Get(ctx context.Context, cardID id.ID) (*Card, error) {
	return s.repo.GetByID(ctx, cardID)
}

// List returns cards newest first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Card], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) checkRefs(ctx context.Context, c *Card) error {
	if _, err := s.stocks.Get(ctx, c.StockID); err != nil {
		return err
	}
	if !id.IsNil(c.DistributorID) {
		ok, err := s.distributors.Exists(ctx, c.DistributorID)
		if err != nil {
			return fmt.Errorf("check distributor: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("Distributor", c.DistributorID.String())
		}
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action domain.AuditAction, res *Result) {
	s.audit.Record(ctx, domain.AuditEvent{
		At:         time.Now().UTC(),
		Actor:      appctx.GetUserEmail(ctx),
		Action:     action,
		EntityType: "job_card",
		EntityID:   res.Card.ID,
		Payload: map[string]any{
			"quantity":      res.Card.Quantity.String(),
			"stock_updated": res.StockUpdated,
		},
	})
}

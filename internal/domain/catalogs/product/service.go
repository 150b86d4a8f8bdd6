package product

import (
	"context"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/core/tx"
	"millstock/internal/domain"
)

// Service provides product business logic.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "Product",
		}),
		repo: repo,
	}
}

// ListByKind lists products of a single kind.
func (s *Service) ListByKind(ctx context.Context, kind Kind, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	if !kind.Valid() {
		return domain.ListResult[*Product]{}, apperror.NewValidation("unknown product kind").
			WithDetail("kind", string(kind))
	}
	return s.repo.ListByKind(ctx, kind, filter)
}

// RequireKind loads the product kind and fails if it does not match want.
// Document services use it to keep reel documents off board products.
func (s *Service) RequireKind(ctx context.Context, productID id.ID, want Kind) error {
	got, err := s.repo.GetKind(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("Product", productID.String())
		}
		return err
	}
	if got != want {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "product kind mismatch").
			WithDetail("product_id", productID.String()).
			WithDetail("expected", string(want)).
			WithDetail("actual", string(got))
	}
	return nil
}

package factory

import (
	"millstock/internal/core/tx"
	"millstock/internal/domain"
)

// Repository defines factory persistence operations.
type Repository interface {
	domain.CatalogRepository[*Factory]
}

// Service provides factory business logic.
type Service struct {
	*domain.CatalogService[*Factory]
}

// NewService creates a factory service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Factory]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "Factory",
		}),
	}
}

package company

import (
	"millstock/internal/core/tx"
	"millstock/internal/domain"
)

// Repository defines company persistence operations.
type Repository interface {
	domain.CatalogRepository[*Company]
}

// Service provides company business logic.
type Service struct {
	*domain.CatalogService[*Company]
}

// NewService creates a company service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Company]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "Company",
		}),
	}
}

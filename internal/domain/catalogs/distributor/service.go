package distributor

import (
	"millstock/internal/core/tx"
	"millstock/internal/domain"
)

// Repository defines distributor persistence operations.
type Repository interface {
	domain.CatalogRepository[*Distributor]
}

// Service provides distributor business logic.
type Service struct {
	*domain.CatalogService[*Distributor]
}

// NewService creates a distributor service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Distributor]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "Distributor",
		}),
	}
}

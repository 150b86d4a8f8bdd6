package supplier

import (
	"millstock/internal/core/tx"
	"millstock/internal/domain"
)

// Repository defines supplier persistence operations.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}

// Service provides supplier business logic.
type Service struct {
	*domain.CatalogService[*Supplier]
}

// NewService creates a supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "Supplier",
		}),
	}
}

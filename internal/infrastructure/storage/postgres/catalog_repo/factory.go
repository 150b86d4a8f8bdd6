package catalog_repo

import (
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/infrastructure/storage/postgres"
)

const factoryTable = "cat_factories"

// FactoryRepo implements factory.Repository.
type FactoryRepo struct {
	*BaseCatalogRepo[*factory.Factory]
}

// NewFactoryRepo creates a new factory repository.
func NewFactoryRepo(txManager *postgres.TxManager) *FactoryRepo {
	return &FactoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*factory.Factory](
			txManager,
			factoryTable,
			"Factory",
			postgres.ExtractDBColumns[factory.Factory](),
			func() *factory.Factory { return &factory.Factory{} },
		),
	}
}

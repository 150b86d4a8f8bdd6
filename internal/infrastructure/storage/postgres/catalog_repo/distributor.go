package catalog_repo

import (
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/infrastructure/storage/postgres"
)

const distributorTable = "cat_distributors"

// DistributorRepo implements distributor.Repository.
type DistributorRepo struct {
	*BaseCatalogRepo[*distributor.Distributor]
}

// NewDistributorRepo creates a new distributor repository.
func NewDistributorRepo(txManager *postgres.TxManager) *DistributorRepo {
	return &DistributorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*distributor.Distributor](
			txManager,
			distributorTable,
			"Distributor",
			postgres.ExtractDBColumns[distributor.Distributor](),
			func() *distributor.Distributor { return &distributor.Distributor{} },
		),
	}
}

package distributor

import (
	"millstock/internal/core/entity"
)

// Distributor is a counterparty job card output is produced for.
type Distributor struct {
	entity.Catalog

	Region string `json:"region,omitempty" db:"region"`
}

// New creates a distributor with a fresh identifier.
func New(name string) *Distributor {
	return &Distributor{Catalog: entity.NewCatalog(name)}
}

func (d *Distributor) GetName() string {
	return d.Name
}

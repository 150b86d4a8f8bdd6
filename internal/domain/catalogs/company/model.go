package company

import (
	"millstock/internal/core/entity"
)

// Company is an internal legal entity documents are issued under.
type Company struct {
	entity.Catalog
}

// New creates a company with a fresh identifier.
func New(name string) *Company {
	return &Company{Catalog: entity.NewCatalog(name)}
}

func (c *Company) GetName() string {
	return c.Name
}

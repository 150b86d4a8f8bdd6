package entity

import (
	"context"

	"millstock/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Product, Factory, Supplier, Company.
type Catalog struct {
	BaseCatalog

	// Name is the display name (unique per catalog table)
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Name:        name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

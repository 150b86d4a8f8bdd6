package factory

import (
	"millstock/internal/core/entity"
)

// Factory is a production site holding its own stock balances.
type Factory struct {
	entity.Catalog

	Location string `json:"location,omitempty" db:"location"`
}

// New creates a factory with a fresh identifier.
func New(name string) *Factory {
	return &Factory{Catalog: entity.NewCatalog(name)}
}

func (f *Factory) GetName() string {
	return f.Name
}

package supplier

import (
	"millstock/internal/core/entity"
)

// Supplier is a counterparty products are purchased from.
type Supplier struct {
	entity.Catalog

	ContactInfo string `json:"contactInfo,omitempty" db:"contact_info"`
}

// New creates a supplier with a fresh identifier.
func New(name string) *Supplier {
	return &Supplier{Catalog: entity.NewCatalog(name)}
}

func (s *Supplier) GetName() string {
	return s.Name
}

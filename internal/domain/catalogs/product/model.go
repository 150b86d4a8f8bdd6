package product

import (
	"context"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
)

// Kind classifies products by material category. Purchases, usages and
// swaps are recorded separately per kind on the API surface, but share
// the same ledger semantics.
type Kind string

const (
	KindBoard Kind = "board"
	KindReel  Kind = "reel"
	KindGum   Kind = "gum"
	KindInk   Kind = "ink"
)

// Valid reports whether the kind is one of the known categories.
func (k Kind) Valid() bool {
	switch k {
	case KindBoard, KindReel, KindGum, KindInk:
		return true
	}
	return false
}

// Product is a purchasable material tracked in the stock register.
type Product struct {
	entity.BaseCatalog
	Name string `json:"name" db:"name"`
	Kind Kind   `json:"kind" db:"kind"`
	Unit string `json:"unit,omitempty" db:"unit"`
}

// New creates a product with a fresh identifier.
func New(name string, kind Kind) *Product {
	p := &Product{Name: name, Kind: kind}
	p.BaseCatalog = entity.NewBaseCatalog()
	return p
}

func (p *Product) GetName() string {
	return p.Name
}

func (p *Product) Validate(_ context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	if !p.Kind.Valid() {
		return apperror.NewValidation("unknown product kind").
			WithDetail("kind", string(p.Kind))
	}
	return nil
}

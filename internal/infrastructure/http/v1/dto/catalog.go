package dto

import (
	"millstock/internal/domain/catalogs/company"
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/catalogs/supplier"
)

// --- Product ---

// CreateProductRequest creates a catalog product.
type CreateProductRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required"`
	Unit string `json:"unit,omitempty"`
}

// ToEntity converts the request to a product. Kind validity is checked
// by the entity's own Validate.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.Name, product.Kind(r.Kind))
	p.Unit = r.Unit
	return p
}

// UpdateProductRequest patches a product. Kind is immutable: documents
// already posted against the product depend on it.
type UpdateProductRequest struct {
	Name *string `json:"name,omitempty"`
	Unit *string `json:"unit,omitempty"`
}

// ApplyTo overlays the request onto an existing product.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
}

// --- Factory ---

// CreateFactoryRequest creates a factory.
type CreateFactoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location,omitempty"`
}

func (r *CreateFactoryRequest) ToEntity() *factory.Factory {
	f := factory.New(r.Name)
	f.Location = r.Location
	return f
}

// UpdateFactoryRequest patches a factory.
type UpdateFactoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (r *UpdateFactoryRequest) ApplyTo(f *factory.Factory) {
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Location != nil {
		f.Location = *r.Location
	}
}

// --- Supplier ---

// CreateSupplierRequest creates a supplier.
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Name)
	s.ContactInfo = r.ContactInfo
	return s
}

// UpdateSupplierRequest patches a supplier.
type UpdateSupplierRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactInfo *string `json:"contactInfo,omitempty"`
}

func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.ContactInfo != nil {
		s.ContactInfo = *r.ContactInfo
	}
}

// --- Company ---

// CreateCompanyRequest creates a company.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r *CreateCompanyRequest) ToEntity() *company.Company {
	return company.New(r.Name)
}

// UpdateCompanyRequest patches a company.
type UpdateCompanyRequest struct {
	Name *string `json:"name,omitempty"`
}

func (r *UpdateCompanyRequest) ApplyTo(c *company.Company) {
	if r.Name != nil {
		c.Name = *r.Name
	}
}

// --- Distributor ---

// CreateDistributorRequest creates a distributor.
type CreateDistributorRequest struct {
	Name   string `json:"name" binding:"required"`
	Region string `json:"region,omitempty"`
}

func (r *CreateDistributorRequest) ToEntity() *distributor.Distributor {
	d := distributor.New(r.Name)
	d.Region = r.Region
	return d
}

// UpdateDistributorRequest patches a distributor.
type UpdateDistributorRequest struct {
	Name   *string `json:"name,omitempty"`
	Region *string `json:"region,omitempty"`
}

func (r *UpdateDistributorRequest) ApplyTo(d *distributor.Distributor) {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.Region != nil {
		d.Region = *r.Region
	}
}

package handlers

import (
	"millstock/internal/domain/catalogs/company"
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/catalogs/supplier"
	"millstock/internal/infrastructure/http/v1/dto"
)

// FactoryHandler serves the factory catalog.
type FactoryHandler = CatalogHandler[
	*factory.Factory,
	dto.CreateFactoryRequest,
	dto.UpdateFactoryRequest,
]

// NewFactoryHandler creates a factory catalog handler.
func NewFactoryHandler(service *factory.Service) *FactoryHandler {
	return NewCatalogHandler(CatalogHandlerConfig[
		*factory.Factory,
		dto.CreateFactoryRequest,
		dto.UpdateFactoryRequest,
	]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateFactoryRequest) (*factory.Factory, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateFactoryRequest, existing *factory.Factory) error {
			req.ApplyTo(existing)
			return nil
		},
	})
}

// SupplierHandler serves the supplier catalog.
type SupplierHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// NewSupplierHandler creates a supplier catalog handler.
func NewSupplierHandler(service *supplier.Service) *SupplierHandler {
	return NewCatalogHandler(CatalogHandlerConfig[
		*supplier.Supplier,
		dto.CreateSupplierRequest,
		dto.UpdateSupplierRequest,
	]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateSupplierRequest) (*supplier.Supplier, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) error {
			req.ApplyTo(existing)
			return nil
		},
	})
}

// CompanyHandler serves the company catalog.
type CompanyHandler = CatalogHandler[
	*company.Company,
	dto.CreateCompanyRequest,
	dto.UpdateCompanyRequest,
]

// NewCompanyHandler creates a company catalog handler.
func NewCompanyHandler(service *company.Service) *CompanyHandler {
	return NewCatalogHandler(CatalogHandlerConfig[
		*company.Company,
		dto.CreateCompanyRequest,
		dto.UpdateCompanyRequest,
	]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateCompanyRequest) (*company.Company, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateCompanyRequest, existing *company.Company) error {
			req.ApplyTo(existing)
			return nil
		},
	})
}

// DistributorHandler serves the distributor catalog.
type DistributorHandler = CatalogHandler[
	*distributor.Distributor,
	dto.CreateDistributorRequest,
	dto.UpdateDistributorRequest,
]

// NewDistributorHandler creates a distributor catalog handler.
func NewDistributorHandler(service *distributor.Service) *DistributorHandler {
	return NewCatalogHandler(CatalogHandlerConfig[
		*distributor.Distributor,
		dto.CreateDistributorRequest,
		dto.UpdateDistributorRequest,
	]{
		Service: service.CatalogService,
		MapCreateDTO: func(req dto.CreateDistributorRequest) (*distributor.Distributor, error) {
			return req.ToEntity(), nil
		},
		MapUpdateDTO: func(req dto.UpdateDistributorRequest, existing *distributor.Distributor) error {
			req.ApplyTo(existing)
			return nil
		},
	})
}

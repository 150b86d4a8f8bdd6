package domaintest

import (
	"context"
	"sync"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/company"
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/catalogs/supplier"
	"millstock/internal/domain/registers/boardstock"
	"millstock/internal/domain/registers/stock"
)

// ProductRepo is an in-memory product.Repository.
type ProductRepo struct {
	*CatalogRepo[*product.Product]
}

// NewProductRepo creates an empty product repo.
func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		CatalogRepo: NewCatalogRepo("Product", func(p *product.Product) *entity.BaseEntity {
			return &p.BaseEntity
		}),
	}
}

func (r *ProductRepo) ListByKind(ctx context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	all, err := r.List(ctx, filter)
	if err != nil {
		return domain.ListResult[*product.Product]{}, err
	}
	var items []*product.Product
	for _, p := range all.Items {
		if p.Kind == kind {
			items = append(items, p)
		}
	}
	all.Items = items
	all.TotalCount = int64(len(items))
	return all, nil
}

func (r *ProductRepo) GetKind(ctx context.Context, productID id.ID) (product.Kind, error) {
	p, err := r.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	return p.Kind, nil
}

// NewFactoryRepo creates an empty in-memory factory repo.
func NewFactoryRepo() *CatalogRepo[*factory.Factory] {
	return NewCatalogRepo("Factory", func(f *factory.Factory) *entity.BaseEntity {
		return &f.BaseEntity
	})
}

// NewSupplierRepo creates an empty in-memory supplier repo.
func NewSupplierRepo() *CatalogRepo[*supplier.Supplier] {
	return NewCatalogRepo("Supplier", func(s *supplier.Supplier) *entity.BaseEntity {
		return &s.BaseEntity
	})
}

// NewCompanyRepo creates an empty in-memory company repo.
func NewCompanyRepo() *CatalogRepo[*company.Company] {
	return NewCatalogRepo("Company", func(c *company.Company) *entity.BaseEntity {
		return &c.BaseEntity
	})
}

// NewDistributorRepo creates an empty in-memory distributor repo.
func NewDistributorRepo() *CatalogRepo[*distributor.Distributor] {
	return NewCatalogRepo("Distributor", func(d *distributor.Distributor) *entity.BaseEntity {
		return &d.BaseEntity
	})
}

// StockRepo is an in-memory stock.Repository.
type StockRepo struct {
	mu      sync.Mutex
	records map[stockKey]*stock.Record
}

type stockKey struct {
	productID id.ID
	factoryID id.ID
}

// NewStockRepo creates an empty stock repo.
func NewStockRepo() *StockRepo {
	return &StockRepo{records: map[stockKey]*stock.Record{}}
}

// Seed inserts stock records directly.
func (r *StockRepo) Seed(records ...*stock.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[stockKey{rec.ProductID, rec.FactoryID}] = rec
	}
}

// Snapshot captures all records; the returned closure restores them.
func (r *StockRepo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[stockKey]*stock.Record, len(r.records))
	for k, rec := range r.records {
		cp := *rec
		saved[k] = &cp
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.records = saved
	}
}

func (r *StockRepo) GetForUpdate(_ context.Context, productID, factoryID id.ID) (*stock.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[stockKey{productID, factoryID}]
	if !ok {
		return nil, apperror.NewNotFound("StockRecord", productID.String()+"/"+factoryID.String())
	}
	cp := *rec
	return &cp, nil
}

func (r *StockRepo) FindOrCreateForUpdate(_ context.Context, productID, factoryID id.ID) (*stock.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey{productID, factoryID}
	rec, ok := r.records[key]
	if !ok {
		rec = stock.NewRecord(productID, factoryID)
		r.records[key] = rec
	}
	cp := *rec
	return &cp, nil
}

func (r *StockRepo) Save(_ context.Context, rec *stock.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey{rec.ProductID, rec.FactoryID}
	if _, ok := r.records[key]; !ok {
		return apperror.NewNotFound("StockRecord", rec.ID)
	}
	cp := *rec
	r.records[key] = &cp
	return nil
}

func (r *StockRepo) Get(ctx context.Context, productID, factoryID id.ID) (*stock.Record, error) {
	return r.GetForUpdate(ctx, productID, factoryID)
}

func (r *StockRepo) ListByFactory(_ context.Context, factoryID id.ID) ([]stock.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.Record
	for _, rec := range r.records {
		if rec.FactoryID == factoryID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *StockRepo) ListByProduct(_ context.Context, productID id.ID) ([]stock.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.Record
	for _, rec := range r.records {
		if rec.ProductID == productID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *StockRepo) List(_ context.Context, limit, offset int) ([]stock.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stock.Record
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

// BoardStockRepo is an in-memory boardstock.Repository.
type BoardStockRepo struct {
	mu   sync.Mutex
	rows map[id.ID]*boardstock.Stock
}

// NewBoardStockRepo creates an empty board stock repo.
func NewBoardStockRepo() *BoardStockRepo {
	return &BoardStockRepo{rows: map[id.ID]*boardstock.Stock{}}
}

// Seed inserts rows directly.
func (r *BoardStockRepo) Seed(rows ...*boardstock.Stock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.rows[row.ID] = row
	}
}

// Snapshot captures all rows; the returned closure restores them.
func (r *BoardStockRepo) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[id.ID]*boardstock.Stock, len(r.rows))
	for k, row := range r.rows {
		cp := *row
		saved[k] = &cp
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.rows = saved
	}
}

func (r *BoardStockRepo) GetForUpdate(_ context.Context, stockID id.ID) (*boardstock.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[stockID]
	if !ok {
		return nil, apperror.NewNotFound("Stock", stockID)
	}
	cp := *row
	return &cp, nil
}

func (r *BoardStockRepo) Save(_ context.Context, s *boardstock.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[s.ID]; !ok {
		return apperror.NewNotFound("Stock", s.ID)
	}
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *BoardStockRepo) Get(ctx context.Context, stockID id.ID) (*boardstock.Stock, error) {
	return r.GetForUpdate(ctx, stockID)
}

func (r *BoardStockRepo) Create(_ context.Context, s *boardstock.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *BoardStockRepo) List(_ context.Context, limit, offset int) ([]boardstock.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []boardstock.Stock
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out, nil
}

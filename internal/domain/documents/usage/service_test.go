package usage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/usage"
	"millstock/internal/domain/domaintest"
	"millstock/internal/domain/registers/stock"
)

type memRepo struct {
	entries map[id.ID]*usage.Entry
}

func newMemRepo() *memRepo {
	return &memRepo{entries: map[id.ID]*usage.Entry{}}
}

func (r *memRepo) Create(_ context.Context, e *usage.Entry) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, entryID id.ID) (*usage.Entry, error) {
	e, ok := r.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("Usage", entryID)
	}
	cp := *e
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, e *usage.Entry) error {
	if _, ok := r.entries[e.ID]; !ok {
		return apperror.NewNotFound("Usage", e.ID)
	}
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, entryID id.ID) error {
	if _, ok := r.entries[entryID]; !ok {
		return apperror.NewNotFound("Usage", entryID)
	}
	delete(r.entries, entryID)
	return nil
}

func (r *memRepo) List(_ context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*usage.Entry], error) {
	var items []*usage.Entry
	for _, e := range r.entries {
		if e.Kind == kind {
			items = append(items, e)
		}
	}
	return domain.ListResult[*usage.Entry]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Snapshot() func() {
	saved := make(map[id.ID]*usage.Entry, len(r.entries))
	for k, e := range r.entries {
		cp := *e
		saved[k] = &cp
	}
	return func() { r.entries = saved }
}

type fixture struct {
	svc    *usage.Service
	stocks *stock.Service
	repo   *memRepo

	productID  id.ID
	factoryID  id.ID
	factory2ID id.ID
}

// newFixture seeds one board product with a 100.00 balance at unit 1 and
// nothing at unit 2.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	boardProduct := product.New("3-ply kraft", product.KindBoard)
	mill := factory.New("unit 1")
	mill2 := factory.New("unit 2")

	productRepo := domaintest.NewProductRepo()
	productRepo.Seed(boardProduct)
	factoryRepo := domaintest.NewFactoryRepo()
	factoryRepo.Seed(mill, mill2)

	stockRepo := domaintest.NewStockRepo()
	stocks := stock.NewService(stockRepo)
	repo := newMemRepo()
	txm := domaintest.RollbackTxManager{Stores: []domaintest.Store{stockRepo, repo}}

	_, err := stocks.Credit(context.Background(), boardProduct.ID, mill.ID, types.MustQuantity("100.00"))
	require.NoError(t, err)

	svc := usage.NewService(usage.ServiceConfig{
		Kind:      product.KindBoard,
		TxManager: txm,
		Repo:      repo,
		Stocks:    stocks,
		Products:  product.NewService(productRepo, txm),
		Factories: factory.NewService(factoryRepo, txm),
	})

	return &fixture{
		svc:        svc,
		stocks:     stocks,
		repo:       repo,
		productID:  boardProduct.ID,
		factoryID:  mill.ID,
		factory2ID: mill2.ID,
	}
}

func (f *fixture) entry(quantity string) *usage.Entry {
	e := usage.New(product.KindBoard)
	e.Quantity = types.MustQuantity(quantity)
	e.ProductID = f.productID
	e.FactoryID = f.factoryID
	return e
}

func (f *fixture) balance(t *testing.T) types.Quantity {
	t.Helper()
	rec, err := f.stocks.Get(context.Background(), f.productID, f.factoryID)
	require.NoError(t, err)
	return rec.CurrentStock
}

func TestCreateDebitsStock(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), f.entry("30.00"))
	require.NoError(t, err)

	require.Len(t, res.StockUpdated, 1)
	assert.Equal(t, types.MustQuantity("100.00"), res.StockUpdated[0].Previous)
	assert.Equal(t, types.MustQuantity("70.00"), res.StockUpdated[0].Current)
	assert.Equal(t, types.MustQuantity("70.00"), f.balance(t))
}

func TestCreateInsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.entry("30.00"))
	require.NoError(t, err)

	// 100 requested, only 70 remain: the operation fails whole.
	_, err = f.svc.Create(ctx, f.entry("100.00"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "100.00", appErr.Details["requested"])
	assert.Equal(t, "70.00", appErr.Details["available"])

	// Balance unchanged, no second entry stored.
	assert.Equal(t, types.MustQuantity("70.00"), f.balance(t))
	assert.Len(t, f.repo.entries, 1)
}

func TestUpdateGrowingUsageDebitsMore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.entry("30.00"))
	require.NoError(t, err)

	e, err := f.svc.Get(ctx, res.Entry.ID)
	require.NoError(t, err)
	e.Quantity = types.MustQuantity("45.00")

	_, err = f.svc.Update(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, types.MustQuantity("55.00"), f.balance(t))
}

func TestUpdateShrinkingUsageCreditsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.entry("30.00"))
	require.NoError(t, err)

	e, err := f.svc.Get(ctx, res.Entry.ID)
	require.NoError(t, err)
	e.Quantity = types.MustQuantity("10.00")

	_, err = f.svc.Update(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, types.MustQuantity("90.00"), f.balance(t))
}

func TestUpdateGrowthBeyondBalanceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.entry("30.00"))
	require.NoError(t, err)

	e, err := f.svc.Get(ctx, res.Entry.ID)
	require.NoError(t, err)
	e.Quantity = types.MustQuantity("150.00")

	_, err = f.svc.Update(ctx, e)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Entry and balance unchanged.
	stored, err := f.svc.Get(ctx, res.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, types.MustQuantity("30.00"), stored.Quantity)
	assert.Equal(t, types.MustQuantity("70.00"), f.balance(t))
}

func TestUpdateFactoryChangeInsufficientRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.entry("30.00"))
	require.NoError(t, err)

	// Moving the usage to unit 2 credits 30 back at unit 1 and then
	// debits unit 2, which has nothing. The failure must undo the
	// credit, not leave 100 at unit 1.
	e, err := f.svc.Get(ctx, res.Entry.ID)
	require.NoError(t, err)
	e.FactoryID = f.factory2ID

	_, err = f.svc.Update(ctx, e)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	assert.Equal(t, types.MustQuantity("70.00"), f.balance(t))
	stored, err := f.svc.Get(ctx, res.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, f.factoryID, stored.FactoryID)
}

func TestDeleteRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.entry("30.00"))
	require.NoError(t, err)

	del, err := f.svc.Delete(ctx, res.Entry.ID)
	require.NoError(t, err)
	require.Len(t, del.StockUpdated, 1)
	assert.Equal(t, types.MustQuantity("100.00"), f.balance(t))
}

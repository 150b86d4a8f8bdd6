package swap_test

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
	"millstock/internal/domain/documents/swap"
	"millstock/internal/domain/domaintest"
	"millstock/internal/domain/registers/stock"
)

type memRepo struct {
	swaps map[id.ID]*swap.Swap
}

func newMemRepo() *memRepo {
	return &memRepo{swaps: map[id.ID]*swap.Swap{}}
}

func (r *memRepo) Create(_ context.Context, sw *swap.Swap) error {
	cp := *sw
	r.swaps[sw.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, swapID id.ID) (*swap.Swap, error) {
	sw, ok := r.swaps[swapID]
	if !ok {
		return nil, apperror.NewNotFound("Swap", swapID)
	}
	cp := *sw
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, sw *swap.Swap) error {
	if _, ok := r.swaps[sw.ID]; !ok {
		return apperror.NewNotFound("Swap", sw.ID)
	}
	cp := *sw
	r.swaps[sw.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, swapID id.ID) error {
	if _, ok := r.swaps[swapID]; !ok {
		return apperror.NewNotFound("Swap", swapID)
	}
	delete(r.swaps, swapID)
	return nil
}

func (r *memRepo) List(_ context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*swap.Swap], error) {
	var items []*swap.Swap
	for _, sw := range r.swaps {
		if sw.Kind == kind {
			items = append(items, sw)
		}
	}
	return domain.ListResult[*swap.Swap]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Snapshot() func() {
	saved := make(map[id.ID]*swap.Swap, len(r.swaps))
	for k, sw := range r.swaps {
		cp := *sw
		saved[k] = &cp
	}
	return func() { r.swaps = saved }
}

type fixture struct {
	svc    *swap.Service
	stocks *stock.Service

	productID id.ID
	factory1  id.ID
	factory2  id.ID
	factory3  id.ID
}

// newFixture seeds one board product with 50.00 at factory 1 and
// nothing elsewhere.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	boardProduct := product.New("3-ply kraft", product.KindBoard)
	f1 := factory.New("unit 1")
	f2 := factory.New("unit 2")
	f3 := factory.New("unit 3")

	productRepo := domaintest.NewProductRepo()
	productRepo.Seed(boardProduct)
	factoryRepo := domaintest.NewFactoryRepo()
	factoryRepo.Seed(f1, f2, f3)

	stockRepo := domaintest.NewStockRepo()
	repo := newMemRepo()
	txm := domaintest.RollbackTxManager{Stores: []domaintest.Store{stockRepo, repo}}
	stocks := stock.NewService(stockRepo)

	_, err := stocks.Credit(context.Background(), boardProduct.ID, f1.ID, types.MustQuantity("50.00"))
	require.NoError(t, err)

	svc := swap.NewService(swap.ServiceConfig{
		Kind:      product.KindBoard,
		TxManager: txm,
		Repo:      repo,
		Stocks:    stocks,
		Products:  product.NewService(productRepo, txm),
		Factories: factory.NewService(factoryRepo, txm),
	})

	return &fixture{
		svc:       svc,
		stocks:    stocks,
		productID: boardProduct.ID,
		factory1:  f1.ID,
		factory2:  f2.ID,
		factory3:  f3.ID,
	}
}

func (f *fixture) swap(quantity string) *swap.Swap {
	sw := swap.New(product.KindBoard)
	sw.Quantity = types.MustQuantity(quantity)
	sw.ProductID = f.productID
	sw.FromFactoryID = f.factory1
	sw.ToFactoryID = f.factory2
	return sw
}

func (f *fixture) balance(t *testing.T, factoryID id.ID) types.Quantity {
	t.Helper()
	rec, err := f.stocks.Get(context.Background(), f.productID, factoryID)
	require.NoError(t, err)
	return rec.CurrentStock
}

func TestCreateMovesQuantityBetweenFactories(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), f.swap("20.00"))
	require.NoError(t, err)

	require.Len(t, res.StockUpdated, 2)
	assert.Equal(t, types.MustQuantity("30.00"), f.balance(t, f.factory1))
	assert.Equal(t, types.MustQuantity("20.00"), f.balance(t, f.factory2))
}

func TestCreateInsufficientSourceFailsAtomically(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.swap("80.00"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// Neither side moved.
	assert.Equal(t, types.MustQuantity("50.00"), f.balance(t, f.factory1))
	_, err = f.stocks.Get(context.Background(), f.productID, f.factory2)
	require.Error(t, err)
}

func TestCreateRejectsSameFactory(t *testing.T) {
	f := newFixture(t)

	sw := f.swap("10.00")
	sw.ToFactoryID = sw.FromFactoryID

	_, err := f.svc.Create(context.Background(), sw)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdateReappliesTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.swap("20.00"))
	require.NoError(t, err)

	// Redirect the transfer to factory 3 and grow it to 25.
	sw, err := f.svc.Get(ctx, res.Swap.ID)
	require.NoError(t, err)
	sw.ToFactoryID = f.factory3
	sw.Quantity = types.MustQuantity("25.00")

	upd, err := f.svc.Update(ctx, sw)
	require.NoError(t, err)
	require.Len(t, upd.StockUpdated, 4)

	assert.Equal(t, types.MustQuantity("25.00"), f.balance(t, f.factory1))
	assert.Equal(t, types.MustQuantity("0.00"), f.balance(t, f.factory2))
	assert.Equal(t, types.MustQuantity("25.00"), f.balance(t, f.factory3))
}

func TestUpdateInsufficientAfterReversalRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.swap("20.00"))
	require.NoError(t, err)

	sw, err := f.svc.Get(ctx, res.Swap.ID)
	require.NoError(t, err)
	sw.Quantity = types.MustQuantity("80.00")

	_, err = f.svc.Update(ctx, sw)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	// The failed update reversed the old transfer before the debit blew
	// up; the rollback must restore both balances and the stored swap.
	assert.Equal(t, types.MustQuantity("30.00"), f.balance(t, f.factory1))
	assert.Equal(t, types.MustQuantity("20.00"), f.balance(t, f.factory2))

	kept, err := f.svc.Get(ctx, res.Swap.ID)
	require.NoError(t, err)
	assert.Equal(t, types.MustQuantity("20.00"), kept.Quantity)
	assert.Equal(t, f.factory2, kept.ToFactoryID)
}

func TestDeleteRestoresBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.swap("20.00"))
	require.NoError(t, err)

	del, err := f.svc.Delete(ctx, res.Swap.ID)
	require.NoError(t, err)
	require.Len(t, del.StockUpdated, 2)

	assert.Equal(t, types.MustQuantity("50.00"), f.balance(t, f.factory1))
	assert.Equal(t, types.MustQuantity("0.00"), f.balance(t, f.factory2))
}

func TestSwapConservesSystemTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.swap("20.00"))
	require.NoError(t, err)

	total, err := f.stocks.ProductAvailability(ctx, f.productID)
	require.NoError(t, err)
	assert.Equal(t, types.MustQuantity("50.00"), total)
}

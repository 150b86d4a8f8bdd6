package jobcard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/distributor"
	"millstock/internal/domain/documents/jobcard"
	"millstock/internal/domain/domaintest"
	"millstock/internal/domain/registers/boardstock"
)

type memRepo struct {
	cards map[id.ID]*jobcard.Card
}

func newMemRepo() *memRepo {
	return &memRepo{cards: map[id.ID]*jobcard.Card{}}
}

func (r *memRepo) Create(_ context.Context, c *jobcard.Card) error {
	cp := *c
	r.cards[c.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, cardID id.ID) (*jobcard.Card, error) {
	c, ok := r.cards[cardID]
	if !ok {
		return nil, apperror.NewNotFound("JobCard", cardID)
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, c *jobcard.Card) error {
	if _, ok := r.cards[c.ID]; !ok {
		return apperror.NewNotFound("JobCard", c.ID)
	}
	cp := *c
	r.cards[c.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, cardID id.ID) error {
	if _, ok := r.cards[cardID]; !ok {
		return apperror.NewNotFound("JobCard", cardID)
	}
	delete(r.cards, cardID)
	return nil
}

func (r *memRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*jobcard.Card], error) {
	var items []*jobcard.Card
	for _, c := range r.cards {
		items = append(items, c)
	}
	return domain.ListResult[*jobcard.Card]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Snapshot() func() {
	saved := make(map[id.ID]*jobcard.Card, len(r.cards))
	for k, c := range r.cards {
		cp := *c
		saved[k] = &cp
	}
	return func() { r.cards = saved }
}

type fixture struct {
	svc    *jobcard.Service
	stocks *boardstock.Service

	stockA        *boardstock.Stock
	stockB        *boardstock.Stock
	distributorID id.ID
}

// newFixture seeds two board stock rows: A with 100.00, B with 10.00.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	stockA := boardstock.NewStock("3-ply 150gsm 42in", types.MustQuantity("100.00"))
	stockB := boardstock.NewStock("5-ply 180gsm 36in", types.MustQuantity("10.00"))
	dist := distributor.New("north region")

	stockRepo := domaintest.NewBoardStockRepo()
	stockRepo.Seed(stockA, stockB)
	distRepo := domaintest.NewDistributorRepo()
	distRepo.Seed(dist)

	repo := newMemRepo()
	txm := domaintest.RollbackTxManager{Stores: []domaintest.Store{stockRepo, repo}}
	stocks := boardstock.NewService(stockRepo)

	svc := jobcard.NewService(jobcard.ServiceConfig{
		TxManager:    txm,
		Repo:         repo,
		Stocks:       stocks,
		Distributors: distributor.NewService(distRepo, txm),
	})

	return &fixture{
		svc:           svc,
		stocks:        stocks,
		stockA:        stockA,
		stockB:        stockB,
		distributorID: dist.ID,
	}
}

func (f *fixture) card(quantity string) *jobcard.Card {
	c := jobcard.New()
	c.CardNo = "JC-001"
	c.Quantity = types.MustQuantity(quantity)
	c.StockID = f.stockA.ID
	return c
}

func (f *fixture) quantity(t *testing.T, stockID id.ID) types.Quantity {
	t.Helper()
	row, err := f.stocks.Get(context.Background(), stockID)
	require.NoError(t, err)
	return row.Quantity
}

func TestCreateConsumesBoardStock(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), f.card("40.00"))
	require.NoError(t, err)

	require.Len(t, res.StockUpdated, 1)
	assert.Equal(t, types.MustQuantity("100.00"), res.StockUpdated[0].Previous)
	assert.Equal(t, types.MustQuantity("60.00"), res.StockUpdated[0].Current)
	assert.Equal(t, types.MustQuantity("60.00"), f.quantity(t, f.stockA.ID))
}

func TestCreateInsufficientBoardStock(t *testing.T) {
	f := newFixture(t)

	c := f.card("15.00")
	c.StockID = f.stockB.ID

	_, err := f.svc.Create(context.Background(), c)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, types.MustQuantity("10.00"), f.quantity(t, f.stockB.ID))
}

func TestCreateWithDistributor(t *testing.T) {
	f := newFixture(t)

	c := f.card("5.00")
	c.DistributorID = f.distributorID

	_, err := f.svc.Create(context.Background(), c)
	require.NoError(t, err)
}

func TestCreateUnknownDistributor(t *testing.T) {
	f := newFixture(t)

	c := f.card("5.00")
	c.DistributorID = id.New()

	_, err := f.svc.Create(context.Background(), c)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestUpdateSameStockAdjustsDifference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.card("40.00"))
	require.NoError(t, err)

	c, err := f.svc.Get(ctx, res.Card.ID)
	require.NoError(t, err)
	c.Quantity = types.MustQuantity("55.00")

	upd, err := f.svc.Update(ctx, c)
	require.NoError(t, err)
	require.Len(t, upd.StockUpdated, 1)
	assert.Equal(t, types.MustQuantity("45.00"), f.quantity(t, f.stockA.ID))
}

func TestUpdateStockChangeRestoresAndConsumes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.card("8.00"))
	require.NoError(t, err)

	c, err := f.svc.Get(ctx, res.Card.ID)
	require.NoError(t, err)
	c.StockID = f.stockB.ID

	upd, err := f.svc.Update(ctx, c)
	require.NoError(t, err)
	require.Len(t, upd.StockUpdated, 2)

	assert.Equal(t, types.MustQuantity("100.00"), f.quantity(t, f.stockA.ID))
	assert.Equal(t, types.MustQuantity("2.00"), f.quantity(t, f.stockB.ID))
}

func TestUpdateStockChangeInsufficientRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.card("40.00"))
	require.NoError(t, err)

	// Reassigning to B restores the 40 at A first; consuming 40 from
	// B's 10 then fails, and the restore must not survive.
	c, err := f.svc.Get(ctx, res.Card.ID)
	require.NoError(t, err)
	c.StockID = f.stockB.ID

	_, err = f.svc.Update(ctx, c)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	assert.Equal(t, types.MustQuantity("60.00"), f.quantity(t, f.stockA.ID))
	assert.Equal(t, types.MustQuantity("10.00"), f.quantity(t, f.stockB.ID))

	stored, err := f.svc.Get(ctx, res.Card.ID)
	require.NoError(t, err)
	assert.Equal(t, f.stockA.ID, stored.StockID)
}

func TestUpdateWithoutQuantityChangeLeavesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.card("40.00"))
	require.NoError(t, err)

	c, err := f.svc.Get(ctx, res.Card.ID)
	require.NoError(t, err)
	c.CardNo = "JC-002"

	upd, err := f.svc.Update(ctx, c)
	require.NoError(t, err)
	assert.Empty(t, upd.StockUpdated)
	assert.Equal(t, types.MustQuantity("60.00"), f.quantity(t, f.stockA.ID))
}

func TestDeleteRestoresBoardStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, f.card("40.00"))
	require.NoError(t, err)

	del, err := f.svc.Delete(ctx, res.Card.ID)
	require.NoError(t, err)
	require.Len(t, del.StockUpdated, 1)
	assert.Equal(t, types.MustQuantity("100.00"), f.quantity(t, f.stockA.ID))
}

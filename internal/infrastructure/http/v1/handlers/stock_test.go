package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millstock/internal/core/id"
	"millstock/internal/core/types"
	"millstock/internal/domain/domaintest"
	"millstock/internal/domain/registers/stock"
	"millstock/internal/infrastructure/http/v1/handlers"
)

// roTx counts read-only transactions so tests can assert the read
// endpoints actually run through one.
type roTx struct {
	calls int
}

func (m *roTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *roTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type stockFixture struct {
	router *gin.Engine
	ro     *roTx

	productID id.ID
	factoryID id.ID
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := stock.NewService(domaintest.NewStockRepo())
	productID := id.New()
	factoryID := id.New()

	_, err := svc.Credit(context.Background(), productID, factoryID, types.MustQuantity("30.00"))
	require.NoError(t, err)

	ro := &roTx{}
	router := gin.New()
	handlers.NewStockHandler(svc, ro).RegisterRoutes(router.Group("/stocks"))

	return &stockFixture{
		router:    router,
		ro:        ro,
		productID: productID,
		factoryID: factoryID,
	}
}

func (f *stockFixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	f.router.ServeHTTP(w, req)
	return w
}

func TestProductAvailabilityRunsReadOnly(t *testing.T) {
	f := newStockFixture(t)

	w := f.get("/stocks/availability/" + f.productID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		fmt.Sprintf(`{"productId":%q,"available":30.00}`, f.productID.String()),
		w.Body.String(),
	)
	assert.Equal(t, 1, f.ro.calls)
}

func TestFactoryStockRunsReadOnly(t *testing.T) {
	f := newStockFixture(t)

	w := f.get("/stocks/factory/" + f.factoryID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.ro.calls)
}

func TestStockListRunsReadOnly(t *testing.T) {
	f := newStockFixture(t)

	w := f.get("/stocks?limit=10")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.ro.calls)
}

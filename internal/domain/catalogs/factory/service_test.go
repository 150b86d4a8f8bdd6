package factory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/factory"
	"millstock/internal/domain/domaintest"
)

func newService() *factory.Service {
	return factory.NewService(domaintest.NewFactoryRepo(), domaintest.TxManager{})
}

func TestCreateAndGet(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	f := factory.New("unit 1")
	f.Location = "warangal"
	require.NoError(t, svc.Create(ctx, f))

	got, err := svc.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "unit 1", got.Name)
	assert.Equal(t, "warangal", got.Location)

	byName, err := svc.GetByName(ctx, "unit 1")
	require.NoError(t, err)
	assert.Equal(t, f.ID, byName.ID)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, factory.New("unit 1")))

	err := svc.Create(ctx, factory.New("unit 1"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := newService()

	err := svc.Create(context.Background(), factory.New(""))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGetMissing(t *testing.T) {
	svc := newService()

	_, err := svc.GetByID(context.Background(), id.New())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "Factory")
}

func TestDeleteIsSoft(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	f := factory.New("unit 1")
	require.NoError(t, svc.Create(ctx, f))
	require.NoError(t, svc.Delete(ctx, f.ID))

	// Gone from default listing...
	result, err := svc.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)

	// ...but still present with IncludeDeleted.
	result, err = svc.List(ctx, domain.ListFilter{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].DeletionMark)

	// Exists treats soft-deleted as absent.
	ok, err := svc.Exists(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListSearch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, factory.New("north mill")))
	require.NoError(t, svc.Create(ctx, factory.New("south mill")))
	require.NoError(t, svc.Create(ctx, factory.New("warehouse")))

	result, err := svc.List(ctx, domain.ListFilter{Search: "mill"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
}

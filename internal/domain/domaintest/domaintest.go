// Package domaintest provides in-memory repository implementations for
// service tests. The fakes honor the same error contracts as the
// Postgres repositories (NOT_FOUND on missing rows) so services behave
// identically against either.
package domaintest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"millstock/internal/core/apperror"
	"millstock/internal/core/entity"
	"millstock/internal/core/id"
	"millstock/internal/domain"
)

type txCtxKey struct{}

// InTransaction reports whether ctx was derived by a test transaction
// manager. Lets fakes assert they were called inside the transaction.
func InTransaction(ctx context.Context) bool {
	v, _ := ctx.Value(txCtxKey{}).(bool)
	return v
}

// TxManager runs the function directly, without a database. Failures do
// not restore fake state; use RollbackTxManager when a test asserts
// state after a failed transaction.
type TxManager struct{}

func (TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, txCtxKey{}, true))
}

// Store is implemented by fakes whose state can be snapshotted. Snapshot
// returns a closure restoring the state captured at the call.
type Store interface {
	Snapshot() (restore func())
}

// RollbackTxManager mirrors database transaction semantics over fakes:
// when the function fails, every registered store is restored to its
// pre-transaction state.
type RollbackTxManager struct {
	Stores []Store
}

func (m RollbackTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), len(m.Stores))
	for i, s := range m.Stores {
		restores[i] = s.Snapshot()
	}

	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}
	return nil
}

// AuditLog records audit events for assertions. InTx tracks, per event,
// whether Record ran inside a transaction.
type AuditLog struct {
	mu     sync.Mutex
	Events []domain.AuditEvent
	InTx   []bool
}

func (l *AuditLog) Record(ctx context.Context, event domain.AuditEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Events = append(l.Events, event)
	l.InTx = append(l.InTx, InTransaction(ctx))
}

// CatalogRepo is an in-memory domain.CatalogRepository implementation.
// Base extracts the embedded BaseEntity from a concrete catalog type.
type CatalogRepo[T domain.NamedEntity] struct {
	mu         sync.Mutex
	entityName string
	base       func(T) *entity.BaseEntity
	items      map[id.ID]T
}

// NewCatalogRepo creates an empty catalog repo.
func NewCatalogRepo[T domain.NamedEntity](entityName string, base func(T) *entity.BaseEntity) *CatalogRepo[T] {
	return &CatalogRepo[T]{
		entityName: entityName,
		base:       base,
		items:      map[id.ID]T{},
	}
}

// Seed inserts entities without validation.
func (r *CatalogRepo[T]) Seed(items ...T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[r.base(item).ID] = item
	}
}

func (r *CatalogRepo[T]) Create(_ context.Context, ent T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[r.base(ent).ID] = ent
	return nil
}

func (r *CatalogRepo[T]) GetByID(_ context.Context, entityID id.ID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.items[entityID]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound(r.entityName, entityID)
	}
	return ent, nil
}

func (r *CatalogRepo[T]) GetByName(_ context.Context, name string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ent := range r.items {
		if ent.GetName() == name && !r.base(ent).DeletionMark {
			return ent, nil
		}
	}
	var zero T
	return zero, apperror.NewNotFound(r.entityName, name)
}

func (r *CatalogRepo[T]) Update(_ context.Context, ent T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entityID := r.base(ent).ID
	if _, ok := r.items[entityID]; !ok {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	r.items[entityID] = ent
	return nil
}

func (r *CatalogRepo[T]) SetDeletionMark(_ context.Context, entityID id.ID, marked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	r.base(ent).DeletionMark = marked
	return nil
}

func (r *CatalogRepo[T]) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []T
	for _, ent := range r.items {
		if r.base(ent).DeletionMark && !filter.IncludeDeleted {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(ent.GetName()), strings.ToLower(filter.Search)) {
			continue
		}
		items = append(items, ent)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].GetName() < items[j].GetName()
	})

	return domain.ListResult[T]{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

func (r *CatalogRepo[T]) Exists(_ context.Context, entityID id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.items[entityID]
	return ok && !r.base(ent).DeletionMark, nil
}

func (r *CatalogRepo[T]) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ent := range r.items {
		if ent.GetName() == name && !r.base(ent).DeletionMark {
			return true, nil
		}
	}
	return false, nil
}

// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/domain/registers/stock"
	"millstock/internal/infrastructure/storage/postgres"
)

const stockRecordsTable = "reg_stock_records"

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

var stockRecordCols = postgres.ExtractDBColumns[stock.Record]()

// GetForUpdate returns the record for (product, factory) with a row lock.
// The lock serializes concurrent mutations of the same pair, so two debits
// cannot both read the same pre-update balance.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, factoryID id.ID) (*stock.Record, error) {
	q := r.builder.
		Select(stockRecordCols...).
		From(stockRecordsTable).
		Where(squirrel.Eq{"product_id": productID, "factory_id": factoryID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec stock.Record
	if err := pgxscan.Get(ctx, r.querier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("StockRecord", productID.String()+"/"+factoryID.String())
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}

	return &rec, nil
}

// FindOrCreateForUpdate returns the locked record for (product, factory),
// inserting one with opening_stock=0 when absent. The insert tolerates a
// concurrent creator via ON CONFLICT DO NOTHING; the subsequent locked
// select always sees the surviving row.
func (r *StockRepo) FindOrCreateForUpdate(ctx context.Context, productID, factoryID id.ID) (*stock.Record, error) {
	fresh := stock.NewRecord(productID, factoryID)
	data := postgres.StructToMap(fresh)

	insertData := make(map[string]any, len(stockRecordCols))
	for _, col := range stockRecordCols {
		if val, ok := data[col]; ok {
			insertData[col] = val
		}
	}

	q := r.builder.
		Insert(stockRecordsTable).
		SetMap(insertData).
		Suffix("ON CONFLICT (product_id, factory_id) DO NOTHING")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert stock record: %w", err)
	}

	return r.GetForUpdate(ctx, productID, factoryID)
}

// Save persists the mutated balance of a previously loaded record.
func (r *StockRepo) Save(ctx context.Context, rec *stock.Record) error {
	q := r.builder.
		Update(stockRecordsTable).
		Set("current_stock", rec.CurrentStock).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("StockRecord", rec.ID.String())
	}

	rec.SetVersion(rec.Version + 1)
	return nil
}

// Get returns the record without locking.
func (r *StockRepo) Get(ctx context.Context, productID, factoryID id.ID) (*stock.Record, error) {
	q := r.builder.
		Select(stockRecordCols...).
		From(stockRecordsTable).
		Where(squirrel.Eq{"product_id": productID, "factory_id": factoryID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec stock.Record
	if err := pgxscan.Get(ctx, r.querier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("StockRecord", productID.String()+"/"+factoryID.String())
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}

	return &rec, nil
}

// ListByFactory returns all non-deleted records for a factory.
func (r *StockRepo) ListByFactory(ctx context.Context, factoryID id.ID) ([]stock.Record, error) {
	q := r.builder.
		Select(stockRecordCols...).
		From(stockRecordsTable).
		Where(squirrel.Eq{"factory_id": factoryID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("product_id")

	return r.selectRecords(ctx, q, "list by factory")
}

// ListByProduct returns records across all factories for a product.
func (r *StockRepo) ListByProduct(ctx context.Context, productID id.ID) ([]stock.Record, error) {
	q := r.builder.
		Select(stockRecordCols...).
		From(stockRecordsTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("factory_id")

	return r.selectRecords(ctx, q, "list by product")
}

// List returns non-deleted records, newest first.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]stock.Record, error) {
	q := r.builder.
		Select(stockRecordCols...).
		From(stockRecordsTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	return r.selectRecords(ctx, q, "list")
}

func (r *StockRepo) selectRecords(ctx context.Context, q squirrel.SelectBuilder, op string) ([]stock.Record, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []stock.Record
	if err := pgxscan.Select(ctx, r.querier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)

package register_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/domain/registers/boardstock"
	"millstock/internal/infrastructure/storage/postgres"
)

const boardStockTable = "reg_board_stocks"

// BoardStockRepo implements boardstock.Repository.
type BoardStockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewBoardStockRepo creates a new board stock repository.
func NewBoardStockRepo(txManager *postgres.TxManager) *BoardStockRepo {
	return &BoardStockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BoardStockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

var boardStockCols = postgres.ExtractDBColumns[boardstock.Stock]()

// GetForUpdate returns the row with a row lock.
func (r *BoardStockRepo) GetForUpdate(ctx context.Context, stockID id.ID) (*boardstock.Stock, error) {
	q := r.builder.
		Select(boardStockCols...).
		From(boardStockTable).
		Where(squirrel.Eq{"id": stockID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row boardstock.Stock
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Stock", stockID.String())
		}
		return nil, fmt.Errorf("get board stock for update: %w", err)
	}

	return &row, nil
}

// Save persists a mutated row.
func (r *BoardStockRepo) Save(ctx context.Context, s *boardstock.Stock) error {
	q := r.builder.
		Update(boardStockTable).
		Set("quantity", s.Quantity).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": s.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update board stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("Stock", s.ID.String())
	}

	s.SetVersion(s.Version + 1)
	return nil
}

// Get returns the row without locking.
func (r *BoardStockRepo) Get(ctx context.Context, stockID id.ID) (*boardstock.Stock, error) {
	q := r.builder.
		Select(boardStockCols...).
		From(boardStockTable).
		Where(squirrel.Eq{"id": stockID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row boardstock.Stock
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Stock", stockID.String())
		}
		return nil, fmt.Errorf("get board stock: %w", err)
	}

	return &row, nil
}

// Create inserts a new board stock row.
func (r *BoardStockRepo) Create(ctx context.Context, s *boardstock.Stock) error {
	data := postgres.StructToMap(s)

	insertData := make(map[string]any, len(boardStockCols))
	for _, col := range boardStockCols {
		if val, ok := data[col]; ok {
			insertData[col] = val
		}
	}

	q := r.builder.
		Insert(boardStockTable).
		SetMap(insertData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("Stock", "name", s.Name).WithCause(err)
		}
		return fmt.Errorf("insert board stock: %w", err)
	}

	return nil
}

// List returns non-deleted rows, newest first.
func (r *BoardStockRepo) List(ctx context.Context, limit, offset int) ([]boardstock.Stock, error) {
	q := r.builder.
		Select(boardStockCols...).
		From(boardStockTable).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []boardstock.Stock
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list board stocks: %w", err)
	}

	return rows, nil
}

// Ensure interface compliance.
var _ boardstock.Repository = (*BoardStockRepo)(nil)

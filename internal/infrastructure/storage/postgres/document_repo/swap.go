package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/swap"
	"millstock/internal/infrastructure/storage/postgres"
)

const swapTable = "doc_swaps"

// SwapRepo implements swap.Repository.
type SwapRepo struct {
	*BaseDocumentRepo[*swap.Swap]
}

// NewSwapRepo creates a new swap repository.
func NewSwapRepo(txManager *postgres.TxManager) *SwapRepo {
	return &SwapRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*swap.Swap](
			txManager,
			swapTable,
			"Swap",
			postgres.ExtractDBColumns[swap.Swap](),
			func() *swap.Swap { return &swap.Swap{} },
		),
	}
}

// List returns swaps of one kind, newest first.
func (r *SwapRepo) List(ctx context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*swap.Swap], error) {
	return r.list(ctx, filter, squirrel.Eq{"kind": string(kind)})
}

// Ensure interface compliance.
var _ swap.Repository = (*SwapRepo)(nil)

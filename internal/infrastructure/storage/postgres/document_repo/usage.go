package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/usage"
	"millstock/internal/infrastructure/storage/postgres"
)

const usageTable = "doc_usages"

// UsageRepo implements usage.Repository.
type UsageRepo struct {
	*BaseDocumentRepo[*usage.Entry]
}

// NewUsageRepo creates a new usage repository.
func NewUsageRepo(txManager *postgres.TxManager) *UsageRepo {
	return &UsageRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*usage.Entry](
			txManager,
			usageTable,
			"Usage",
			postgres.ExtractDBColumns[usage.Entry](),
			func() *usage.Entry { return &usage.Entry{} },
		),
	}
}

// List returns entries of one kind, newest first.
func (r *UsageRepo) List(ctx context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*usage.Entry], error) {
	return r.list(ctx, filter, squirrel.Eq{"kind": string(kind)})
}

// Ensure interface compliance.
var _ usage.Repository = (*UsageRepo)(nil)

package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"millstock/internal/domain"
	"millstock/internal/domain/catalogs/product"
	"millstock/internal/domain/documents/purchase"
	"millstock/internal/infrastructure/storage/postgres"
)

const purchaseTable = "doc_purchases"

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Entry]
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchase.Entry](
			txManager,
			purchaseTable,
			"Purchase",
			postgres.ExtractDBColumns[purchase.Entry](),
			func() *purchase.Entry { return &purchase.Entry{} },
		),
	}
}

// List returns entries of one kind, newest first.
func (r *PurchaseRepo) List(ctx context.Context, kind product.Kind, filter domain.ListFilter) (domain.ListResult[*purchase.Entry], error) {
	return r.list(ctx, filter, squirrel.Eq{"kind": string(kind)})
}

// Ensure interface compliance.
var _ purchase.Repository = (*PurchaseRepo)(nil)

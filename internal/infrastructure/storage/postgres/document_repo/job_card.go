package document_repo

import (
	"context"

	"millstock/internal/domain"
	"millstock/internal/domain/documents/jobcard"
	"millstock/internal/infrastructure/storage/postgres"
)

const jobCardTable = "doc_job_cards"

// JobCardRepo implements jobcard.Repository.
type JobCardRepo struct {
	*BaseDocumentRepo[*jobcard.Card]
}

// NewJobCardRepo creates a new job card repository.
func NewJobCardRepo(txManager *postgres.TxManager) *JobCardRepo {
	return &JobCardRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*jobcard.Card](
			txManager,
			jobCardTable,
			"JobCard",
			postgres.ExtractDBColumns[jobcard.Card](),
			func() *jobcard.Card { return &jobcard.Card{} },
		),
	}
}

// List returns cards newest first.
func (r *JobCardRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*jobcard.Card], error) {
	return r.list(ctx, filter)
}

// Ensure interface compliance.
var _ jobcard.Repository = (*JobCardRepo)(nil)

package entity

import (
	"context"
	"time"

	"millstock/internal/core/apperror"
)

// Document is the base type for business transactions.
// Examples: Purchase, Usage, Swap, JobCard.
//
// Unlike catalogs, documents are hard-deleted: removal reverses the
// document's ledger effect and drops the row.
type Document struct {
	BaseDocument

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

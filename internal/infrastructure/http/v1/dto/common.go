// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"millstock/internal/core/apperror"
	"millstock/internal/core/id"
	"millstock/internal/domain/registers/boardstock"
	"millstock/internal/domain/registers/stock"
)

// parseID parses a request ID field, mapping failures to a validation
// error naming the field.
func parseID(field, value string) (id.ID, error) {
	parsed, err := id.Parse(value)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid identifier").
			WithDetail("field", field).
			WithCause(err)
	}
	return parsed, nil
}

// parseOptionalID parses an ID field that may be empty.
func parseOptionalID(field, value string) (id.ID, error) {
	if value == "" {
		return id.Nil(), nil
	}
	return parseID(field, value)
}

// parseDate accepts RFC 3339 timestamps or plain dates (2006-01-02).
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperror.NewValidation("invalid date").
			WithDetail("field", "date").
			WithCause(err)
	}
	return t, nil
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Stock change summaries ---

// StockChangeResponse is one line of the stock_updated summary returned
// by mutating document endpoints.
type StockChangeResponse struct {
	ProductID string `json:"productId"`
	FactoryID string `json:"factoryId"`
	Previous  string `json:"previous"`
	Current   string `json:"current"`
}

// FromStockChange converts a register change to its response form.
func FromStockChange(ch stock.Change) StockChangeResponse {
	return StockChangeResponse{
		ProductID: ch.ProductID.String(),
		FactoryID: ch.FactoryID.String(),
		Previous:  ch.Previous.String(),
		Current:   ch.Current.String(),
	}
}

// FromStockChanges converts a change slice.
func FromStockChanges(changes []stock.Change) []StockChangeResponse {
	out := make([]StockChangeResponse, len(changes))
	for i, ch := range changes {
		out[i] = FromStockChange(ch)
	}
	return out
}

// BoardStockChangeResponse is the stock_updated summary for job cards.
type BoardStockChangeResponse struct {
	StockID  string `json:"stockId"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// FromBoardStockChange converts a board register change.
func FromBoardStockChange(ch boardstock.Change) BoardStockChangeResponse {
	return BoardStockChangeResponse{
		StockID:  ch.StockID.String(),
		Previous: ch.Previous.String(),
		Current:  ch.Current.String(),
	}
}

// FromBoardStockChanges converts a change slice.
func FromBoardStockChanges(changes []boardstock.Change) []BoardStockChangeResponse {
	out := make([]BoardStockChangeResponse, len(changes))
	for i, ch := range changes {
		out[i] = FromBoardStockChange(ch)
	}
	return out
}

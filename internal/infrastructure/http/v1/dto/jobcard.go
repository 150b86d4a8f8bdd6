package dto

import (
	"millstock/internal/core/types"
	"millstock/internal/domain/documents/jobcard"
)

// CreateJobCardRequest creates a job card against a board stock row.
type CreateJobCardRequest struct {
	Date          string         `json:"date,omitempty"`
	CardNo        string         `json:"cardNo" binding:"required"`
	Quantity      types.Quantity `json:"quantity" binding:"required"`
	StockID       string         `json:"stockId" binding:"required"`
	DistributorID string         `json:"distributorId,omitempty"`
	Comment       string         `json:"comment,omitempty"`
}

// ToEntity converts the request to a job card.
func (r *CreateJobCardRequest) ToEntity() (*jobcard.Card, error) {
	c := jobcard.New()
	c.CardNo = r.CardNo
	c.Quantity = r.Quantity
	c.Comment = r.Comment

	if r.Date != "" {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, err
		}
		c.Date = d
	}
	var err error
	if c.StockID, err = parseID("stockId", r.StockID); err != nil {
		return nil, err
	}
	if c.DistributorID, err = parseOptionalID("distributorId", r.DistributorID); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateJobCardRequest patches a job card.
type UpdateJobCardRequest struct {
	Date          *string         `json:"date,omitempty"`
	CardNo        *string         `json:"cardNo,omitempty"`
	Quantity      *types.Quantity `json:"quantity,omitempty"`
	StockID       *string         `json:"stockId,omitempty"`
	DistributorID *string         `json:"distributorId,omitempty"`
	Comment       *string         `json:"comment,omitempty"`
}

// ApplyTo overlays the request onto an existing card.
func (r *UpdateJobCardRequest) ApplyTo(c *jobcard.Card) error {
	if r.Date != nil {
		d, err := parseDate(*r.Date)
		if err != nil {
			return err
		}
		c.Date = d
	}
	if r.CardNo != nil {
		c.CardNo = *r.CardNo
	}
	if r.Quantity != nil {
		c.Quantity = *r.Quantity
	}
	if r.Comment != nil {
		c.Comment = *r.Comment
	}

	var err error
	if r.StockID != nil {
		if c.StockID, err = parseID("stockId", *r.StockID); err != nil {
			return err
		}
	}
	if r.DistributorID != nil {
		if c.DistributorID, err = parseOptionalID("distributorId", *r.DistributorID); err != nil {
			return err
		}
	}
	return nil
}

// JobCardMutationResponse is the body of mutating job card endpoints.
type JobCardMutationResponse struct {
	Message      string                     `json:"message"`
	Card         *jobcard.Card              `json:"card"`
	StockUpdated []BoardStockChangeResponse `json:"stockUpdated,omitempty"`
}

// NewJobCardMutationResponse builds the response from a service result.
func NewJobCardMutationResponse(message string, res *jobcard.Result) JobCardMutationResponse {
	return JobCardMutationResponse{
		Message:      message,
		Card:         res.Card,
		StockUpdated: FromBoardStockChanges(res.StockUpdated),
	}
}

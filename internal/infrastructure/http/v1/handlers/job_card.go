package handlers

import (
	"github.com/gin-gonic/gin"

	"millstock/internal/domain/documents/jobcard"
	"millstock/internal/infrastructure/http/v1/dto"
)

// JobCardHandler serves production job cards.
type JobCardHandler struct {
	*BaseHandler
	service *jobcard.Service
}

// NewJobCardHandler creates a job card handler.
func NewJobCardHandler(service *jobcard.Service) *JobCardHandler {
	return &JobCardHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// RegisterRoutes mounts the handler on a route group.
func (h *JobCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST: consumes board stock against the card.
func (h *JobCardHandler) Create(c *gin.Context) {
	var req dto.CreateJobCardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	card, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), card)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.NewJobCardMutationResponse("job card recorded", res))
}

// List handles GET: newest first, paginated.
func (h *JobCardHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Paginated(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /:id.
func (h *JobCardHandler) Get(c *gin.Context) {
	cardID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	card, err := h.service.Get(c.Request.Context(), cardID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, card)
}

// Update handles PUT /:id: patches the card and reconciles board stock.
func (h *JobCardHandler) Update(c *gin.Context) {
	cardID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateJobCardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	card, err := h.service.Get(c.Request.Context(), cardID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := req.ApplyTo(card); err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), card)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewJobCardMutationResponse("job card updated", res))
}

// Delete handles DELETE /:id: restores the consumed quantity and removes the card.
func (h *JobCardHandler) Delete(c *gin.Context) {
	cardID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Delete(c.Request.Context(), cardID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewJobCardMutationResponse("job card deleted", res))
}

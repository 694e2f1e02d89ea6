package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dataquality/internal/middleware"
	"dataquality/internal/service"
)

// BatchHandler handles batch submission endpoints.
type BatchHandler struct {
	batchService service.BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchService service.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Submit handles POST /api/v1/batches
// @Summary      Submit a batch
// @Description  Archives a CSV or XLSX sheet of records and queues it for validation
// @Tags         batches
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Record sheet (csv, xlsx)"
// @Success      202 {object} APIResponse{data=domain.ValidationBatch}
// @Failure      400 {object} APIResponse
// @Failure      413 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /batches [post]
func (h *BatchHandler) Submit(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	defer file.Close()

	batch, err := h.batchService.Submit(c.Request.Context(), service.SubmitBatchInput{
		Filename:    header.Filename,
		Size:        header.Size,
		Body:        file,
		SubmittedBy: middleware.GetClientName(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, batch)
}

// List handles GET /api/v1/batches
// @Summary      List batches
// @Tags         batches
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.ValidationBatch,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /batches [get]
func (h *BatchHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	batches, total, err := h.batchService.ListBatches(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, batches, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/batches/:id
// @Summary      Get a batch
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch UUID"
// @Success      200 {object} APIResponse{data=domain.ValidationBatch}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /batches/{id} [get]
func (h *BatchHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.batchService.GetBatch(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// Source handles GET /api/v1/batches/:id/source
// @Summary      Link to the archived batch file
// @Tags         batches
// @Produce      json
// @Param        id path string true "Batch UUID"
// @Success      200 {object} APIResponse{data=SourceURLResponse}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /batches/{id}/source [get]
func (h *BatchHandler) Source(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	url, err := h.batchService.SourceURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, SourceURLResponse{URL: url})
}

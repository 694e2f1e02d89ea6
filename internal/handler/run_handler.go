package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/recordsheet"
	"dataquality/internal/service"
)

// maxExportRuns caps a single export download.
const maxExportRuns = 10000

// RunHandler handles validation run history endpoints.
type RunHandler struct {
	validationService service.ValidationService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(validationService service.ValidationService) *RunHandler {
	return &RunHandler{validationService: validationService}
}

// List handles GET /api/v1/runs
// @Summary      List validation runs
// @Tags         runs
// @Produce      json
// @Param        status query string false "valid or invalid"
// @Param        batch_id query string false "Batch UUID"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.ValidationRun,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /runs [get]
func (h *RunHandler) List(c *gin.Context) {
	filter, ok := parseRunFilter(c)
	if !ok {
		return
	}
	filter.Offset, filter.Limit = parsePagination(c)

	runs, total, err := h.validationService.ListRuns(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, runs, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/runs/:id
// @Summary      Get a validation run
// @Tags         runs
// @Produce      json
// @Param        id path string true "Run UUID"
// @Success      200 {object} APIResponse{data=domain.ValidationRun}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /runs/{id} [get]
func (h *RunHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid run ID")
		return
	}

	run, err := h.validationService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, run)
}

// Export handles GET /api/v1/runs/export
// @Summary      Export validation runs
// @Description  Downloads the filtered runs as CSV or XLSX
// @Tags         runs
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string false "csv or xlsx" default(csv)
// @Param        status query string false "valid or invalid"
// @Param        batch_id query string false "Batch UUID"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /runs/export [get]
func (h *RunHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", string(domain.BatchFileCSV))
	contentType, ok := domain.BatchContentTypes[domain.BatchFileType(format)]
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	filter, ok := parseRunFilter(c)
	if !ok {
		return
	}
	filter.Limit = maxExportRuns

	runs, _, err := h.validationService.ListRuns(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if format == string(domain.BatchFileXLSX) {
		err = recordsheet.WriteRunsXLSX(&buf, runs)
	} else {
		err = recordsheet.WriteRunsCSV(&buf, runs)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := recordsheet.BuildFilename("validation_runs", format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func parseRunFilter(c *gin.Context) (port.RunFilter, bool) {
	var filter port.RunFilter
	switch status := domain.ValidationStatus(c.Query("status")); status {
	case "", domain.ValidationStatusValid, domain.ValidationStatusInvalid:
		filter.Status = status
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be valid or invalid")
		return filter, false
	}
	if raw := c.Query("batch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
			return filter, false
		}
		filter.BatchID = &id
	}
	return filter, true
}

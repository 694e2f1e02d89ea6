package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dataquality/internal/domain"
	"dataquality/internal/middleware"
	"dataquality/internal/service"
)

// ValidationResult is the response for a synchronously validated record.
type ValidationResult struct {
	RunID      uuid.UUID `json:"run_id"`
	Valid      bool      `json:"valid"`
	Errors     []string  `json:"errors"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordHandler handles record validation endpoints.
type RecordHandler struct {
	validationService service.ValidationService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(validationService service.ValidationService) *RecordHandler {
	return &RecordHandler{validationService: validationService}
}

// Validate handles POST /api/v1/records/validate
// @Summary      Validate a record
// @Description  Runs every active rule concurrently and stores the run. An invalid record is still a 200.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body body ValidateRecordRequest true "Concession record"
// @Success      200 {object} APIResponse{data=ValidationResult}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/validate [post]
func (h *RecordHandler) Validate(c *gin.Context) {
	var rec domain.ConcessionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid record: "+err.Error())
		return
	}

	run, err := h.validationService.Validate(c.Request.Context(), rec, service.ValidateInput{
		Source:      domain.RecordSourceAPI,
		SubmittedBy: middleware.GetClientName(c),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	errs := run.ErrorMessages()
	if errs == nil {
		errs = []string{}
	}
	RespondOK(c, ValidationResult{
		RunID:      run.ID,
		Valid:      run.Status == domain.ValidationStatusValid,
		Errors:     errs,
		DurationMs: run.DurationMs,
		CreatedAt:  run.CreatedAt,
	})
}

// Rules handles GET /api/v1/rules
// @Summary      List active rules
// @Description  Rules in the order their errors are reported
// @Tags         records
// @Produce      json
// @Success      200 {object} APIResponse{data=[]validator.RuleDescriptor}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /rules [get]
func (h *RecordHandler) Rules(c *gin.Context) {
	RespondOK(c, h.validationService.Rules())
}

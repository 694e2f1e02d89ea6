package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/validator"
)

// ValidateInput carries the provenance of a record being validated.
type ValidateInput struct {
	Source      domain.RecordSource
	BatchID     *uuid.UUID
	RowNumber   *int
	SubmittedBy string
}

// ValidationService validates records and keeps the history of runs.
type ValidationService interface {
	Validate(ctx context.Context, rec domain.ConcessionRecord, input ValidateInput) (*domain.ValidationRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ValidationRun, error)
	ListRuns(ctx context.Context, filter port.RunFilter) ([]domain.ValidationRun, int, error)
	Rules() []validator.RuleDescriptor
	// DiscardBatchRuns removes the runs an earlier attempt recorded for a batch.
	DiscardBatchRuns(ctx context.Context, batchID uuid.UUID) (int64, error)
}

// cveLockStripes bounds the number of mutexes guarding same-CVE validations.
const cveLockStripes = 64

type validationService struct {
	cveLocks     [cveLockStripes]sync.Mutex
	orchestrator *validator.DataValidationService
	rules        []validator.RuleDescriptor
	ruleKeys     json.RawMessage
	runRepo      port.ValidationRunRepository
	timeout      time.Duration
}

// NewValidationService creates a ValidationService running validators in the
// given order. A positive timeout bounds each record's validation.
func NewValidationService(
	validators []validator.Validator,
	runRepo port.ValidationRunRepository,
	timeout time.Duration,
) (ValidationService, error) {
	orchestrator := validator.NewDataValidationService(validators)
	keys, err := json.Marshal(orchestrator.RuleKeys())
	if err != nil {
		return nil, fmt.Errorf("encoding rule keys: %w", err)
	}
	return &validationService{
		orchestrator: orchestrator,
		rules:        validator.Describe(validators),
		ruleKeys:     keys,
		runRepo:      runRepo,
		timeout:      timeout,
	}, nil
}

// lockCVE serializes check-then-persist for records sharing a CVE number so
// two concurrent submissions cannot both pass the duplicate lookup. The lock
// only covers this process.
func (s *validationService) lockCVE(rec domain.ConcessionRecord) func() {
	if rec.HasBlankCVE() {
		return func() {}
	}
	cve, _ := rec.CVENumber()
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(cve)))
	mu := &s.cveLocks[h.Sum32()%cveLockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *validationService) Validate(ctx context.Context, rec domain.ConcessionRecord, input ValidateInput) (*domain.ValidationRun, error) {
	unlock := s.lockCVE(rec)
	defer unlock()

	vctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		vctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	outcome, err := s.orchestrator.ValidateRecord(vctx, rec)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("validationService.Validate: aborted after %s: %v", elapsed, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationAborted, err)
	}

	errs, err := json.Marshal(outcome.Errors())
	if err != nil {
		return nil, fmt.Errorf("encoding outcome errors: %w", err)
	}

	status := domain.ValidationStatusValid
	if !outcome.Valid() {
		status = domain.ValidationStatusInvalid
	}

	run := &domain.ValidationRun{
		ID:             uuid.New(),
		BatchID:        input.BatchID,
		Source:         input.Source,
		RowNumber:      input.RowNumber,
		ConcessionName: rec.ConcessionName(),
		CompanyName:    rec.CompanyName(),
		CVENumber:      rec.CVENumberPtr(),
		Region:         rec.Region(),
		SentimentScore: rec.SentimentScore(),
		Status:         status,
		Errors:         errs,
		RuleKeys:       s.ruleKeys,
		DurationMs:     elapsed.Milliseconds(),
		SubmittedBy:    input.SubmittedBy,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("validationService.Validate: %w", err)
	}
	return run, nil
}

func (s *validationService) GetRun(ctx context.Context, id uuid.UUID) (*domain.ValidationRun, error) {
	return s.runRepo.GetByID(ctx, id)
}

func (s *validationService) ListRuns(ctx context.Context, filter port.RunFilter) ([]domain.ValidationRun, int, error) {
	return s.runRepo.List(ctx, filter)
}

func (s *validationService) Rules() []validator.RuleDescriptor {
	out := make([]validator.RuleDescriptor, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *validationService) DiscardBatchRuns(ctx context.Context, batchID uuid.UUID) (int64, error) {
	return s.runRepo.DeleteByBatch(ctx, batchID)
}

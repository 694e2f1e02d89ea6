package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/service"
	"dataquality/internal/validator/concession"
)

// runStore keeps runs in memory and answers duplicate lookups from them, the
// way the postgres run and duplicate finder repos share validation_runs.
type runStore struct {
	mu          sync.Mutex
	runs        []domain.ValidationRun
	lookupDelay time.Duration
}

func (s *runStore) Create(_ context.Context, run *domain.ValidationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *run)
	return nil
}

func (s *runStore) GetByID(_ context.Context, id uuid.UUID) (*domain.ValidationRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].ID == id {
			run := s.runs[i]
			return &run, nil
		}
	}
	return nil, domain.ErrRunNotFound
}

func (s *runStore) List(_ context.Context, _ port.RunFilter) ([]domain.ValidationRun, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ValidationRun, len(s.runs))
	copy(out, s.runs)
	return out, len(out), nil
}

func (s *runStore) DeleteByBatch(_ context.Context, batchID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.runs[:0]
	for _, run := range s.runs {
		if run.BatchID == nil || *run.BatchID != batchID {
			kept = append(kept, run)
		}
	}
	removed := int64(len(s.runs) - len(kept))
	s.runs = kept
	return removed, nil
}

func (s *runStore) FindAcceptedByCVE(_ context.Context, q port.DuplicateQuery) ([]port.DuplicateMatch, error) {
	s.mu.Lock()
	snapshot := make([]domain.ValidationRun, len(s.runs))
	copy(snapshot, s.runs)
	s.mu.Unlock()

	time.Sleep(s.lookupDelay)

	sameName := func(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
	var matches []port.DuplicateMatch
	for i := range snapshot {
		run := &snapshot[i]
		if run.Status != domain.ValidationStatusValid || run.CVENumber == nil || *run.CVENumber != q.CVENumber {
			continue
		}
		if sameName(run.ConcessionName, q.ConcessionName) && sameName(run.CompanyName, q.CompanyName) {
			continue
		}
		matches = append(matches, port.DuplicateMatch{ConcessionName: run.ConcessionName, CreatedAt: run.CreatedAt})
	}
	return matches, nil
}

func newDefaultRuleService(t *testing.T, store *runStore) service.ValidationService {
	t.Helper()
	registry, err := concession.NewRegistry(concession.Dependencies{
		SentimentMin: concession.DefaultSentimentMin,
		SentimentMax: concession.DefaultSentimentMax,
		Duplicates:   store,
	})
	require.NoError(t, err)
	validators, err := registry.Resolve(nil)
	require.NoError(t, err)

	svc, err := service.NewValidationService(validators, store, time.Second)
	require.NoError(t, err)
	return svc
}

func ruleKeys(svc service.ValidationService) []string {
	var keys []string
	for _, r := range svc.Rules() {
		keys = append(keys, r.Key)
	}
	return keys
}

func TestValidationService_Validate_SameRecordTwiceKeepsOutcome(t *testing.T) {
	store := &runStore{}
	svc := newDefaultRuleService(t, store)
	require.Contains(t, ruleKeys(svc), concession.RuleKeyDuplicateCVE)

	rec := domain.NewConcessionRecord("North Ridge", "Ridge Holdings", strPtr("12345"), "NORTH", 0.5)

	first, err := svc.Validate(context.Background(), rec, service.ValidateInput{Source: domain.RecordSourceAPI})
	require.NoError(t, err)
	second, err := svc.Validate(context.Background(), rec, service.ValidateInput{Source: domain.RecordSourceAPI})
	require.NoError(t, err)

	assert.Equal(t, domain.ValidationStatusValid, first.Status)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.ErrorMessages(), second.ErrorMessages())

	// Case and surrounding space do not make a resubmission a different record.
	recased := domain.NewConcessionRecord(" north ridge", "RIDGE HOLDINGS ", strPtr("12345"), "NORTH", 0.5)
	third, err := svc.Validate(context.Background(), recased, service.ValidateInput{Source: domain.RecordSourceAPI})
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationStatusValid, third.Status)
}

func TestValidationService_Validate_OtherConcessionWithSameCVEIsDuplicate(t *testing.T) {
	store := &runStore{}
	svc := newDefaultRuleService(t, store)

	accepted := domain.NewConcessionRecord("North Ridge", "Ridge Holdings", strPtr("12345"), "NORTH", 0.5)
	_, err := svc.Validate(context.Background(), accepted, service.ValidateInput{Source: domain.RecordSourceAPI})
	require.NoError(t, err)

	other := domain.NewConcessionRecord("South Ridge", "Ridge Holdings", strPtr("12345"), "SOUTH", 0.5)
	run, err := svc.Validate(context.Background(), other, service.ValidateInput{Source: domain.RecordSourceAPI})
	require.NoError(t, err)

	assert.Equal(t, domain.ValidationStatusInvalid, run.Status)
	require.Len(t, run.ErrorMessages(), 1)
	assert.Contains(t, run.ErrorMessages()[0], `CVE Number '12345' already belongs to an accepted record: "North Ridge"`)
}

func TestValidationService_Validate_ConcurrentSameCVEAcceptsOne(t *testing.T) {
	store := &runStore{lookupDelay: 20 * time.Millisecond}
	svc := newDefaultRuleService(t, store)

	recs := []domain.ConcessionRecord{
		domain.NewConcessionRecord("North Ridge", "Ridge Holdings", strPtr("12345"), "NORTH", 0.5),
		domain.NewConcessionRecord("South Ridge", "Ridge Holdings", strPtr("12345"), "SOUTH", 0.5),
	}
	statuses := make([]domain.ValidationStatus, len(recs))

	var wg sync.WaitGroup
	for i, rec := range recs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, err := svc.Validate(context.Background(), rec, service.ValidateInput{Source: domain.RecordSourceAPI})
			if assert.NoError(t, err) {
				statuses[i] = run.Status
			}
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []domain.ValidationStatus{domain.ValidationStatusValid, domain.ValidationStatusInvalid}, statuses)
}

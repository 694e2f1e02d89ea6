package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/service"
	"dataquality/mocks"
)

const batchCSV = "Concession Name,Company Name,CVE Number,Region,Sentiment Score\n" +
	"North Ridge,Ridge Holdings,12345,NORTH,0.5\n" +
	"South Bay,Bay Mining,INV,SOUTH,5\n" +
	"East Field,Field Co,54321,EAST,high\n" +
	"West Wind,Wind Ltd,11111,WEST,1\n"

func claimedBatch() *domain.ValidationBatch {
	return &domain.ValidationBatch{
		ID:          uuid.New(),
		Filename:    "q3.csv",
		S3Bucket:    "test-bucket",
		S3Key:       "batches/q3.csv",
		Status:      domain.BatchStatusProcessing,
		SubmittedBy: "etl",
	}
}

func TestBatchQueueWorker_Process_CountsEveryRow(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	validation := new(mocks.MockValidationService)
	sender := new(mocks.MockEmailSender)
	worker := service.NewBatchQueueWorker(batchRepo, storage, validation, sender, service.BatchQueueConfig{})
	batch := claimedBatch()

	storage.On("Download", mock.Anything, "test-bucket", "batches/q3.csv").Return([]byte(batchCSV), nil)

	isRow := func(n int) interface{} {
		return mock.MatchedBy(func(in service.ValidateInput) bool {
			return in.RowNumber != nil && *in.RowNumber == n &&
				in.Source == domain.RecordSourceBatch &&
				in.BatchID != nil && *in.BatchID == batch.ID &&
				in.SubmittedBy == "etl"
		})
	}
	validation.On("Validate", mock.Anything, mock.Anything, isRow(2)).
		Return(&domain.ValidationRun{Status: domain.ValidationStatusValid}, nil)
	validation.On("Validate", mock.Anything, mock.Anything, isRow(3)).
		Return(&domain.ValidationRun{
			Status: domain.ValidationStatusInvalid,
			Errors: []byte(`["CVE Number 'INV' is not in the required 5-digit format (e.g., 12345)."]`),
		}, nil)
	validation.On("Validate", mock.Anything, mock.Anything, isRow(5)).
		Return(nil, fmt.Errorf("%w: lookup down", domain.ErrValidationAborted))

	batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)

	var rejections []port.BatchRejection
	sender.On("SendBatchReport", mock.Anything, batch, mock.Anything).
		Run(func(args mock.Arguments) { rejections = args.Get(2).([]port.BatchRejection) }).
		Return(nil)

	worker.Process(context.Background(), batch)

	assert.Equal(t, domain.BatchStatusCompleted, batch.Status)
	assert.NotNil(t, batch.CompletedAt)
	assert.Equal(t, 4, batch.TotalRecords)
	assert.Equal(t, 1, batch.ValidRecords)
	assert.Equal(t, 1, batch.InvalidRecords)
	assert.Equal(t, 2, batch.AbortedRecords)

	require.Len(t, rejections, 3)
	assert.Equal(t, 3, rejections[0].RowNumber)
	assert.Equal(t, []string{"CVE Number 'INV' is not in the required 5-digit format (e.g., 12345)."}, rejections[0].Messages)
	assert.Equal(t, 4, rejections[1].RowNumber)
	assert.Contains(t, rejections[1].Messages[0], "not a number")
	assert.Equal(t, 5, rejections[2].RowNumber)

	validation.AssertNumberOfCalls(t, "Validate", 3)
	batchRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestBatchQueueWorker_Process_AllValidSendsNoReport(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	validation := new(mocks.MockValidationService)
	sender := new(mocks.MockEmailSender)
	worker := service.NewBatchQueueWorker(batchRepo, storage, validation, sender, service.BatchQueueConfig{})
	batch := claimedBatch()

	csv := "Concession Name,Company Name,CVE Number,Region,Sentiment Score\nA,B,12345,C,0\n"
	storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return([]byte(csv), nil)
	validation.On("Validate", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.ValidationRun{Status: domain.ValidationStatusValid}, nil)
	batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)

	worker.Process(context.Background(), batch)

	assert.Equal(t, 1, batch.ValidRecords)
	sender.AssertNotCalled(t, "SendBatchReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchQueueWorker_Process_FailsBatch(t *testing.T) {
	header := "Concession Name,Company Name,CVE Number,Region,Sentiment Score\n"
	tests := []struct {
		name     string
		filename string
		data     []byte
		dlErr    error
		maxRows  int
		wantMsg  string
	}{
		{"download error", "q3.csv", nil, errors.New("no such key"), 0, "downloading batch file"},
		{"missing column", "q3.csv", []byte("Concession Name\nA\n"), nil, 0, "missing required column"},
		{"unsupported", "q3.txt", []byte(header), nil, 0, "unsupported file type"},
		{"too many rows", "q3.csv", []byte(header + "A,B,12345,C,0\nD,E,12346,F,0\n"), nil, 1, "batch has 2 rows, limit is 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batchRepo := new(mocks.MockBatchRepo)
			storage := new(mocks.MockObjectStorage)
			validation := new(mocks.MockValidationService)
			sender := new(mocks.MockEmailSender)
			worker := service.NewBatchQueueWorker(batchRepo, storage, validation, sender,
				service.BatchQueueConfig{MaxRows: tt.maxRows})
			batch := claimedBatch()
			batch.Filename = tt.filename

			storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return(tt.data, tt.dlErr)
			batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)
			sender.On("SendBatchReport", mock.Anything, batch, []port.BatchRejection(nil)).Return(nil)

			worker.Process(context.Background(), batch)

			assert.Equal(t, domain.BatchStatusFailed, batch.Status)
			assert.Contains(t, batch.ErrorMessage, tt.wantMsg)
			assert.NotNil(t, batch.CompletedAt)
			validation.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
			sender.AssertExpectations(t)
		})
	}
}

func TestBatchQueueWorker_Process_NilSender(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	worker := service.NewBatchQueueWorker(batchRepo, storage, new(mocks.MockValidationService), nil, service.BatchQueueConfig{})
	batch := claimedBatch()

	storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("gone"))
	batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)

	assert.NotPanics(t, func() { worker.Process(context.Background(), batch) })
	assert.Equal(t, domain.BatchStatusFailed, batch.Status)
}

func TestBatchQueueWorker_Process_GivesUpAfterMaxAttempts(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	validation := new(mocks.MockValidationService)
	worker := service.NewBatchQueueWorker(batchRepo, storage, validation, nil, service.BatchQueueConfig{MaxAttempts: 3})
	batch := claimedBatch()
	batch.Attempts = 4

	batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)

	worker.Process(context.Background(), batch)

	assert.Equal(t, domain.BatchStatusFailed, batch.Status)
	assert.Equal(t, "giving up after 3 attempts", batch.ErrorMessage)
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
	validation.AssertNotCalled(t, "DiscardBatchRuns", mock.Anything, mock.Anything)
}

func TestBatchQueueWorker_Process_RetryDiscardsEarlierRuns(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	validation := new(mocks.MockValidationService)
	worker := service.NewBatchQueueWorker(batchRepo, storage, validation, nil, service.BatchQueueConfig{MaxAttempts: 3})
	batch := claimedBatch()
	batch.Attempts = 2

	csv := "Concession Name,Company Name,CVE Number,Region,Sentiment Score\nA,B,12345,C,0\n"
	validation.On("DiscardBatchRuns", mock.Anything, batch.ID).Return(int64(7), nil).Once()
	storage.On("Download", mock.Anything, mock.Anything, mock.Anything).Return([]byte(csv), nil)
	validation.On("Validate", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.ValidationRun{Status: domain.ValidationStatusValid}, nil)
	batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)

	worker.Process(context.Background(), batch)

	assert.Equal(t, domain.BatchStatusCompleted, batch.Status)
	assert.Equal(t, 1, batch.TotalRecords)
	assert.Equal(t, 1, batch.ValidRecords)
	validation.AssertExpectations(t)
}

func TestBatchQueueWorker_Process_RetryDiscardFailureFailsBatch(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	validation := new(mocks.MockValidationService)
	worker := service.NewBatchQueueWorker(batchRepo, storage, validation, nil, service.BatchQueueConfig{})
	batch := claimedBatch()
	batch.Attempts = 2

	validation.On("DiscardBatchRuns", mock.Anything, batch.ID).Return(int64(0), errors.New("db down"))
	batchRepo.On("UpdateResult", mock.Anything, batch).Return(nil)

	worker.Process(context.Background(), batch)

	assert.Equal(t, domain.BatchStatusFailed, batch.Status)
	assert.Contains(t, batch.ErrorMessage, "discarding runs of earlier attempt")
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchQueueWorker_Start_ReclaimsStaleBatches(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	worker := service.NewBatchQueueWorker(batchRepo, new(mocks.MockObjectStorage), new(mocks.MockValidationService), nil,
		service.BatchQueueConfig{PollInterval: 5 * time.Millisecond, BatchTimeout: time.Minute})

	// StaleAfter defaults to just past the batch timeout.
	claimed := make(chan struct{}, 1)
	batchRepo.On("ClaimQueued", mock.Anything, 1, 2*time.Minute).
		Run(func(mock.Arguments) {
			select {
			case claimed <- struct{}{}:
			default:
			}
		}).
		Return([]domain.ValidationBatch{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	select {
	case <-claimed:
	case <-time.After(time.Second):
		t.Fatal("worker never polled for batches")
	}
	cancel()
	<-done
}

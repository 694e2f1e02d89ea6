package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dataquality/internal/config"
	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/service"
	"dataquality/mocks"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Bucket:        "test-bucket",
		MaxFileSizeMB: 1,
		PresignExpiry: 600,
	}
}

func TestBatchService_Submit_Success(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBatchService(batchRepo, storage, testS3Config())

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" &&
			strings.HasPrefix(in.Key, "batches/") &&
			strings.HasSuffix(in.Key, "/q3.csv") &&
			in.ContentType == "text/csv" &&
			in.Size == 42
	})).Return(&port.UploadOutput{}, nil)
	batchRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ValidationBatch")).Return(nil)

	batch, err := svc.Submit(context.Background(), service.SubmitBatchInput{
		Filename:    "../uploads/q3.csv",
		Size:        42,
		Body:        strings.NewReader("x"),
		SubmittedBy: "etl",
	})
	require.NoError(t, err)

	assert.Equal(t, "q3.csv", batch.Filename)
	assert.Equal(t, domain.BatchStatusQueued, batch.Status)
	assert.Equal(t, "batches/"+batch.ID.String()+"/q3.csv", batch.S3Key)
	assert.Equal(t, "etl", batch.SubmittedBy)

	storage.AssertExpectations(t)
	batchRepo.AssertExpectations(t)
}

func TestBatchService_Submit_RejectsBeforeUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		want     error
	}{
		{"unsupported type", "notes.pdf", 10, domain.ErrUnsupportedFileType},
		{"no extension", "records", 10, domain.ErrUnsupportedFileType},
		{"empty file", "q3.xlsx", 0, domain.ErrEmptyBatch},
		{"too large", "q3.csv", 1024*1024 + 1, domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batchRepo := new(mocks.MockBatchRepo)
			storage := new(mocks.MockObjectStorage)
			svc := service.NewBatchService(batchRepo, storage, testS3Config())

			_, err := svc.Submit(context.Background(), service.SubmitBatchInput{
				Filename: tt.filename,
				Size:     tt.size,
				Body:     strings.NewReader(""),
			})
			assert.ErrorIs(t, err, tt.want)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
			batchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestBatchService_Submit_UploadFailure(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBatchService(batchRepo, storage, testS3Config())

	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 unavailable"))

	_, err := svc.Submit(context.Background(), service.SubmitBatchInput{Filename: "q3.csv", Size: 5, Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	batchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBatchService_Submit_CreateFailureRemovesObject(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBatchService(batchRepo, storage, testS3Config())

	dbErr := errors.New("insert failed")
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	batchRepo.On("Create", mock.Anything, mock.Anything).Return(dbErr)
	storage.On("Delete", mock.Anything, "test-bucket", mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, "/q3.xlsx")
	})).Return(nil)

	_, err := svc.Submit(context.Background(), service.SubmitBatchInput{Filename: "q3.xlsx", Size: 5, Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, dbErr)
	storage.AssertExpectations(t)
}

func TestBatchService_SourceURL(t *testing.T) {
	batchRepo := new(mocks.MockBatchRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBatchService(batchRepo, storage, testS3Config())

	batch := &domain.ValidationBatch{ID: uuid.New(), S3Bucket: "test-bucket", S3Key: "batches/x/q3.csv"}
	batchRepo.On("GetByID", mock.Anything, batch.ID).Return(batch, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", "batches/x/q3.csv", int64(600)).
		Return("https://example.test/signed", nil)

	url, err := svc.SourceURL(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/signed", url)

	missing := uuid.New()
	batchRepo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrBatchNotFound)
	_, err = svc.SourceURL(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"dataquality/internal/config"
	"dataquality/internal/domain"
	"dataquality/internal/port"
)

// SubmitBatchInput is the DTO for batch uploads.
type SubmitBatchInput struct {
	Filename    string
	Size        int64
	Body        io.Reader
	SubmittedBy string
}

// BatchService accepts spreadsheet batches for asynchronous validation.
type BatchService interface {
	Submit(ctx context.Context, input SubmitBatchInput) (*domain.ValidationBatch, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*domain.ValidationBatch, error)
	ListBatches(ctx context.Context, offset, limit int) ([]domain.ValidationBatch, int, error)
	SourceURL(ctx context.Context, id uuid.UUID) (string, error)
}

type batchService struct {
	batchRepo port.BatchRepository
	storage   port.ObjectStorage
	cfg       *config.S3Config
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(batchRepo port.BatchRepository, storage port.ObjectStorage, cfg *config.S3Config) BatchService {
	return &batchService{
		batchRepo: batchRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *batchService) Submit(ctx context.Context, input SubmitBatchInput) (*domain.ValidationBatch, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
	fileType, ok := domain.AllowedBatchExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Size <= 0 {
		return nil, domain.ErrEmptyBatch
	}
	if input.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	filename := filepath.Base(input.Filename)
	batchID := uuid.New()
	contentType := domain.BatchContentTypes[fileType]
	batch := &domain.ValidationBatch{
		ID:          batchID,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   input.Size,
		S3Bucket:    s.cfg.Bucket,
		S3Key:       fmt.Sprintf("batches/%s/%s", batchID, filename),
		Status:      domain.BatchStatusQueued,
		SubmittedBy: input.SubmittedBy,
	}

	log.Printf("batchService.Submit: archiving %s (%d bytes) as batch %s for %s",
		filename, input.Size, batchID, input.SubmittedBy)

	// Archive first so a queued batch always has its file.
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      batch.S3Bucket,
		Key:         batch.S3Key,
		Body:        input.Body,
		ContentType: contentType,
		Size:        input.Size,
	}); err != nil {
		log.Printf("batchService.Submit: S3 upload failed for batch %s: %v", batchID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.batchRepo.Create(ctx, batch); err != nil {
		if delErr := s.storage.Delete(ctx, batch.S3Bucket, batch.S3Key); delErr != nil {
			log.Printf("batchService.Submit: cleanup of %s failed: %v", batch.S3Key, delErr)
		}
		return nil, fmt.Errorf("creating batch: %w", err)
	}
	return batch, nil
}

func (s *batchService) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ValidationBatch, error) {
	return s.batchRepo.GetByID(ctx, id)
}

func (s *batchService) ListBatches(ctx context.Context, offset, limit int) ([]domain.ValidationBatch, int, error) {
	return s.batchRepo.List(ctx, offset, limit)
}

func (s *batchService) SourceURL(ctx context.Context, id uuid.UUID) (string, error) {
	batch, err := s.batchRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, batch.S3Bucket, batch.S3Key, s.cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning batch source: %w", err)
	}
	return url, nil
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/recordsheet"
)

const (
	defaultMaxBatchAttempts = 3
	defaultBatchTimeout     = 30 * time.Minute
)

// BatchQueueConfig holds settings for the batch queue worker.
type BatchQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	MaxRows      int
	BatchTimeout time.Duration
	// StaleAfter is how long a batch may sit in processing before another
	// claim picks it up. It is always longer than BatchTimeout.
	StaleAfter  time.Duration
	MaxAttempts int
}

// BatchQueueWorker polls for queued batches and validates their rows.
type BatchQueueWorker struct {
	batchRepo  port.BatchRepository
	storage    port.ObjectStorage
	validation ValidationService
	email      port.EmailSender
	cfg        BatchQueueConfig
	wg         sync.WaitGroup
}

// NewBatchQueueWorker creates a new BatchQueueWorker. A nil email sender
// disables steward reports.
func NewBatchQueueWorker(
	batchRepo port.BatchRepository,
	storage port.ObjectStorage,
	validation ValidationService,
	email port.EmailSender,
	cfg BatchQueueConfig,
) *BatchQueueWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = defaultBatchTimeout
	}
	if cfg.StaleAfter <= cfg.BatchTimeout {
		cfg.StaleAfter = cfg.BatchTimeout + time.Minute
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaultMaxBatchAttempts
	}
	return &BatchQueueWorker{
		batchRepo:  batchRepo,
		storage:    storage,
		validation: validation,
		email:      email,
		cfg:        cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight batches have finished.
func (w *BatchQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("batchQueueWorker: started (poll=%s, concurrency=%d, maxRows=%d, maxAttempts=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRows, w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			log.Printf("batchQueueWorker: shutting down, waiting for in-flight batches...")
			w.wg.Wait()
			log.Printf("batchQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			batches, err := w.batchRepo.ClaimQueued(ctx, available, w.cfg.StaleAfter)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("batchQueueWorker: ClaimQueued error: %v", err)
				}
				continue
			}

			for i := range batches {
				batch := batches[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// Detached from the poll context so in-flight batches finish during shutdown.
					batchCtx, cancel := context.WithTimeout(context.Background(), w.cfg.BatchTimeout)
					defer cancel()

					log.Printf("batchQueueWorker: processing batch %s (attempt %d)", batch.ID, batch.Attempts)
					w.Process(batchCtx, &batch)
				}()
			}
		}
	}
}

// Process validates every row of a claimed batch and records the totals.
// Rows are validated in sheet order. A row that cannot be read, or whose
// validation is aborted, counts as aborted. A batch claimed more than
// MaxAttempts times is failed without being read; a retried batch first
// drops the runs its interrupted attempt left behind.
func (w *BatchQueueWorker) Process(ctx context.Context, batch *domain.ValidationBatch) {
	if batch.Attempts > w.cfg.MaxAttempts {
		w.fail(ctx, batch, fmt.Sprintf("giving up after %d attempts", w.cfg.MaxAttempts))
		return
	}
	if batch.Attempts > 1 {
		removed, err := w.validation.DiscardBatchRuns(ctx, batch.ID)
		if err != nil {
			w.fail(ctx, batch, fmt.Sprintf("discarding runs of earlier attempt: %v", err))
			return
		}
		log.Printf("batchQueueWorker: batch %s retry discarded %d earlier runs", batch.ID, removed)
	}

	data, err := w.storage.Download(ctx, batch.S3Bucket, batch.S3Key)
	if err != nil {
		w.fail(ctx, batch, fmt.Sprintf("downloading batch file: %v", err))
		return
	}

	rows, err := recordsheet.Read(batch.Filename, bytes.NewReader(data))
	if err != nil {
		w.fail(ctx, batch, fmt.Sprintf("reading batch file: %v", err))
		return
	}
	if w.cfg.MaxRows > 0 && len(rows) > w.cfg.MaxRows {
		w.fail(ctx, batch, fmt.Sprintf("batch has %d rows, limit is %d", len(rows), w.cfg.MaxRows))
		return
	}

	batch.TotalRecords, batch.ValidRecords, batch.InvalidRecords, batch.AbortedRecords = 0, 0, 0, 0
	var rejections []port.BatchRejection
	for _, row := range rows {
		batch.TotalRecords++
		if row.Err != nil {
			batch.AbortedRecords++
			rejections = append(rejections, port.BatchRejection{RowNumber: row.Number, Messages: []string{row.Err.Error()}})
			continue
		}

		rowNumber := row.Number
		run, err := w.validation.Validate(ctx, row.Record, ValidateInput{
			Source:      domain.RecordSourceBatch,
			BatchID:     &batch.ID,
			RowNumber:   &rowNumber,
			SubmittedBy: batch.SubmittedBy,
		})
		switch {
		case err != nil:
			batch.AbortedRecords++
			rejections = append(rejections, port.BatchRejection{RowNumber: rowNumber, Messages: []string{err.Error()}})
		case run.Status == domain.ValidationStatusValid:
			batch.ValidRecords++
		default:
			batch.InvalidRecords++
			rejections = append(rejections, port.BatchRejection{RowNumber: rowNumber, Messages: run.ErrorMessages()})
		}
	}

	now := time.Now().UTC()
	batch.Status = domain.BatchStatusCompleted
	batch.ErrorMessage = ""
	batch.CompletedAt = &now
	if err := w.batchRepo.UpdateResult(ctx, batch); err != nil {
		log.Printf("batchQueueWorker: failed to store result of batch %s: %v", batch.ID, err)
	}

	log.Printf("batchQueueWorker: batch %s completed (total=%d valid=%d invalid=%d aborted=%d)",
		batch.ID, batch.TotalRecords, batch.ValidRecords, batch.InvalidRecords, batch.AbortedRecords)

	if len(rejections) > 0 {
		w.report(ctx, batch, rejections)
	}
}

func (w *BatchQueueWorker) fail(ctx context.Context, batch *domain.ValidationBatch, msg string) {
	log.Printf("batchQueueWorker: batch %s failed: %s", batch.ID, msg)

	now := time.Now().UTC()
	batch.Status = domain.BatchStatusFailed
	batch.ErrorMessage = msg
	batch.CompletedAt = &now
	if err := w.batchRepo.UpdateResult(ctx, batch); err != nil {
		log.Printf("batchQueueWorker: failed to store failure of batch %s: %v", batch.ID, err)
	}
	w.report(ctx, batch, nil)
}

func (w *BatchQueueWorker) report(ctx context.Context, batch *domain.ValidationBatch, rejections []port.BatchRejection) {
	if w.email == nil {
		return
	}
	if err := w.email.SendBatchReport(ctx, batch, rejections); err != nil {
		log.Printf("batchQueueWorker: failed to send report for batch %s: %v", batch.ID, err)
	}
}

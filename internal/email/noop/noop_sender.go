package noop

import (
	"context"
	"log"

	"dataquality/internal/domain"
	"dataquality/internal/email"
	"dataquality/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs batch reports to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendBatchReport(_ context.Context, batch *domain.ValidationBatch, rejections []port.BatchRejection) error {
	report := email.BuildBatchReport(batch, rejections)
	log.Printf("[NOOP EMAIL] %s\n%s", report.Subject, report.TextBody)
	return nil
}

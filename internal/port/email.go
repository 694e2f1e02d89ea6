package port

import (
	"context"

	"dataquality/internal/domain"
)

// BatchRejection is one rejected row listed in a batch report.
type BatchRejection struct {
	RowNumber int
	Messages  []string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendBatchReport(ctx context.Context, batch *domain.ValidationBatch, rejections []BatchRejection) error
}

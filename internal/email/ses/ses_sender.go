package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"dataquality/internal/domain"
	"dataquality/internal/email"
	"dataquality/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	from        string
	toAddresses []string
}

// NewSESSender creates a new SES-backed EmailSender that reports to the steward address.
func NewSESSender(ctx context.Context, region, fromAddress, fromName, stewardAddress string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		from:        fmt.Sprintf("%s <%s>", fromName, fromAddress),
		toAddresses: []string{stewardAddress},
	}, nil
}

func (s *sesSender) SendBatchReport(ctx context.Context, batch *domain.ValidationBatch, rejections []port.BatchRejection) error {
	report := email.BuildBatchReport(batch, rejections)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination: &types.Destination{
			ToAddresses: s.toAddresses,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &report.Subject},
				Body: &types.Body{
					Html: &types.Content{Data: &report.HTMLBody},
					Text: &types.Content{Data: &report.TextBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

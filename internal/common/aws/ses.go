// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"brand-intel/internal/models"
)

type SESClient struct {
	client *ses.Client
}

func NewSESClient(ctx context.Context, region string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESClient{client: ses.NewFromConfig(cfg)}, nil
}

func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input)
}

// SendReportSummary emails a short plain-text digest of a finished report.
func (s *SESClient) SendReportSummary(ctx context.Context, from, to string, report *models.CompetitiveReport) error {
	subject := fmt.Sprintf("Competitive report %s ready", report.RunID)
	body := reportSummaryBody(report)

	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send report summary email: %w", err)
	}
	return nil
}

func reportSummaryBody(report *models.CompetitiveReport) string {
	leaders := "none"
	if len(report.CompetitiveInsights.MarketLeaders) > 0 {
		leaders = report.CompetitiveInsights.MarketLeaders[0].Brand
	}

	return fmt.Sprintf(
		"Run %s generated at %s\n\n"+
			"Posts analyzed: %d\n"+
			"Brands analyzed: %d\n"+
			"Files scanned: %d (skipped %d)\n"+
			"Top market leader: %s\n",
		report.RunID,
		report.GeneratedAt,
		report.TotalPostsAnalyzed,
		report.BrandsAnalyzed,
		report.FilesScanned,
		report.FilesSkipped,
		leaders,
	)
}

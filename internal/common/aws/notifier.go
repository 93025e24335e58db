// internal/common/aws/notifier.go
package aws

import (
	"context"

	"brand-intel/internal/common/config"
	"brand-intel/internal/common/errors"
	"brand-intel/internal/common/logger"
	"brand-intel/internal/models"
)

// RunNotifier fans a finished run out to the configured channels: an SES
// summary email and an SNS topic event. Channels are independent; one
// failing does not stop the other.
type RunNotifier struct {
	cfg    config.NotificationConfig
	ses    *SESClient
	sns    *SNSClient
	logger logger.Logger
}

func NewRunNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*RunNotifier, error) {
	n := &RunNotifier{cfg: cfg, logger: log}
	if !cfg.Enabled {
		return n, nil
	}

	if cfg.SendEmails && cfg.FromEmail != "" {
		ses, err := NewSESClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		n.ses = ses
	}
	if cfg.SNSTopic != "" {
		sns, err := NewSNSClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		n.sns = sns
	}
	return n, nil
}

// NotifyRunCompleted sends all configured notifications for one report.
func (n *RunNotifier) NotifyRunCompleted(ctx context.Context, report *models.CompetitiveReport) error {
	if !n.cfg.Enabled {
		return nil
	}

	var failed error

	if n.ses != nil {
		if err := n.ses.SendReportSummary(ctx, n.cfg.FromEmail, n.cfg.ToEmail, report); err != nil {
			n.logger.Warn("report summary email failed", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
			failed = errors.NewNotificationSendFailedError("ses", err)
		}
	}

	if n.sns != nil {
		if err := n.sns.PublishRunCompleted(ctx, n.cfg.SNSTopic, report.RunID, report.TotalPostsAnalyzed); err != nil {
			n.logger.Warn("run completion event failed", map[string]interface{}{
				"runId": report.RunID,
				"error": err.Error(),
			})
			failed = errors.NewNotificationSendFailedError("sns", err)
		}
	}

	return failed
}

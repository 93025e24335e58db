// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type SNSClient struct {
	client *sns.Client
}

func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

func (s *SNSClient) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input)
}

// PublishRunCompleted notifies downstream consumers that a pipeline run
// finished. The message is a small JSON envelope so subscribers do not need
// the full report payload.
func (s *SNSClient) PublishRunCompleted(ctx context.Context, topicARN, runID string, postsAnalyzed int) error {
	payload, err := json.Marshal(map[string]interface{}{
		"event":          "pipeline_run_completed",
		"run_id":         runID,
		"posts_analyzed": postsAnalyzed,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal run notification: %w", err)
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Message:  aws.String(string(payload)),
		Subject:  aws.String("brand-intel run completed"),
	}

	if _, err := s.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("failed to publish run notification: %w", err)
	}
	return nil
}

package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
)

// SNSAPI is the subset of *sns.Client used here.
type SNSAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNS struct {
	Client   SNSAPI
	TopicARN string
	Log      zerolog.Logger
}

func NewSNS(cfg aws.Config, topicARN string, log zerolog.Logger) *SNS {
	return &SNS{Client: sns.NewFromConfig(cfg), TopicARN: topicARN, Log: log}
}

func (s *SNS) Notify(ctx context.Context, subject, message string) (Outcome, error) {
	return s.PublishTo(ctx, s.TopicARN, subject, message)
}

// PublishTo sends to an explicit topic; the relay worker uses it with the
// destination carried in each message.
func (s *SNS) PublishTo(ctx context.Context, topicARN, subject, message string) (Outcome, error) {
	if topicARN == "" {
		s.Log.Info().Str("subject", subject).Msg("sns topic not set, skipping publish")
		return Skipped, nil
	}
	out, err := s.Client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return Failed, fmt.Errorf("sns publish: %w", err)
	}
	s.Log.Debug().Str("topic", topicARN).Str("message_id", aws.ToString(out.MessageId)).Msg("sns published")
	return Delivered, nil
}

package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

type SESAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES mails confirmations as plain text to a fixed address, usually an
// operations inbox.
type SES struct {
	Client SESAPI
	From   string
	To     string
	Log    zerolog.Logger
}

func NewSES(cfg aws.Config, from, to string, log zerolog.Logger) *SES {
	return &SES{Client: sesv2.NewFromConfig(cfg), From: from, To: to, Log: log}
}

func (s *SES) Notify(ctx context.Context, subject, message string) (Outcome, error) {
	if s.To == "" {
		s.Log.Info().Str("subject", subject).Msg("email recipient not set, skipping send")
		return Skipped, nil
	}
	out, err := s.Client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.From),
		Destination:      &types.Destination{ToAddresses: []string{s.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(message), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return Failed, fmt.Errorf("ses send: %w", err)
	}
	s.Log.Debug().Str("to", s.To).Str("message_id", aws.ToString(out.MessageId)).Msg("email sent")
	return Delivered, nil
}

// internal/infra/mail/ses_sender.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainMail "event_planner/internal/domain/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

var ErrEmptyRecipient = errors.New("recipient address is empty")

// sesClient is the subset of the SES API used by SESSender.
type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender implements the domain mail.Sender interface using Amazon SES.
type SESSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender string
}

func NewSESSender(cfg aws.Config, sender string) *SESSender {
	return &SESSender{ses: ses.NewFromConfig(cfg), sender: sender}
}

// LoadAWSConfig builds the AWS configuration for SES. Static credentials are used when both keys
// are given; otherwise the default credential chain applies.
func LoadAWSConfig(ctx context.Context, region, accessKey, secretKey string) (aws.Config, error) {
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(region),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

func (s *SESSender) Send(ctx context.Context, msg domainMail.Message) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}

	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charset)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses: failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

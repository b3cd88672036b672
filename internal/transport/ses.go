package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the slice of the SES v2 client the transport needs,
// abstracted for testability. *sesv2.Client satisfies it.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES implements Transport over the AWS SES v2 SendEmail API.
type SES struct {
	client sesAPI
	source string
}

// NewSES creates an SES transport for the given region. Credentials
// come from the AWS default chain (environment, shared config, IMDS);
// their absence surfaces as an error here, before the process serves.
func NewSES(ctx context.Context, region, senderAddress, senderName string) (*SES, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("aws credentials: %w", err)
	}
	return &SES{
		client: sesv2.NewFromConfig(cfg),
		source: formatSource(senderAddress, senderName),
	}, nil
}

// newSESWithClient wires a custom API client, used by tests.
func newSESWithClient(client sesAPI, senderAddress, senderName string) *SES {
	return &SES{client: client, source: formatSource(senderAddress, senderName)}
}

func (s *SES) Name() string { return "ses" }

// Send delivers one email via SES SendEmail with simple HTML content.
func (s *SES) Send(ctx context.Context, email *Email) (*Result, error) {
	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.source),
		Destination: &sestypes.Destination{
			ToAddresses: []string{email.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{
					Data:    aws.String(email.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &sestypes.Body{
					Html: &sestypes.Content{
						Data:    aws.String(email.HTMLBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ses: send to %s: %w", email.To, err)
	}

	return &Result{
		MessageID: aws.ToString(out.MessageId),
		Status:    StatusSent,
		Timestamp: time.Now(),
	}, nil
}

// formatSource builds the From header identity. With a display name the
// result is `Name <address>`, otherwise the bare address.
func formatSource(address, name string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

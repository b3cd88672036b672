package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

// fakeSESAPI records SendEmail calls and returns a canned response.
type fakeSESAPI struct {
	calls []*sesv2.SendEmailInput
	err   error
}

func (f *fakeSESAPI) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSES_Send_BuildsRequest(t *testing.T) {
	fake := &fakeSESAPI{}
	s := newSESWithClient(fake, "news@ewere.tech", "Ewere Diagboya")

	res, err := s.Send(context.Background(), &Email{
		To:       "sub@example.com",
		Subject:  "New Article Alert: T",
		HTMLBody: "<html>body</html>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if res.MessageID != "msg-123" {
		t.Errorf("expected message ID msg-123, got %s", res.MessageID)
	}
	if res.Status != StatusSent {
		t.Errorf("expected status sent, got %s", res.Status)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected 1 SendEmail call, got %d", len(fake.calls))
	}
	in := fake.calls[0]
	if got := aws.ToString(in.FromEmailAddress); got != "Ewere Diagboya <news@ewere.tech>" {
		t.Errorf("unexpected From identity %q", got)
	}
	if len(in.Destination.ToAddresses) != 1 || in.Destination.ToAddresses[0] != "sub@example.com" {
		t.Errorf("unexpected destination %v", in.Destination.ToAddresses)
	}
	if got := aws.ToString(in.Content.Simple.Subject.Data); got != "New Article Alert: T" {
		t.Errorf("unexpected subject %q", got)
	}
	if got := aws.ToString(in.Content.Simple.Body.Html.Data); got != "<html>body</html>" {
		t.Errorf("unexpected html body %q", got)
	}
}

func TestSES_Send_PropagatesError(t *testing.T) {
	fake := &fakeSESAPI{err: errors.New("throttled")}
	s := newSESWithClient(fake, "news@ewere.tech", "")

	_, err := s.Send(context.Background(), &Email{To: "sub@example.com"})
	if err == nil {
		t.Fatal("expected error from SES client")
	}
}

func TestFormatSource(t *testing.T) {
	if got := formatSource("a@b.c", ""); got != "a@b.c" {
		t.Errorf("bare address: got %q", got)
	}
	if got := formatSource("a@b.c", "Ewere"); got != "Ewere <a@b.c>" {
		t.Errorf("with name: got %q", got)
	}
}

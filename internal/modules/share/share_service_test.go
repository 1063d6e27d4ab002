package share

import (
	"context"
	"errors"
	"strings"
	"testing"

	"meet-halfway/internal/logging"
	"meet-halfway/internal/models"
	"meet-halfway/pkg/email"
)

type fakeSender struct {
	to      []string
	subject string
	plain   string
	html    string
	err     error
}

func (f *fakeSender) SendEmail(_ context.Context, to []string, subject, plain, html string) error {
	f.to, f.subject, f.plain, f.html = to, subject, plain, html
	return f.err
}

var cafe = models.Venue{PlaceID: "p1", Name: "Blue Cafe", Address: "1 Main St"}

func TestMessage(t *testing.T) {
	title, text := Message(cafe)
	if title != "Meet at Blue Cafe" {
		t.Fatalf("title = %q", title)
	}
	want := "Let's meet at Blue Cafe!\n1 Main St\nhttps://www.google.com/maps/search/?api=1&query=Blue%20Cafe%201%20Main%20St"
	if text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
}

func TestDirectionsURL(t *testing.T) {
	got := DirectionsURL(cafe)
	want := "https://www.google.com/maps/dir/?api=1&destination=1%20Main%20St&destination_place_id=p1"
	if got != want {
		t.Fatalf("DirectionsURL = %q", got)
	}
	if got := DirectionsURL(models.Venue{Name: "Park & Ride"}); got != directionsBaseURL+"Park%20%26%20Ride" {
		t.Fatalf("name fallback = %q", got)
	}
}

func TestShareChannels(t *testing.T) {
	svc := NewService(nil, nil, logging.Discard())
	ctx := context.Background()

	native, err := svc.Share(ctx, cafe, models.ShareRequest{Channel: models.ShareNative})
	if err != nil || native.Title == "" || native.URI != "" {
		t.Fatalf("native = %+v, %v", native, err)
	}

	clip, err := svc.Share(ctx, cafe, models.ShareRequest{Channel: models.ShareClipboard})
	if err != nil || clip.Title != "" || !strings.HasPrefix(clip.Text, "Let's meet at") {
		t.Fatalf("clipboard = %+v, %v", clip, err)
	}

	sms, err := svc.Share(ctx, cafe, models.ShareRequest{Channel: models.ShareSMS})
	if err != nil || !strings.HasPrefix(sms.URI, "sms:?body=Let's%20meet%20at%20Blue%20Cafe!%0A") {
		t.Fatalf("sms = %+v, %v", sms, err)
	}

	if _, err := svc.Share(ctx, cafe, models.ShareRequest{Channel: models.ShareEmail, Recipients: []string{"a@example.com"}}); !errors.Is(err, models.ErrShareUnavailable) {
		t.Fatalf("email without sender: %v", err)
	}
	if _, err := svc.Share(ctx, cafe, models.ShareRequest{Channel: "fax"}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("unknown channel: %v", err)
	}
}

func TestShareEmail(t *testing.T) {
	tm, err := email.NewTemplateManager()
	if err != nil {
		t.Fatalf("NewTemplateManager: %v", err)
	}
	sender := &fakeSender{}
	svc := NewService(sender, tm, logging.Discard())

	res, err := svc.Share(context.Background(), cafe, models.ShareRequest{Channel: models.ShareEmail, Recipients: []string{"a@example.com"}})
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if !res.Sent || sender.subject != "Meet at Blue Cafe" || len(sender.to) != 1 {
		t.Fatalf("result %+v, sender %+v", res, sender)
	}
	if !strings.Contains(sender.html, "Get directions") {
		t.Fatalf("html body = %s", sender.html)
	}

	sender.err = errors.New("throttled")
	if _, err := svc.Share(context.Background(), cafe, models.ShareRequest{Channel: models.ShareEmail, Recipients: []string{"a@example.com"}}); err == nil {
		t.Fatalf("expected send failure")
	}
}

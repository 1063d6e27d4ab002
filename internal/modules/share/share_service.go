// Package share composes the "let's meet here" message for a venue and hands
// it to the channel the user picked.
package share

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"meet-halfway/internal/models"
	"meet-halfway/pkg/email"

	"github.com/labstack/echo/v4"
)

const (
	searchBaseURL     = "https://www.google.com/maps/search/?api=1&query="
	directionsBaseURL = "https://www.google.com/maps/dir/?api=1&destination="
)

// ServiceInterface defines the contract for the share service.
type ServiceInterface interface {
	Share(ctx context.Context, venue models.Venue, req models.ShareRequest) (*models.ShareResult, error)
}

// Service implements ServiceInterface. The email channel is only available
// when a sender is configured.
type Service struct {
	sender    email.ServiceInterface
	templates *email.TemplateManager
	logger    echo.Logger
}

// NewService creates a share service. sender may be nil.
func NewService(sender email.ServiceInterface, templates *email.TemplateManager, logger echo.Logger) *Service {
	return &Service{sender: sender, templates: templates, logger: logger}
}

// uriComponent undoes the QueryEscape choices that differ from
// encodeURIComponent, so links match what browsers produce.
var uriComponent = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func encode(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}

// SearchURL links to the venue on Google Maps.
func SearchURL(v models.Venue) string {
	return searchBaseURL + encode(v.Name+" "+v.Address)
}

// DirectionsURL opens driving directions to the venue.
func DirectionsURL(v models.Venue) string {
	dest := v.Address
	if dest == "" {
		dest = v.Name
	}
	link := directionsBaseURL + encode(dest)
	if v.PlaceID != "" {
		link += "&destination_place_id=" + encode(v.PlaceID)
	}
	return link
}

// Message returns the share title and body for v.
func Message(v models.Venue) (title, text string) {
	title = "Meet at " + v.Name
	text = fmt.Sprintf("Let's meet at %s!\n%s\n%s", v.Name, v.Address, SearchURL(v))
	return title, text
}

// Share delivers the message through exactly one channel. Nothing is stored.
func (s *Service) Share(ctx context.Context, venue models.Venue, req models.ShareRequest) (*models.ShareResult, error) {
	title, text := Message(venue)
	result := &models.ShareResult{Channel: req.Channel, Text: text}

	switch req.Channel {
	case models.ShareNative:
		result.Title = title
	case models.ShareClipboard:
	case models.ShareSMS:
		result.URI = "sms:?body=" + encode(text)
	case models.ShareEmail:
		if err := s.sendEmail(ctx, venue, title, text, req.Recipients); err != nil {
			return nil, err
		}
		result.Title = title
		result.Sent = true
	default:
		return nil, fmt.Errorf("service.Share: unknown channel %q: %w", req.Channel, models.ErrInvalidInput)
	}
	return result, nil
}

func (s *Service) sendEmail(ctx context.Context, venue models.Venue, subject, text string, to []string) error {
	if s.sender == nil || s.templates == nil {
		return fmt.Errorf("service.Share: email: %w", models.ErrShareUnavailable)
	}
	if len(to) == 0 {
		return fmt.Errorf("service.Share: no recipients: %w", models.ErrInvalidInput)
	}

	html, err := s.templates.GenerateShareEmailHTML(email.TemplateData{
		Name:          venue.Name,
		Address:       venue.Address,
		MapsURL:       SearchURL(venue),
		DirectionsURL: DirectionsURL(venue),
	})
	if err != nil {
		return fmt.Errorf("service.Share: render: %w", err)
	}
	if err := s.sender.SendEmail(ctx, to, subject, text, html); err != nil {
		s.logger.Errorf("Share email for %s failed: %v", venue.PlaceID, err)
		return fmt.Errorf("service.Share: %w", err)
	}
	return nil
}

package email

import (
	"bytes"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	ShareTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	shareTmpl, err := template.New("share").Parse(shareVenueTemplate)
	if err != nil {
		return nil, err
	}
	return &TemplateManager{ShareTmpl: shareTmpl}, nil
}

// TemplateData holds the dynamic data for the share email.
type TemplateData struct {
	Name          string
	Address       string
	MapsURL       string
	DirectionsURL string
}

// GenerateShareEmailHTML executes the share template with the provided data.
func (tm *TemplateManager) GenerateShareEmailHTML(data TemplateData) (string, error) {
	var body bytes.Buffer
	if err := tm.ShareTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

const shareVenueTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Let's meet at {{.Name}}</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Let's meet at {{.Name}}!</h2>
	<p>{{.Address}}</p>
	<p><a href="{{.MapsURL}}">View on Google Maps</a></p>
	<p><a href="{{.DirectionsURL}}">Get directions</a></p>
</body>
</html>
`

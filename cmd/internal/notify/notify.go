// Package notify delivers best-effort email notifications. Dispatch never
// blocks the caller and never surfaces an error: a slow or broken mail
// transport must not affect the request that triggered the message.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Message is one notification to deliver.
type Message struct {
	ID        string            `json:"id"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Template  string            `json:"template"`
	Context   map[string]string `json:"context"`
}

type Dispatcher interface {
	Dispatch(msg Message)
}

// Sender is the actual mail transport.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Render produces the HTML body for a message from its named template.
func Render(name string, context map[string]string) (string, error) {
	tmpl := templates.Lookup(name + ".html")
	if tmpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("render %q: %w", name, err)
	}
	return buf.String(), nil
}

package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// BookingData is the content of a booking confirmation email. Amounts are
// preformatted for display.
type BookingData struct {
	Name         string
	Reference    string
	Destination  string
	From         string
	To           string
	DurationDays int
	Services     []string
	Total        string
}

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var (
	bookingHTML = template.Must(template.New("bookingHTML").Parse(bookingHTMLTemplate))
	bookingText = texttemplate.Must(texttemplate.New("bookingText").Parse(bookingTextTemplate))
)

// RenderBookingConfirmation renders the confirmation sent after a booking
// is submitted.
func RenderBookingConfirmation(data BookingData) (Message, error) {
	var html, text bytes.Buffer
	if err := bookingHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("email.RenderBookingConfirmation: html: %w", err)
	}
	if err := bookingText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("email.RenderBookingConfirmation: text: %w", err)
	}
	return Message{
		Subject: fmt.Sprintf("Your %s trip request %s", data.Destination, shortRef(data.Reference)),
		Text:    strings.TrimSpace(text.String()) + "\n",
		HTML:    html.String(),
	}, nil
}

func shortRef(ref string) string {
	if len(ref) > 8 {
		return strings.ToUpper(ref[:8])
	}
	return strings.ToUpper(ref)
}

const bookingHTMLTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Booking Request Received</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Namaste {{.Name}},</h2>
	<p>We have received your booking request for <strong>{{.Destination}}</strong>.</p>
	<table>
		<tr><td>Reference</td><td>{{.Reference}}</td></tr>
		<tr><td>Dates</td><td>{{.From}} to {{.To}} ({{.DurationDays}} days)</td></tr>
		{{if .Services}}<tr><td>Services</td><td>{{range $i, $s := .Services}}{{if $i}}, {{end}}{{$s}}{{end}}</td></tr>{{end}}
		<tr><td>Estimated total</td><td>{{.Total}}</td></tr>
	</table>
	<p>Our travel desk will contact you shortly to confirm availability and payment.</p>
</body>
</html>
`

const bookingTextTemplate = `
Namaste {{.Name}},

We have received your booking request for {{.Destination}}.

Reference: {{.Reference}}
Dates: {{.From}} to {{.To}} ({{.DurationDays}} days)
{{- if .Services}}
Services: {{range $i, $s := .Services}}{{if $i}}, {{end}}{{$s}}{{end}}
{{- end}}
Estimated total: {{.Total}}

Our travel desk will contact you shortly to confirm availability and payment.
`

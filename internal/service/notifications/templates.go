package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Message готовое к отправке письмо
type Message struct {
	Subject string
	HTML    string
	Text    string
}

type templateData struct {
	Headline     string
	TrackingCode string
	Time         string
	Date         string
	Type         string
	AppLink      string
	ShowSlot     bool
}

const textBody = `Dear User,

{{.Headline}}
Appointment ID : {{.TrackingCode}}
{{- if .ShowSlot}}
Time : {{.Time}}
Date : {{.Date}}
Type : {{.Type}}
{{- end}}
{{- if and .ShowSlot .AppLink}}

In future you can use our app directly to book appointments as well - {{.AppLink}}
{{- end}}

Thanks & have a wonderful day :)
`

const htmlBody = `<html>
  <body style="font-family: Arial, sans-serif; background-color: #f9fafb; padding: 24px;">
    <div style="max-width: 520px; margin: 0 auto; background: #ffffff; border-radius: 12px; padding: 32px;">
      <p>Dear User,</p>
      <p>{{.Headline}}</p>
      <p>Appointment ID : <strong>{{.TrackingCode}}</strong></p>
      {{- if .ShowSlot}}
      <p>Time : {{.Time}}</p>
      <p>Date : {{.Date}}</p>
      <p>Type : {{.Type}}</p>
      {{- end}}
      {{- if and .ShowSlot .AppLink}}
      <p>In future you can use our app directly to book appointments as well - <a href="{{.AppLink}}" target="_blank">{{.AppLink}}</a></p>
      {{- end}}
      <p>Thanks &amp; have a wonderful day :)</p>
    </div>
  </body>
</html>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("text").Parse(textBody))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(htmlBody))
)

var subjects = map[domain.NotificationKind]struct {
	subject  string
	headline string
}{
	domain.NotificationConfirmation: {"Appointment Confirmed", "Your appointment booking is confirmed."},
	domain.NotificationReschedule:   {"Appointment Rescheduled", "Your appointment is rescheduled."},
	domain.NotificationCancellation: {"Appointment Cancelled", "Your appointment is cancelled."},
}

// Render собирает письмо для события kind
func Render(kind domain.NotificationKind, a *domain.Appointment, appLink string) (*Message, error) {
	meta, ok := subjects[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	data := templateData{
		Headline:     meta.headline,
		TrackingCode: a.TrackingCode,
		Time:         fmt.Sprintf("%02d:00", a.Hour),
		Date:         a.Date.Format(domain.DisplayDateFormat),
		Type:         titleType(a.Type),
		AppLink:      appLink,
		ShowSlot:     kind != domain.NotificationCancellation,
	}

	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: text: %v", ErrRender, err)
	}
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("%w: html: %v", ErrRender, err)
	}

	return &Message{Subject: meta.subject, HTML: html.String(), Text: text.String()}, nil
}

func titleType(t domain.AppointmentType) string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

var replyTemplate = template.Must(template.New("reply").Parse(`Hi {{.ContactName}},

{{.Message}}

Best regards,
{{.SiteName}}

--
You wrote on {{.ReceivedAt.Format "2 Jan 2006"}}:
{{.OriginalMessage}}
`))

var operatorTemplate = template.Must(template.New("operator").Parse(`New message from the contact form on {{.SiteName}}.

Name:  {{.Name}}
Email: {{.Email}}
Sent:  {{.SubmittedAt.Format "2006-01-02 15:04 MST"}}

{{.Message}}
`))

// ReplyData feeds the reply mail sent to a contact.
type ReplyData struct {
	SiteName        string
	ContactName     string
	Message         string
	OriginalMessage string
	ReceivedAt      time.Time
}

// OperatorData feeds the notification sent to the site operator.
type OperatorData struct {
	SiteName    string
	Name        string
	Email       string
	Message     string
	SubmittedAt time.Time
}

// RenderReply renders the reply body.
func RenderReply(data ReplyData) (string, error) {
	return render(replyTemplate, data)
}

// RenderOperatorNotification renders the operator notification body.
func RenderOperatorNotification(data OperatorData) (string, error) {
	return render(operatorTemplate, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s mail: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

package services

import (
	"fmt"
	"strings"
)

// Notification template identifiers
const (
	TemplatePairingIntroSMS    = "pairing_intro_sms"
	TemplatePairingIntroEmail  = "pairing_intro_email"
	TemplateSeekerWelcomeEmail = "seeker_welcome_email"
	TemplateAnsarApprovedEmail = "ansar_approved_email"
)

type notificationTemplate struct {
	Subject string
	Body    string
}

// Hard-coded templates. Placeholders use the {{name}} form and are filled
// from the outbox row's params.
var notificationTemplates = map[string]notificationTemplate{
	TemplatePairingIntroSMS: {
		Body: "Salaam {{seekerName}}! You've been connected with {{ansarName}} from {{organizationName}}. They will reach out to you soon to introduce themselves.",
	},
	TemplatePairingIntroEmail: {
		Subject: "You've been connected with a mentor",
		Body: "<html><body>" +
			"<p>Salaam {{seekerName}},</p>" +
			"<p>Great news! You have been connected with <strong>{{ansarName}}</strong> from <strong>{{organizationName}}</strong>.</p>" +
			"<p>Your mentor will reach out shortly to set up an introduction. You can also reply to them directly from your inbox.</p>" +
			"<p>— The Wasl Team</p>" +
			"</body></html>",
	},
	TemplateSeekerWelcomeEmail: {
		Subject: "Welcome — we received your request",
		Body: "<html><body>" +
			"<p>Salaam {{seekerName}},</p>" +
			"<p>Thank you for reaching out. Our team has received your request and will contact you soon.</p>" +
			"<p>— The Wasl Team</p>" +
			"</body></html>",
	},
	TemplateAnsarApprovedEmail: {
		Subject: "Your volunteer application was approved",
		Body: "<html><body>" +
			"<p>Salaam {{ansarName}},</p>" +
			"<p>Your application to volunteer as a mentor has been approved. Welcome aboard!</p>" +
			"<p>— The Wasl Team</p>" +
			"</body></html>",
	},
}

// RenderTemplate selects a hard-coded template by id and substitutes params.
func RenderTemplate(templateID string, params map[string]string) (subject, body string, err error) {
	tpl, ok := notificationTemplates[templateID]
	if !ok {
		return "", "", fmt.Errorf("unknown notification template %q", templateID)
	}

	subject = tpl.Subject
	body = tpl.Body
	for name, value := range params {
		placeholder := "{{" + name + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return subject, body, nil
}

package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// plainTextFallback is the text part sent alongside every HTML body
const plainTextFallback = "This is a HTML email. Please view in a HTML-capable email client."

// Message is one composed email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers a composed message (SES or SMTP)
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

// ContactEmailData holds the data rendered into contact form emails
type ContactEmailData struct {
	SiteID      string
	SenderName  string
	SenderEmail string
	Company     string
	Interest    string
	Message     string
}

// EmailService composes the contact form emails and hands them to a Transport
type EmailService struct {
	transport  Transport
	ownerEmail string
}

// NewEmailService creates a service that notifies ownerEmail of every submission
func NewEmailService(transport Transport, ownerEmail string) *EmailService {
	return &EmailService{
		transport:  transport,
		ownerEmail: ownerEmail,
	}
}

// ownerEmailTemplate is the HTML template for the site owner notification
var ownerEmailTemplate = template.Must(template.New("owner").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New submission from {{.SiteID}}</h1>
        </div>
        <div class="content">
            <div class="field"><div class="label">From:</div><div>{{.SenderName}} ({{.SenderEmail}})</div></div>
            {{if .Company}}<div class="field"><div class="label">Company:</div><div>{{.Company}}</div></div>{{end}}
            <div class="field"><div class="label">Interested in:</div><div>{{.Interest}}</div></div>
            <div class="field"><div class="label">Message:</div><div class="message-box">{{.Message}}</div></div>
        </div>
        <div class="footer">
            <p>Sent from the contact form on {{.SiteID}}. Reply to this email to answer {{.SenderName}}.</p>
        </div>
    </div>
</body>
</html>`))

// submitterEmailTemplate is the HTML template for the acknowledgement sent to the visitor
var submitterEmailTemplate = template.Must(template.New("submitter").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thank you for your inquiry</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <p>Hi {{.SenderName}},</p>
        <p>Thank you for reaching out to {{.SiteID}}. We received your message about <strong>{{.Interest}}</strong> and will get back to you as soon as possible.</p>
        <p>For your records, this is what you sent:</p>
        <blockquote style="border-left: 4px solid #0066cc; padding-left: 12px; color: #555;">{{.Message}}</blockquote>
        <p>The {{.SiteID}} team</p>
    </div>
</body>
</html>`))

// IsConfigured checks if the service can deliver mail
func (s *EmailService) IsConfigured() bool {
	return s != nil && s.transport != nil && s.ownerEmail != ""
}

// SendOwnerNotification tells the site owner about a new submission
func (s *EmailService) SendOwnerNotification(ctx context.Context, data ContactEmailData) error {
	body, err := render(ownerEmailTemplate, data)
	if err != nil {
		return err
	}

	msg := Message{
		To:      []string{s.ownerEmail},
		ReplyTo: data.SenderEmail,
		Subject: fmt.Sprintf("New Contact Form Submission from %s", data.SiteID),
		HTML:    body,
		Text:    plainTextFallback,
	}
	if err := s.transport.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("failed to send owner notification: %w", err)
	}
	return nil
}

// SendAcknowledgement thanks the visitor for their inquiry
func (s *EmailService) SendAcknowledgement(ctx context.Context, data ContactEmailData) error {
	body, err := render(submitterEmailTemplate, data)
	if err != nil {
		return err
	}

	msg := Message{
		To:      []string{data.SenderEmail},
		Subject: "Thank you for your inquiry",
		HTML:    body,
		Text:    plainTextFallback,
	}
	if err := s.transport.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("failed to send acknowledgement: %w", err)
	}
	return nil
}

func render(tmpl *template.Template, data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"wasl_server/models"
	"wasl_server/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender sends one SMS and returns the provider message id.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// EmailSender sends one email and returns the provider message id.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) (string, error)
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	Client *twilio.RestClient
	From   string
}

// NewTwilioSenderFromEnv reads TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and
// TWILIO_PHONE_NUMBER.
func NewTwilioSenderFromEnv() *TwilioSender {
	return &TwilioSender{
		Client: twilio.NewRestClient(),
		From:   os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (t *TwilioSender) SendSMS(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.From)
	params.SetBody(body)

	resp, err := t.Client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// SendGridSender sends email through the SendGrid v3 API.
type SendGridSender struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSenderFromEnv reads SENDGRID_API_KEY and SENDGRID_FROM_EMAIL.
func NewSendGridSenderFromEnv() *SendGridSender {
	return &SendGridSender{
		APIKey:    os.Getenv("SENDGRID_API_KEY"),
		FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		FromName:  "Wasl",
	}
}

func (sg *SendGridSender) SendEmail(_ context.Context, to, subject, html string) (string, error) {
	from := mail.NewEmail(sg.FromName, sg.FromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", html)

	client := sendgrid.NewSendClient(sg.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}

// Dispatcher drains the notification outbox on an interval. Provider
// failures are audited and retried with exponential backoff; they never
// affect the domain write that enqueued the row.
type Dispatcher struct {
	Notifications *NotificationService
	SMS           SMSSender
	Email         EmailSender
	Interval      time.Duration
	MaxAttempts   int
	Backoff       time.Duration
}

// NewDispatcher wires the dispatcher with its default retry policy.
func NewDispatcher(notifications *NotificationService, sms SMSSender, email EmailSender) *Dispatcher {
	return &Dispatcher{
		Notifications: notifications,
		SMS:           sms,
		Email:         email,
		Interval:      15 * time.Second,
		MaxAttempts:   5,
		Backoff:       time.Minute,
	}
}

// Run blocks until the context is canceled, draining the outbox every
// Interval.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	log.Printf("Notification dispatcher started (interval %s)", d.Interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Notification dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.DrainOnce(ctx); err != nil {
				log.Printf("❌ Dispatcher drain failed: %v", err)
			}
		}
	}
}

// DrainOnce processes every due pending outbox row exactly once.
func (d *Dispatcher) DrainOnce(ctx context.Context) error {
	due, err := d.Notifications.ListDuePending(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, row := range due {
		providerID, sendErr := d.deliver(ctx, row)
		if sendErr != nil {
			log.Printf("❌ Failed to send %s notification %s: %v", row.Channel, row.NotificationID, sendErr)
			d.Notifications.RecordAudit(ctx, row, models.AuditStatusFailed, "", sendErr.Error())
			if err := d.Notifications.MarkFailedAttempt(ctx, row, sendErr, d.MaxAttempts, d.Backoff); err != nil {
				log.Printf("❌ Failed to record attempt for %s: %v", row.NotificationID, err)
			}
			continue
		}

		d.Notifications.RecordAudit(ctx, row, models.AuditStatusSent, providerID, "")
		if err := d.Notifications.MarkSent(ctx, row.NotificationID, row.Attempts+1); err != nil {
			log.Printf("❌ Failed to mark %s as sent: %v", row.NotificationID, err)
		}
	}
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, row models.OutboxNotification) (string, error) {
	subject, body, err := RenderTemplate(row.Template, row.Params)
	if err != nil {
		return "", err
	}

	switch row.Channel {
	case models.ChannelSMS:
		to, err := utils.NormalizePhoneNumber(row.Recipient)
		if err != nil {
			return "", err
		}
		return d.SMS.SendSMS(ctx, to, body)
	case models.ChannelEmail:
		return d.Email.SendEmail(ctx, row.Recipient, subject, body)
	default:
		return "", fmt.Errorf("unsupported notification channel %q", row.Channel)
	}
}

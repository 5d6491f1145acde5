package services

import (
	"context"
	"testing"
	"time"

	"wasl_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSMSSender struct {
	mock.Mock
}

func (m *mockSMSSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, html string) (string, error) {
	args := m.Called(ctx, to, subject, html)
	return args.String(0), args.Error(1)
}

func newTestDispatcher(db *mockDB, sms SMSSender, email EmailSender) *Dispatcher {
	d := NewDispatcher(&NotificationService{Dynamo: db}, sms, email)
	d.Interval = time.Millisecond
	return d
}

func pendingRows(t *testing.T, rows ...models.OutboxNotification) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(rows))
	for _, row := range rows {
		items = append(items, mustMarshal(t, row))
	}
	return items
}

func TestDrainOnceSendsSMS(t *testing.T) {
	row := models.OutboxNotification{
		NotificationID: "n-1",
		Channel:        models.ChannelSMS,
		Recipient:      "(555) 123-4567",
		Template:       TemplatePairingIntroSMS,
		Params:         map[string]string{"seekerName": "Amina", "ansarName": "Omar", "organizationName": "Masjid An-Noor"},
		Status:         models.OutboxStatusPending,
		NextAttemptAt:  time.Now().Add(-time.Minute).Format(time.RFC3339),
	}

	db := new(mockDB)
	db.On("QueryItemsWithIndex", mock.Anything, models.NotificationOutboxTable, models.OutboxStatusIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(pendingRows(t, row), nil)

	sms := new(mockSMSSender)
	sms.On("SendSMS", mock.Anything, "+15551234567", mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return("SM123", nil)

	// Audit row records the provider message id.
	db.On("PutItem", mock.Anything, models.NotificationAuditTable, mock.MatchedBy(func(item interface{}) bool {
		audit, ok := item.(models.NotificationAudit)
		return ok && audit.Status == models.AuditStatusSent &&
			audit.NotificationID == "n-1" && audit.ProviderMessageID == "SM123"
	})).Return(nil)

	// Outbox row transitions to sent.
	db.On("UpdateItem", mock.Anything, models.NotificationOutboxTable, mock.Anything, mock.Anything,
		mock.MatchedBy(func(values map[string]types.AttributeValue) bool {
			return attrString(values, ":sent") == models.OutboxStatusSent
		}), mock.Anything).Return(nil, nil)

	d := newTestDispatcher(db, sms, new(mockEmailSender))
	err := d.DrainOnce(context.Background())

	require.NoError(t, err)
	sms.AssertExpectations(t)
	db.AssertExpectations(t)
}

func TestDrainOnceRetriesFailedEmail(t *testing.T) {
	row := models.OutboxNotification{
		NotificationID: "n-2",
		Channel:        models.ChannelEmail,
		Recipient:      "amina@example.com",
		Template:       TemplateSeekerWelcomeEmail,
		Params:         map[string]string{"seekerName": "Amina"},
		Status:         models.OutboxStatusPending,
		Attempts:       0,
		NextAttemptAt:  time.Now().Add(-time.Minute).Format(time.RFC3339),
	}

	db := new(mockDB)
	db.On("QueryItemsWithIndex", mock.Anything, models.NotificationOutboxTable, models.OutboxStatusIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(pendingRows(t, row), nil)

	email := new(mockEmailSender)
	email.On("SendEmail", mock.Anything, "amina@example.com", mock.Anything, mock.Anything).
		Return("", assert.AnError)

	db.On("PutItem", mock.Anything, models.NotificationAuditTable, mock.MatchedBy(func(item interface{}) bool {
		audit, ok := item.(models.NotificationAudit)
		return ok && audit.Status == models.AuditStatusFailed && audit.Error != ""
	})).Return(nil)

	// The row stays pending with one recorded attempt.
	db.On("UpdateItem", mock.Anything, models.NotificationOutboxTable, mock.Anything, mock.Anything,
		mock.MatchedBy(func(values map[string]types.AttributeValue) bool {
			return attrString(values, ":status") == models.OutboxStatusPending &&
				values[":attempts"].(*types.AttributeValueMemberN).Value == "1"
		}), mock.Anything).Return(nil, nil)

	d := newTestDispatcher(db, new(mockSMSSender), email)
	err := d.DrainOnce(context.Background())

	require.NoError(t, err)
	email.AssertExpectations(t)
	db.AssertExpectations(t)
}

func TestDrainOnceRejectsInvalidPhoneBeforeProviderCall(t *testing.T) {
	row := models.OutboxNotification{
		NotificationID: "n-3",
		Channel:        models.ChannelSMS,
		Recipient:      "12345",
		Template:       TemplatePairingIntroSMS,
		Status:         models.OutboxStatusPending,
		NextAttemptAt:  time.Now().Add(-time.Minute).Format(time.RFC3339),
	}

	db := new(mockDB)
	db.On("QueryItemsWithIndex", mock.Anything, models.NotificationOutboxTable, models.OutboxStatusIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(pendingRows(t, row), nil)

	db.On("PutItem", mock.Anything, models.NotificationAuditTable, mock.MatchedBy(func(item interface{}) bool {
		audit, ok := item.(models.NotificationAudit)
		return ok && audit.Status == models.AuditStatusFailed
	})).Return(nil)
	db.On("UpdateItem", mock.Anything, models.NotificationOutboxTable, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil, nil)

	sms := new(mockSMSSender)
	d := newTestDispatcher(db, sms, new(mockEmailSender))
	err := d.DrainOnce(context.Background())

	require.NoError(t, err)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

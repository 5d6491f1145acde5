package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wasl_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// NotificationService owns the outbox and the audit log. Domain mutations
// append durable pending rows through Enqueue; the dispatcher drains them.
type NotificationService struct {
	Dynamo DB
}

// Enqueue appends a pending outbox row. It is called in the same request
// path as the domain write that triggered the notification, so a crash after
// the domain write still leaves a durable record of the pending send.
func (s *NotificationService) Enqueue(ctx context.Context, channel, recipient, template string, params map[string]string) error {
	if recipient == "" {
		log.Printf("⚠️ Skipping %s notification with empty recipient (template %s)", channel, template)
		return nil
	}

	now := time.Now().Format(time.RFC3339)
	row := models.OutboxNotification{
		NotificationID: uuid.New().String(),
		Channel:        channel,
		Recipient:      recipient,
		Template:       template,
		Params:         params,
		Status:         models.OutboxStatusPending,
		Attempts:       0,
		NextAttemptAt:  now,
		CreatedAt:      now,
		LastUpdated:    now,
	}

	if err := s.Dynamo.PutItem(ctx, models.NotificationOutboxTable, row); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

// ListDuePending returns pending outbox rows whose nextAttemptAt has passed.
func (s *NotificationService) ListDuePending(ctx context.Context, now time.Time) ([]models.OutboxNotification, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.NotificationOutboxTable, models.OutboxStatusIndex,
		"#st = :pending",
		map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: models.OutboxStatusPending},
		},
		map[string]string{"#st": "status"}, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending notifications: %w", err)
	}

	var rows []models.OutboxNotification
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outbox rows: %w", err)
	}

	cutoff := now.Format(time.RFC3339)
	due := rows[:0]
	for _, row := range rows {
		if row.NextAttemptAt <= cutoff {
			due = append(due, row)
		}
	}
	return due, nil
}

// MarkSent finalizes an outbox row after a successful send.
func (s *NotificationService) MarkSent(ctx context.Context, notificationID string, attempts int) error {
	key := map[string]types.AttributeValue{
		"notificationId": &types.AttributeValueMemberS{Value: notificationID},
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.NotificationOutboxTable,
		"SET #st = :sent, attempts = :attempts, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":sent":     &types.AttributeValueMemberS{Value: models.OutboxStatusSent},
			":attempts": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", attempts)},
			":now":      &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"})
	return err
}

// MarkFailedAttempt records a failed attempt. The row stays pending with a
// backed-off nextAttemptAt until maxAttempts is reached, then becomes failed.
func (s *NotificationService) MarkFailedAttempt(ctx context.Context, row models.OutboxNotification, sendErr error, maxAttempts int, backoff time.Duration) error {
	attempts := row.Attempts + 1
	status := models.OutboxStatusPending
	if attempts >= maxAttempts {
		status = models.OutboxStatusFailed
	}

	// Exponential backoff: backoff * 2^(attempts-1)
	delay := backoff << (attempts - 1)
	nextAttempt := time.Now().Add(delay).Format(time.RFC3339)

	key := map[string]types.AttributeValue{
		"notificationId": &types.AttributeValueMemberS{Value: row.NotificationID},
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.NotificationOutboxTable,
		"SET #st = :status, attempts = :attempts, nextAttemptAt = :next, lastError = :err, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":status":   &types.AttributeValueMemberS{Value: status},
			":attempts": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", attempts)},
			":next":     &types.AttributeValueMemberS{Value: nextAttempt},
			":err":      &types.AttributeValueMemberS{Value: sendErr.Error()},
			":now":      &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"})
	return err
}

// RecordAudit writes one audit row per send attempt.
func (s *NotificationService) RecordAudit(ctx context.Context, row models.OutboxNotification, status, providerMessageID, errText string) error {
	audit := models.NotificationAudit{
		AuditID:           uuid.New().String(),
		NotificationID:    row.NotificationID,
		Channel:           row.Channel,
		Recipient:         row.Recipient,
		Template:          row.Template,
		Status:            status,
		ProviderMessageID: providerMessageID,
		Error:             errText,
		CreatedAt:         time.Now().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.NotificationAuditTable, audit); err != nil {
		// Audit failures are logged, never surfaced to the sender.
		log.Printf("❌ Failed to write notification audit row: %v", err)
		return err
	}
	return nil
}

// ListAuditLog returns recent audit rows for the admin dashboard.
func (s *NotificationService) ListAuditLog(ctx context.Context) ([]models.NotificationAudit, error) {
	var rows []models.NotificationAudit
	if err := s.Dynamo.ScanWithFilter(ctx, models.NotificationAuditTable, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to scan audit log: %w", err)
	}
	return rows, nil
}

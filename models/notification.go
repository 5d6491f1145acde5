package models

// OutboxNotification is a durable "pending notification" row appended in the
// same call path as the domain write that triggered it. A dispatcher worker
// drains pending rows and retries failures with backoff; delivery failure
// never rolls back the domain write.
type OutboxNotification struct {
	NotificationID string            `dynamodbav:"notificationId" json:"notificationId"`
	Channel        string            `dynamodbav:"channel" json:"channel"` // sms, email
	Recipient      string            `dynamodbav:"recipient" json:"recipient"`
	Template       string            `dynamodbav:"template" json:"template"`
	Params         map[string]string `dynamodbav:"params,omitempty" json:"params,omitempty"`
	Status         string            `dynamodbav:"status" json:"status"` // pending, sent, failed
	Attempts       int               `dynamodbav:"attempts" json:"attempts"`
	NextAttemptAt  string            `dynamodbav:"nextAttemptAt" json:"nextAttemptAt"`
	LastError      string            `dynamodbav:"lastError,omitempty" json:"lastError,omitempty"`
	CreatedAt      string            `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated    string            `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// NotificationAudit records one row per send attempt
type NotificationAudit struct {
	AuditID           string `dynamodbav:"auditId" json:"auditId"`
	NotificationID    string `dynamodbav:"notificationId" json:"notificationId"`
	Channel           string `dynamodbav:"channel" json:"channel"`
	Recipient         string `dynamodbav:"recipient" json:"recipient"`
	Template          string `dynamodbav:"template" json:"template"`
	Status            string `dynamodbav:"status" json:"status"` // sent, failed
	ProviderMessageID string `dynamodbav:"providerMessageId,omitempty" json:"providerMessageId,omitempty"`
	Error             string `dynamodbav:"error,omitempty" json:"error,omitempty"`
	CreatedAt         string `dynamodbav:"createdAt" json:"createdAt"`
}

// Table names for the notification outbox and audit log
const (
	NotificationOutboxTable = "NotificationOutbox"
	NotificationAuditTable  = "NotificationAudit"
)

// OutboxStatusIndex lets the dispatcher query rows by status
const OutboxStatusIndex = "status-index"

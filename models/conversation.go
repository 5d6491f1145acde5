package models

// Conversation represents a direct or broadcast conversation. The lastMessage
// fields are denormalized for inbox list rendering.
type Conversation struct {
	ConversationID      string `dynamodbav:"conversationId" json:"conversationId"`
	Type                string `dynamodbav:"type" json:"type"` // direct, broadcast
	Subject             string `dynamodbav:"subject,omitempty" json:"subject,omitempty"`
	CreatedBy           string `dynamodbav:"createdBy" json:"createdBy"`
	LastMessageText     string `dynamodbav:"lastMessageText,omitempty" json:"lastMessageText,omitempty"`
	LastMessageSenderID string `dynamodbav:"lastMessageSenderId,omitempty" json:"lastMessageSenderId,omitempty"`
	LastMessageAt       string `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt           string `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"

package models

// Message is immutable once written and belongs to exactly one conversation
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"` // partition key
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`           // sort key
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Content        string `dynamodbav:"content" json:"content"`
}

// MessagesTable is the DynamoDB table name for messages
const MessagesTable = "Messages"

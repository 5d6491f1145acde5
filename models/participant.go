package models

// Participant is one (conversation, user) membership row. UnreadCount is
// incremented on every message the user did not send and reset to zero when
// the user reads the conversation.
type Participant struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"` // partition key
	UserID         string `dynamodbav:"userId" json:"userId"`                 // sort key
	UnreadCount    int    `dynamodbav:"unreadCount" json:"unreadCount"`
	JoinedAt       string `dynamodbav:"joinedAt" json:"joinedAt"`
}

// ParticipantsTable is the DynamoDB table name for conversation participants
const ParticipantsTable = "Participants"

// ParticipantUserIndex lists a user's conversations
const ParticipantUserIndex = "userId-index"

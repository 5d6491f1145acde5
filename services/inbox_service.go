package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"wasl_server/models"
	"wasl_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// InboxService owns conversations, participants, messages and the unread
// counters.
type InboxService struct {
	Dynamo   DB
	Users    *UserService
	Seekers  *SeekerService
	Ansars   *AnsarService
	Pairings *PairingService
}

// DirectConversationID derives the deterministic id for a direct
// conversation between two users. Both orderings of the pair map to the same
// id, so a conditional put on it is what prevents duplicate direct
// conversations under concurrent sends.
func DirectConversationID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "direct#" + userA + "#" + userB
}

// SendDirectMessage delivers a message between two users, creating the
// direct conversation on first contact and reusing it afterwards.
func (s *InboxService) SendDirectMessage(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if senderID == "" || recipientID == "" || content == "" {
		return nil, errors.New("senderId, recipientId and content are required")
	}
	if senderID == recipientID {
		return nil, errors.New("cannot message yourself")
	}

	now := time.Now().Format(time.RFC3339)
	conversationID := DirectConversationID(senderID, recipientID)

	conversation := models.Conversation{
		ConversationID: conversationID,
		Type:           models.ConversationTypeDirect,
		CreatedBy:      senderID,
		CreatedAt:      now,
	}
	err := s.Dynamo.PutItemIfAbsent(ctx, models.ConversationsTable, conversation, "conversationId")
	switch {
	case err == nil:
		// New conversation: seed both participant rows at zero. The message
		// append below bumps the recipient to one.
		if err := s.putParticipants(ctx, conversationID, []string{senderID, recipientID}, now); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrConditionalCheckFailed):
		// Repeat contact between the same pair reuses the conversation.
	default:
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return s.appendMessage(ctx, conversationID, senderID, content)
}

// BroadcastInput selects recipients by role and optional organization.
type BroadcastInput struct {
	SenderID       string `json:"senderId"`
	RecipientRole  string `json:"recipientRole"`
	OrganizationID string `json:"organizationId,omitempty"`
	Subject        string `json:"subject,omitempty"`
	Content        string `json:"content"`
}

// Broadcast creates a new broadcast conversation with every active user of
// the recipient role (scoped to the organization when given, excluding the
// sender) and delivers the first message.
func (s *InboxService) Broadcast(ctx context.Context, in BroadcastInput) (*models.Conversation, error) {
	if in.SenderID == "" || in.RecipientRole == "" || in.Content == "" {
		return nil, errors.New("senderId, recipientRole and content are required")
	}

	recipients, err := s.Users.ListUsersByRole(ctx, in.RecipientRole, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	userIDs := []string{in.SenderID}
	for _, u := range recipients {
		if u.UserID == in.SenderID {
			continue
		}
		userIDs = append(userIDs, u.UserID)
	}
	if len(userIDs) == 1 {
		return nil, ErrNoRecipients
	}

	now := time.Now().Format(time.RFC3339)
	conversation := models.Conversation{
		ConversationID: uuid.New().String(),
		Type:           models.ConversationTypeBroadcast,
		Subject:        in.Subject,
		CreatedBy:      in.SenderID,
		CreatedAt:      now,
	}
	if err := s.Dynamo.PutItem(ctx, models.ConversationsTable, conversation); err != nil {
		return nil, fmt.Errorf("failed to create broadcast conversation: %w", err)
	}

	if err := s.putParticipants(ctx, conversation.ConversationID, userIDs, now); err != nil {
		return nil, err
	}

	if _, err := s.appendMessage(ctx, conversation.ConversationID, in.SenderID, in.Content); err != nil {
		return nil, err
	}

	log.Printf("✅ Broadcast %s sent to %d %s recipients", conversation.ConversationID, len(userIDs)-1, in.RecipientRole)
	return &conversation, nil
}

// putParticipants batch-inserts participant rows with zeroed unread counters.
func (s *InboxService) putParticipants(ctx context.Context, conversationID string, userIDs []string, joinedAt string) error {
	writeRequests := make([]types.WriteRequest, 0, len(userIDs))
	for _, userID := range userIDs {
		item, err := attributevalue.MarshalMap(models.Participant{
			ConversationID: conversationID,
			UserID:         userID,
			UnreadCount:    0,
			JoinedAt:       joinedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal participant: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	if err := s.Dynamo.BatchWriteItems(ctx, models.ParticipantsTable, writeRequests); err != nil {
		return fmt.Errorf("failed to insert participants: %w", err)
	}
	return nil
}

// appendMessage inserts the message row, patches the conversation's
// denormalized lastMessage fields and increments every other participant's
// unread counter.
func (s *InboxService) appendMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	now := time.Now().Format(time.RFC3339)
	message := models.Message{
		ConversationID: conversationID,
		CreatedAt:      now,
		MessageID:      uuid.New().String(),
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	conversationKey := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.ConversationsTable,
		"SET lastMessageText = :text, lastMessageSenderId = :sender, lastMessageAt = :at",
		conversationKey,
		map[string]types.AttributeValue{
			":text":   &types.AttributeValueMemberS{Value: content},
			":sender": &types.AttributeValueMemberS{Value: senderID},
			":at":     &types.AttributeValueMemberS{Value: now},
		}, nil); err != nil {
		return nil, err
	}

	participants, err := s.Dynamo.QueryItems(ctx, models.ParticipantsTable,
		"conversationId = :conversationId",
		map[string]types.AttributeValue{
			":conversationId": &types.AttributeValueMemberS{Value: conversationID},
		}, nil, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}

	for _, item := range participants {
		userID := utils.ExtractString(item, "userId")
		if userID == "" || userID == senderID {
			continue
		}
		participantKey := map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: conversationID},
			"userId":         &types.AttributeValueMemberS{Value: userID},
		}
		if _, err := s.Dynamo.UpdateItem(ctx, models.ParticipantsTable,
			"ADD unreadCount :one",
			participantKey,
			map[string]types.AttributeValue{
				":one": &types.AttributeValueMemberN{Value: "1"},
			}, nil); err != nil {
			log.Printf("❌ Failed to bump unread count for %s in %s: %v", userID, conversationID, err)
		}
	}

	return &message, nil
}

// MarkAsRead zeroes the caller's own unread counter and nobody else's.
func (s *InboxService) MarkAsRead(ctx context.Context, conversationID, userID string) error {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
		"userId":         &types.AttributeValueMemberS{Value: userID},
	}
	if _, err := s.Dynamo.GetItem(ctx, models.ParticipantsTable, key); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrNotAParticipant
		}
		return err
	}

	_, err := s.Dynamo.UpdateItem(ctx, models.ParticipantsTable,
		"SET unreadCount = :zero",
		key,
		map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
		}, nil)
	return err
}

// ConversationSummary is a conversation joined with the caller's unread
// counter for inbox list rendering.
type ConversationSummary struct {
	models.Conversation
	UnreadCount int `json:"unreadCount"`
}

// ListConversations returns the caller's conversations, newest activity
// first.
func (s *InboxService) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ParticipantsTable, models.ParticipantUserIndex,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		}, nil, 200)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations for user: %w", err)
	}

	var memberships []models.Participant
	if err := attributevalue.UnmarshalListOfMaps(items, &memberships); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
	}

	summaries := make([]ConversationSummary, 0, len(memberships))
	for _, membership := range memberships {
		conversationKey := map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: membership.ConversationID},
		}
		item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, conversationKey)
		if err != nil {
			log.Printf("❌ Failed to load conversation %s: %v", membership.ConversationID, err)
			continue
		}
		var conversation models.Conversation
		if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
			continue
		}
		summaries = append(summaries, ConversationSummary{
			Conversation: conversation,
			UnreadCount:  membership.UnreadCount,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt > summaries[j].LastMessageAt
	})
	return summaries, nil
}

// ListMessages returns a conversation's messages, newest first. The caller
// must be a participant.
func (s *InboxService) ListMessages(ctx context.Context, conversationID, userID string, limit int) ([]models.Message, error) {
	participantKey := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
		"userId":         &types.AttributeValueMemberS{Value: userID},
	}
	if _, err := s.Dynamo.GetItem(ctx, models.ParticipantsTable, participantKey); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrNotAParticipant
		}
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable,
		"conversationId = :conversationId",
		map[string]types.AttributeValue{
			":conversationId": &types.AttributeValueMemberS{Value: conversationID},
		}, nil, int32(limit), true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

// ListMessageableUsers resolves who the caller may start a conversation
// with. This is a pure function of the caller's role.
func (s *InboxService) ListMessageableUsers(ctx context.Context, userID string) ([]models.User, error) {
	caller, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case models.RoleSuperAdmin:
		return s.collectUsersByRole(ctx, "", models.RolePartnerLead, models.RoleAnsar, models.RoleSeeker)

	case models.RolePartnerLead:
		users, err := s.collectUsersByRole(ctx, caller.OrganizationID, models.RoleAnsar, models.RoleSeeker)
		if err != nil {
			return nil, err
		}
		admins, err := s.Users.ListUsersByRole(ctx, models.RoleSuperAdmin, "")
		if err != nil {
			return nil, err
		}
		return append(users, admins...), nil

	case models.RoleAnsar:
		users, err := s.collectUsersByRole(ctx, caller.OrganizationID, models.RolePartnerLead)
		if err != nil {
			return nil, err
		}
		seekers, err := s.pairedSeekerUsers(ctx, caller)
		if err != nil {
			return nil, err
		}
		return append(users, seekers...), nil

	case models.RoleSeeker:
		return s.pairedAnsarUser(ctx, caller)

	default:
		return nil, fmt.Errorf("unknown role %q", caller.Role)
	}
}

func (s *InboxService) collectUsersByRole(ctx context.Context, organizationID string, roles ...string) ([]models.User, error) {
	var out []models.User
	for _, role := range roles {
		users, err := s.Users.ListUsersByRole(ctx, role, organizationID)
		if err != nil {
			return nil, err
		}
		out = append(out, users...)
	}
	return out, nil
}

// pairedSeekerUsers resolves the seekers currently paired with the calling
// ansar.
func (s *InboxService) pairedSeekerUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.AnsarsTable, models.AnsarEmailIndex,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: caller.Email},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query ansars by email: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	var ansar models.Ansar
	if err := attributevalue.UnmarshalMap(items[0], &ansar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ansar: %w", err)
	}

	pairings, err := s.Pairings.ListPairingsForAnsar(ctx, ansar.AnsarID)
	if err != nil {
		return nil, err
	}

	var out []models.User
	for _, pairing := range pairings {
		if pairing.Status != models.PairingStatusPendingIntro && pairing.Status != models.PairingStatusActive {
			continue
		}
		seeker, err := s.Seekers.GetSeeker(ctx, pairing.SeekerID)
		if err != nil || seeker.UserID == "" {
			continue
		}
		user, err := s.Users.GetUser(ctx, seeker.UserID)
		if err != nil {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}

// pairedAnsarUser resolves the one ansar the calling seeker is paired with.
func (s *InboxService) pairedAnsarUser(ctx context.Context, caller *models.User) ([]models.User, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.SeekersTable, models.SeekerEmailIndex,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: caller.Email},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query seekers by email: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	var seeker models.Seeker
	if err := attributevalue.UnmarshalMap(items[0], &seeker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seeker: %w", err)
	}
	if seeker.ActivePairingID == "" {
		return nil, nil
	}

	pairing, err := s.Pairings.GetPairing(ctx, seeker.ActivePairingID)
	if err != nil {
		if errors.Is(err, ErrPairingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	// A stale claim pointing at a finished pairing exposes nobody.
	if pairing.Status != models.PairingStatusPendingIntro && pairing.Status != models.PairingStatusActive {
		return nil, nil
	}

	ansar, err := s.Ansars.GetAnsar(ctx, pairing.AnsarID)
	if err != nil {
		if errors.Is(err, ErrAnsarNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if ansar.UserID == "" {
		return nil, nil
	}
	user, err := s.Users.GetUser(ctx, ansar.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []models.User{*user}, nil
}

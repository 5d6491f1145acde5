package services

import (
	"context"
	"testing"

	"wasl_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInboxService(db *mockDB) *InboxService {
	users := &UserService{Dynamo: db}
	notifications := &NotificationService{Dynamo: db}
	seekers := &SeekerService{Dynamo: db, Users: users, Notifications: notifications}
	ansars := &AnsarService{Dynamo: db, Users: users, Notifications: notifications}
	return &InboxService{
		Dynamo:  db,
		Users:   users,
		Seekers: seekers,
		Ansars:  ansars,
		Pairings: &PairingService{
			Dynamo:        db,
			Seekers:       seekers,
			Ansars:        ansars,
			Partners:      &PartnerService{Dynamo: db, Users: users},
			Notifications: notifications,
		},
	}
}

func TestDirectConversationID(t *testing.T) {
	assert.Equal(t, DirectConversationID("alice", "bob"), DirectConversationID("bob", "alice"))
	assert.Equal(t, "direct#alice#bob", DirectConversationID("bob", "alice"))
	assert.NotEqual(t, DirectConversationID("alice", "bob"), DirectConversationID("alice", "carol"))
}

func participantItems(t *testing.T, conversationID string, userIDs ...string) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, userID := range userIDs {
		items = append(items, mustMarshal(t, models.Participant{
			ConversationID: conversationID,
			UserID:         userID,
		}))
	}
	return items
}

func TestSendDirectMessageFirstContact(t *testing.T) {
	conversationID := DirectConversationID("user-a", "user-b")

	db := new(mockDB)
	db.On("PutItemIfAbsent", mock.Anything, models.ConversationsTable, mock.Anything, "conversationId").Return(nil)

	// Both participant rows are seeded at zero unread.
	db.On("BatchWriteItems", mock.Anything, models.ParticipantsTable, mock.MatchedBy(func(reqs []types.WriteRequest) bool {
		return len(reqs) == 2
	})).Return(nil)

	db.On("PutItem", mock.Anything, models.MessagesTable, mock.MatchedBy(func(item interface{}) bool {
		msg, ok := item.(models.Message)
		return ok && msg.ConversationID == conversationID && msg.SenderID == "user-a" && msg.Content == "salaam"
	})).Return(nil)

	db.On("UpdateItem", mock.Anything, models.ConversationsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	db.On("QueryItems", mock.Anything, models.ParticipantsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(participantItems(t, conversationID, "user-a", "user-b"), nil)

	// Only the recipient's unread counter is bumped.
	db.On("UpdateItem", mock.Anything, models.ParticipantsTable, "ADD unreadCount :one",
		mock.MatchedBy(func(key map[string]types.AttributeValue) bool {
			return attrString(key, "userId") == "user-b"
		}), mock.Anything, mock.Anything).Return(nil, nil).Once()

	svc := newInboxService(db)
	msg, err := svc.SendDirectMessage(context.Background(), "user-a", "user-b", "salaam")

	require.NoError(t, err)
	assert.Equal(t, conversationID, msg.ConversationID)
	db.AssertExpectations(t)
}

func TestSendDirectMessageReusesConversation(t *testing.T) {
	conversationID := DirectConversationID("user-a", "user-b")

	db := new(mockDB)
	// Conversation already exists: the conditional put loses and the
	// message lands in the existing conversation.
	db.On("PutItemIfAbsent", mock.Anything, models.ConversationsTable, mock.Anything, "conversationId").
		Return(ErrConditionalCheckFailed)

	db.On("PutItem", mock.Anything, models.MessagesTable, mock.Anything).Return(nil)
	db.On("UpdateItem", mock.Anything, models.ConversationsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.On("QueryItems", mock.Anything, models.ParticipantsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(participantItems(t, conversationID, "user-a", "user-b"), nil)
	db.On("UpdateItem", mock.Anything, models.ParticipantsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	svc := newInboxService(db)
	msg, err := svc.SendDirectMessage(context.Background(), "user-b", "user-a", "wa alaikum salaam")

	require.NoError(t, err)
	assert.Equal(t, conversationID, msg.ConversationID)
	// No participant rows are re-inserted for an existing conversation.
	db.AssertNotCalled(t, "BatchWriteItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendDirectMessageToSelf(t *testing.T) {
	db := new(mockDB)
	svc := newInboxService(db)

	_, err := svc.SendDirectMessage(context.Background(), "user-a", "user-a", "hi me")
	assert.Error(t, err)
	db.AssertNotCalled(t, "PutItemIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBroadcast(t *testing.T) {
	recipients := []models.User{
		{UserID: "sender", Role: models.RoleAnsar, Status: models.UserStatusActive},
		{UserID: "ansar-a", Role: models.RoleAnsar, Status: models.UserStatusActive},
		{UserID: "ansar-b", Role: models.RoleAnsar, Status: models.UserStatusActive},
	}
	items := make([]map[string]types.AttributeValue, 0, len(recipients))
	for _, u := range recipients {
		items = append(items, mustMarshal(t, u))
	}

	db := new(mockDB)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(items, nil)

	db.On("PutItem", mock.Anything, models.ConversationsTable, mock.MatchedBy(func(item interface{}) bool {
		conversation, ok := item.(models.Conversation)
		return ok && conversation.Type == models.ConversationTypeBroadcast && conversation.CreatedBy == "sender"
	})).Return(nil)

	// Sender plus the two recipients, sender excluded from the recipient set.
	db.On("BatchWriteItems", mock.Anything, models.ParticipantsTable, mock.MatchedBy(func(reqs []types.WriteRequest) bool {
		return len(reqs) == 3
	})).Return(nil)

	db.On("PutItem", mock.Anything, models.MessagesTable, mock.Anything).Return(nil)
	db.On("UpdateItem", mock.Anything, models.ConversationsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.On("QueryItems", mock.Anything, models.ParticipantsTable, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(participantItems(t, "broadcast", "sender", "ansar-a", "ansar-b"), nil)
	db.On("UpdateItem", mock.Anything, models.ParticipantsTable, "ADD unreadCount :one",
		mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Twice()

	svc := newInboxService(db)
	conversation, err := svc.Broadcast(context.Background(), BroadcastInput{
		SenderID:      "sender",
		RecipientRole: models.RoleAnsar,
		Subject:       "Friday gathering",
		Content:       "Reminder for this week",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ConversationTypeBroadcast, conversation.Type)
	db.AssertExpectations(t)
}

func TestBroadcastWithNoRecipients(t *testing.T) {
	// The sender is the only user with the role, so there is nobody to reach.
	sender := models.User{UserID: "sender", Role: models.RolePartnerLead, Status: models.UserStatusActive}

	db := new(mockDB)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]map[string]types.AttributeValue{mustMarshal(t, sender)}, nil)

	svc := newInboxService(db)
	_, err := svc.Broadcast(context.Background(), BroadcastInput{
		SenderID:      "sender",
		RecipientRole: models.RolePartnerLead,
		Content:       "anyone there?",
	})

	assert.ErrorIs(t, err, ErrNoRecipients)
	db.AssertNotCalled(t, "PutItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkAsRead(t *testing.T) {
	participant := models.Participant{ConversationID: "conv-1", UserID: "user-a", UnreadCount: 4}

	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.ParticipantsTable, mock.Anything).Return(mustMarshal(t, participant), nil)
	db.On("UpdateItem", mock.Anything, models.ParticipantsTable, "SET unreadCount = :zero",
		mock.MatchedBy(func(key map[string]types.AttributeValue) bool {
			return attrString(key, "userId") == "user-a" && attrString(key, "conversationId") == "conv-1"
		}), mock.Anything, mock.Anything).Return(nil, nil)

	svc := newInboxService(db)
	err := svc.MarkAsRead(context.Background(), "conv-1", "user-a")

	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestMarkAsReadRequiresMembership(t *testing.T) {
	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.ParticipantsTable, mock.Anything).Return(nil, ErrItemNotFound)

	svc := newInboxService(db)
	err := svc.MarkAsRead(context.Background(), "conv-1", "stranger")

	assert.ErrorIs(t, err, ErrNotAParticipant)
	db.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func userItems(t *testing.T, users ...models.User) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(users))
	for _, u := range users {
		items = append(items, mustMarshal(t, u))
	}
	return items
}

func roleQuery(role string) interface{} {
	return mock.MatchedBy(func(values map[string]types.AttributeValue) bool {
		return attrString(values, ":role") == role
	})
}

func userKey(userID string) interface{} {
	return mock.MatchedBy(func(key map[string]types.AttributeValue) bool {
		return attrString(key, "userId") == userID
	})
}

func TestListMessageableUsersSuperAdmin(t *testing.T) {
	admin := models.User{UserID: "admin-1", Role: models.RoleSuperAdmin, Status: models.UserStatusActive}
	lead := models.User{UserID: "lead-1", Role: models.RolePartnerLead, Status: models.UserStatusActive, OrganizationID: "org-1"}
	ansarUser := models.User{UserID: "ansar-u1", Role: models.RoleAnsar, Status: models.UserStatusActive, OrganizationID: "org-1"}
	seekerUser := models.User{UserID: "seeker-u1", Role: models.RoleSeeker, Status: models.UserStatusActive}

	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("admin-1")).Return(mustMarshal(t, admin), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RolePartnerLead), mock.Anything, mock.Anything).Return(userItems(t, lead), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RoleAnsar), mock.Anything, mock.Anything).Return(userItems(t, ansarUser), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RoleSeeker), mock.Anything, mock.Anything).Return(userItems(t, seekerUser), nil)

	svc := newInboxService(db)
	users, err := svc.ListMessageableUsers(context.Background(), "admin-1")

	require.NoError(t, err)
	require.Len(t, users, 3)
}

func TestListMessageableUsersPartnerLead(t *testing.T) {
	lead := models.User{UserID: "lead-1", Role: models.RolePartnerLead, Status: models.UserStatusActive, OrganizationID: "org-1"}
	ownAnsar := models.User{UserID: "ansar-u1", Role: models.RoleAnsar, Status: models.UserStatusActive, OrganizationID: "org-1"}
	otherOrgAnsar := models.User{UserID: "ansar-u2", Role: models.RoleAnsar, Status: models.UserStatusActive, OrganizationID: "org-2"}
	ownSeeker := models.User{UserID: "seeker-u1", Role: models.RoleSeeker, Status: models.UserStatusActive, OrganizationID: "org-1"}
	admin := models.User{UserID: "admin-1", Role: models.RoleSuperAdmin, Status: models.UserStatusActive}

	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("lead-1")).Return(mustMarshal(t, lead), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RoleAnsar), mock.Anything, mock.Anything).Return(userItems(t, ownAnsar, otherOrgAnsar), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RoleSeeker), mock.Anything, mock.Anything).Return(userItems(t, ownSeeker), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RoleSuperAdmin), mock.Anything, mock.Anything).Return(userItems(t, admin), nil)

	svc := newInboxService(db)
	users, err := svc.ListMessageableUsers(context.Background(), "lead-1")

	require.NoError(t, err)
	require.Len(t, users, 3)
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.UserID)
	}
	assert.ElementsMatch(t, []string{"ansar-u1", "seeker-u1", "admin-1"}, ids)
}

func TestListMessageableUsersAnsar(t *testing.T) {
	caller := models.User{UserID: "user-omar", Role: models.RoleAnsar, Email: "omar@example.com", Status: models.UserStatusActive, OrganizationID: "org-1"}
	lead := models.User{UserID: "lead-1", Role: models.RolePartnerLead, Status: models.UserStatusActive, OrganizationID: "org-1"}
	ansar := models.Ansar{AnsarID: "ansar-1", Email: "omar@example.com", Status: models.AnsarStatusActive}
	pairedSeeker := models.Seeker{SeekerID: "seeker-1", UserID: "user-s1", Status: models.SeekerStatusActive}
	seekerUser := models.User{UserID: "user-s1", Role: models.RoleSeeker, Status: models.UserStatusActive}
	pairings := []models.Pairing{
		{PairingID: "pairing-1", SeekerID: "seeker-1", AnsarID: "ansar-1", Status: models.PairingStatusActive},
		{PairingID: "pairing-2", SeekerID: "seeker-2", AnsarID: "ansar-1", Status: models.PairingStatusEnded},
	}
	pairingItems := make([]map[string]types.AttributeValue, 0, len(pairings))
	for _, p := range pairings {
		pairingItems = append(pairingItems, mustMarshal(t, p))
	}

	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("user-omar")).Return(mustMarshal(t, caller), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.UsersTable, models.UserRoleIndex,
		mock.Anything, roleQuery(models.RolePartnerLead), mock.Anything, mock.Anything).Return(userItems(t, lead), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.AnsarsTable, models.AnsarEmailIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]map[string]types.AttributeValue{mustMarshal(t, ansar)}, nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.PairingsTable, models.PairingAnsarIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(pairingItems, nil)

	// Only the seeker from the active pairing is resolved.
	db.On("GetItem", mock.Anything, models.SeekersTable,
		mock.MatchedBy(func(key map[string]types.AttributeValue) bool {
			return attrString(key, "seekerId") == "seeker-1"
		})).Return(mustMarshal(t, pairedSeeker), nil)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("user-s1")).Return(mustMarshal(t, seekerUser), nil)

	svc := newInboxService(db)
	users, err := svc.ListMessageableUsers(context.Background(), "user-omar")

	require.NoError(t, err)
	require.Len(t, users, 2)
	ids := []string{users[0].UserID, users[1].UserID}
	assert.ElementsMatch(t, []string{"lead-1", "user-s1"}, ids)
}

func TestListMessageableUsersSeeker(t *testing.T) {
	caller := models.User{UserID: "user-amina", Role: models.RoleSeeker, Email: "amina@example.com", Status: models.UserStatusActive}
	seeker := models.Seeker{SeekerID: "seeker-1", UserID: "user-amina", Email: "amina@example.com", ActivePairingID: "pairing-1"}
	pairing := models.Pairing{PairingID: "pairing-1", SeekerID: "seeker-1", AnsarID: "ansar-1", Status: models.PairingStatusActive}
	ansar := models.Ansar{AnsarID: "ansar-1", UserID: "user-omar", Status: models.AnsarStatusActive}
	ansarUser := models.User{UserID: "user-omar", Role: models.RoleAnsar, Status: models.UserStatusActive}

	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("user-amina")).Return(mustMarshal(t, caller), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.SeekersTable, models.SeekerEmailIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]map[string]types.AttributeValue{mustMarshal(t, seeker)}, nil)
	db.On("GetItem", mock.Anything, models.PairingsTable, mock.Anything).Return(mustMarshal(t, pairing), nil)
	db.On("GetItem", mock.Anything, models.AnsarsTable, mock.Anything).Return(mustMarshal(t, ansar), nil)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("user-omar")).Return(mustMarshal(t, ansarUser), nil)

	svc := newInboxService(db)
	users, err := svc.ListMessageableUsers(context.Background(), "user-amina")

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user-omar", users[0].UserID)
}

func TestListMessageableUsersSeekerWithFinishedPairing(t *testing.T) {
	// A claim pointing at a pairing that is no longer pending_intro/active
	// exposes nobody.
	caller := models.User{UserID: "user-amina", Role: models.RoleSeeker, Email: "amina@example.com", Status: models.UserStatusActive}
	seeker := models.Seeker{SeekerID: "seeker-1", Email: "amina@example.com", ActivePairingID: "pairing-1"}
	pairing := models.Pairing{PairingID: "pairing-1", SeekerID: "seeker-1", AnsarID: "ansar-1", Status: models.PairingStatusCompleted}

	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.UsersTable, userKey("user-amina")).Return(mustMarshal(t, caller), nil)
	db.On("QueryItemsWithIndex", mock.Anything, models.SeekersTable, models.SeekerEmailIndex,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]map[string]types.AttributeValue{mustMarshal(t, seeker)}, nil)
	db.On("GetItem", mock.Anything, models.PairingsTable, mock.Anything).Return(mustMarshal(t, pairing), nil)

	svc := newInboxService(db)
	users, err := svc.ListMessageableUsers(context.Background(), "user-amina")

	require.NoError(t, err)
	assert.Empty(t, users)
	db.AssertNotCalled(t, "GetItem", mock.Anything, models.AnsarsTable, mock.Anything)
}

func TestListMessagesRequiresMembership(t *testing.T) {
	db := new(mockDB)
	db.On("GetItem", mock.Anything, models.ParticipantsTable, mock.Anything).Return(nil, ErrItemNotFound)

	svc := newInboxService(db)
	_, err := svc.ListMessages(context.Background(), "conv-1", "stranger", 20)

	assert.ErrorIs(t, err, ErrNotAParticipant)
}

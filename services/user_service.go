package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wasl_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// UserService manages messaging identities and the link between placeholder
// accounts and the external auth provider.
type UserService struct {
	Dynamo DB
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUserByAuthID looks a user up through the authId GSI
func (s *UserService) GetUserByAuthID(ctx context.Context, authID string) (*models.User, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UserAuthIndex,
		"authId = :authId",
		map[string]types.AttributeValue{
			":authId": &types.AttributeValueMemberS{Value: authID},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by authId: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail looks a user up through the email GSI
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UserEmailIndex,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by email: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// CreatePlaceholderUser inserts a user row with a synthetic "pending_" auth
// id. Intake handlers call this so a record can participate in the inbox
// before its owner ever signs in.
func (s *UserService) CreatePlaceholderUser(ctx context.Context, email, fullName, phone, role, organizationID string) (*models.User, error) {
	now := time.Now().Format(time.RFC3339)
	user := models.User{
		UserID:         uuid.New().String(),
		AuthID:         models.PendingAuthPrefix + uuid.New().String(),
		Email:          email,
		FullName:       fullName,
		PhoneNumber:    phone,
		Role:           role,
		OrganizationID: organizationID,
		Status:         models.UserStatusPending,
		CreatedAt:      now,
		LastUpdated:    now,
	}

	if err := s.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, fmt.Errorf("failed to create placeholder user: %w", err)
	}
	return &user, nil
}

// SyncSessionInput carries the identity the auth provider established.
type SyncSessionInput struct {
	AuthID   string `json:"authId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
}

// SyncSession is an idempotent upsert keyed by the external auth id, called
// once per session establishment. A placeholder account matching the email is
// linked in place so its userId (and all references to it) stays stable.
func (s *UserService) SyncSession(ctx context.Context, in SyncSessionInput) (*models.User, error) {
	if in.AuthID == "" || in.Email == "" {
		return nil, errors.New("authId and email are required")
	}

	existing, err := s.GetUserByAuthID(ctx, in.AuthID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// Link a pending placeholder by email if one exists.
	byEmail, err := s.GetUserByEmail(ctx, in.Email)
	if err == nil && byEmail.IsPlaceholder() {
		log.Printf("🔗 Linking placeholder user %s to auth id", byEmail.UserID)
		key := map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: byEmail.UserID},
		}
		attrs, err := s.Dynamo.UpdateItem(ctx, models.UsersTable,
			"SET authId = :authId, #st = :active, lastUpdated = :now",
			key,
			map[string]types.AttributeValue{
				":authId": &types.AttributeValueMemberS{Value: in.AuthID},
				":active": &types.AttributeValueMemberS{Value: models.UserStatusActive},
				":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
			},
			map[string]string{"#st": "status"})
		if err != nil {
			return nil, fmt.Errorf("failed to link placeholder user: %w", err)
		}
		var linked models.User
		if err := attributevalue.UnmarshalMap(attrs, &linked); err != nil {
			return nil, fmt.Errorf("failed to unmarshal linked user: %w", err)
		}
		return &linked, nil
	}
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleSeeker
	}

	now := time.Now().Format(time.RFC3339)
	user := models.User{
		UserID:      uuid.New().String(),
		AuthID:      in.AuthID,
		Email:       in.Email,
		FullName:    in.FullName,
		Role:        role,
		Status:      models.UserStatusActive,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := s.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// ListUsersByRole fetches active users with the given role, optionally scoped
// to an organization. The sender exclusion for broadcasts happens in the
// inbox service.
func (s *UserService) ListUsersByRole(ctx context.Context, role, organizationID string) ([]models.User, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UserRoleIndex,
		"#role = :role",
		map[string]types.AttributeValue{
			":role": &types.AttributeValueMemberS{Value: role},
		},
		map[string]string{"#role": "role"}, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}

	var users []models.User
	if err := attributevalue.UnmarshalListOfMaps(items, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}

	filtered := users[:0]
	for _, u := range users {
		if u.Status != models.UserStatusActive {
			continue
		}
		if organizationID != "" && u.OrganizationID != organizationID {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered, nil
}

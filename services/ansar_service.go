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

// AnsarService handles volunteer mentor applications and approvals.
type AnsarService struct {
	Dynamo        DB
	Users         *UserService
	Notifications *NotificationService
}

// CreateAnsarInput is the volunteer application payload.
type CreateAnsarInput struct {
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`
	City         string   `json:"city,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

// CreateAnsar records a volunteer application in pending status with a
// placeholder user.
func (s *AnsarService) CreateAnsar(ctx context.Context, in CreateAnsarInput) (*models.Ansar, error) {
	if in.FullName == "" || in.Email == "" {
		return nil, errors.New("fullName and email are required")
	}

	existing, err := s.Dynamo.QueryItemsWithIndex(ctx, models.AnsarsTable, models.AnsarEmailIndex,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: in.Email},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing ansar: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	user, err := s.Users.CreatePlaceholderUser(ctx, in.Email, in.FullName, in.PhoneNumber, models.RoleAnsar, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	ansar := models.Ansar{
		AnsarID:      uuid.New().String(),
		UserID:       user.UserID,
		FullName:     in.FullName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		City:         in.City,
		Languages:    in.Languages,
		Skills:       in.Skills,
		Availability: in.Availability,
		Status:       models.AnsarStatusPending,
		CreatedAt:    now,
		LastUpdated:  now,
	}

	if err := s.Dynamo.PutItem(ctx, models.AnsarsTable, ansar); err != nil {
		return nil, fmt.Errorf("failed to create ansar: %w", err)
	}

	log.Printf("✅ Created ansar application %s (%s)", ansar.AnsarID, ansar.Email)
	return &ansar, nil
}

// GetAnsar retrieves an ansar by id
func (s *AnsarService) GetAnsar(ctx context.Context, ansarID string) (*models.Ansar, error) {
	key := map[string]types.AttributeValue{
		"ansarId": &types.AttributeValueMemberS{Value: ansarID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.AnsarsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrAnsarNotFound
		}
		return nil, err
	}

	var ansar models.Ansar
	if err := attributevalue.UnmarshalMap(item, &ansar); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ansar: %w", err)
	}
	return &ansar, nil
}

// ApproveAnsar moves a pending application to approved, assigns the
// organization, and notifies the applicant by email.
func (s *AnsarService) ApproveAnsar(ctx context.Context, ansarID, organizationID string) (*models.Ansar, error) {
	ansar, err := s.GetAnsar(ctx, ansarID)
	if err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		"ansarId": &types.AttributeValueMemberS{Value: ansarID},
	}
	values := map[string]types.AttributeValue{
		":approved": &types.AttributeValueMemberS{Value: models.AnsarStatusApproved},
		":now":      &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
	}
	updateExpression := "SET #st = :approved, lastUpdated = :now"
	if organizationID != "" {
		updateExpression = "SET #st = :approved, organizationId = :org, lastUpdated = :now"
		values[":org"] = &types.AttributeValueMemberS{Value: organizationID}
	}

	attrs, err := s.Dynamo.UpdateItem(ctx, models.AnsarsTable, updateExpression, key, values,
		map[string]string{"#st": "status"})
	if err != nil {
		return nil, err
	}

	// Keep the messaging identity's organization in sync.
	if ansar.UserID != "" && organizationID != "" {
		userKey := map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: ansar.UserID},
		}
		if _, err := s.Dynamo.UpdateItem(ctx, models.UsersTable,
			"SET organizationId = :org, lastUpdated = :now",
			userKey,
			map[string]types.AttributeValue{
				":org": &types.AttributeValueMemberS{Value: organizationID},
				":now": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
			}, nil); err != nil {
			log.Printf("⚠️ Failed to update organization on user %s: %v", ansar.UserID, err)
		}
	}

	if err := s.Notifications.Enqueue(ctx, models.ChannelEmail, ansar.Email, TemplateAnsarApprovedEmail, map[string]string{
		"ansarName": ansar.FullName,
	}); err != nil {
		log.Printf("⚠️ Failed to enqueue approval email for ansar %s: %v", ansarID, err)
	}

	var updated models.Ansar
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ansar: %w", err)
	}
	return &updated, nil
}

// SetAnsarStatus patches the ansar status directly (active, inactive, ...).
func (s *AnsarService) SetAnsarStatus(ctx context.Context, ansarID, status string) error {
	key := map[string]types.AttributeValue{
		"ansarId": &types.AttributeValueMemberS{Value: ansarID},
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.AnsarsTable,
		"SET #st = :status, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"})
	return err
}

// ListAnsars returns all ansars, optionally filtered by organization.
func (s *AnsarService) ListAnsars(ctx context.Context, organizationID string) ([]models.Ansar, error) {
	if organizationID != "" {
		items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.AnsarsTable, models.AnsarOrgIndex,
			"organizationId = :org",
			map[string]types.AttributeValue{
				":org": &types.AttributeValueMemberS{Value: organizationID},
			}, nil, 500)
		if err != nil {
			return nil, fmt.Errorf("failed to query ansars by organization: %w", err)
		}
		var ansars []models.Ansar
		if err := attributevalue.UnmarshalListOfMaps(items, &ansars); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ansars: %w", err)
		}
		return ansars, nil
	}

	var ansars []models.Ansar
	if err := s.Dynamo.ScanWithFilter(ctx, models.AnsarsTable, nil, nil, &ansars); err != nil {
		return nil, err
	}
	return ansars, nil
}

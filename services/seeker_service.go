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

// SeekerService handles intake and triage of people requesting support.
type SeekerService struct {
	Dynamo        DB
	Users         *UserService
	Notifications *NotificationService
}

// CreateSeekerInput is the intake form payload.
type CreateSeekerInput struct {
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`
	City         string   `json:"city,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	Needs        []string `json:"needs,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	ConsentGiven bool     `json:"consentGiven"`
}

// CreateSeeker records an intake submission. The seeker starts in
// awaiting_outreach, gets a placeholder user for the inbox, and receives a
// welcome email through the outbox.
func (s *SeekerService) CreateSeeker(ctx context.Context, in CreateSeekerInput) (*models.Seeker, error) {
	if in.FullName == "" || in.Email == "" {
		return nil, errors.New("fullName and email are required")
	}
	if !in.ConsentGiven {
		return nil, ErrConsentRequired
	}

	existing, err := s.Dynamo.QueryItemsWithIndex(ctx, models.SeekersTable, models.SeekerEmailIndex,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: in.Email},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing seeker: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	user, err := s.Users.CreatePlaceholderUser(ctx, in.Email, in.FullName, in.PhoneNumber, models.RoleSeeker, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	seeker := models.Seeker{
		SeekerID:     uuid.New().String(),
		UserID:       user.UserID,
		FullName:     in.FullName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		City:         in.City,
		Languages:    in.Languages,
		Needs:        in.Needs,
		Notes:        in.Notes,
		ConsentGiven: in.ConsentGiven,
		Status:       models.SeekerStatusAwaitingOutreach,
		CreatedAt:    now,
		LastUpdated:  now,
	}

	if err := s.Dynamo.PutItem(ctx, models.SeekersTable, seeker); err != nil {
		return nil, fmt.Errorf("failed to create seeker: %w", err)
	}

	if err := s.Notifications.Enqueue(ctx, models.ChannelEmail, seeker.Email, TemplateSeekerWelcomeEmail, map[string]string{
		"seekerName": seeker.FullName,
	}); err != nil {
		// The intake already committed; the welcome email is best effort.
		log.Printf("⚠️ Failed to enqueue welcome email for seeker %s: %v", seeker.SeekerID, err)
	}

	log.Printf("✅ Created seeker %s (%s)", seeker.SeekerID, seeker.Email)
	return &seeker, nil
}

// GetSeeker retrieves a seeker by id
func (s *SeekerService) GetSeeker(ctx context.Context, seekerID string) (*models.Seeker, error) {
	key := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: seekerID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.SeekersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrSeekerNotFound
		}
		return nil, err
	}

	var seeker models.Seeker
	if err := attributevalue.UnmarshalMap(item, &seeker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seeker: %w", err)
	}
	return &seeker, nil
}

// TriageSeeker moves a seeker out of awaiting_outreach, optionally assigning
// an organization.
func (s *SeekerService) TriageSeeker(ctx context.Context, seekerID, organizationID string) (*models.Seeker, error) {
	current, err := s.GetSeeker(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	key := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: seekerID},
	}
	updateExpression := "SET #st = :triaged, lastUpdated = :now"
	values := map[string]types.AttributeValue{
		":triaged": &types.AttributeValueMemberS{Value: models.SeekerStatusTriaged},
		":now":     &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
	}
	if organizationID != "" {
		updateExpression = "SET #st = :triaged, organizationId = :org, lastUpdated = :now"
		values[":org"] = &types.AttributeValueMemberS{Value: organizationID}
	}

	attrs, err := s.Dynamo.UpdateItem(ctx, models.SeekersTable, updateExpression, key, values,
		map[string]string{"#st": "status"})
	if err != nil {
		return nil, err
	}

	// Keep the messaging identity's organization in sync so org-scoped
	// recipient lookups and broadcasts reach the seeker.
	if current.UserID != "" && organizationID != "" {
		userKey := map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: current.UserID},
		}
		if _, err := s.Dynamo.UpdateItem(ctx, models.UsersTable,
			"SET organizationId = :org, lastUpdated = :now",
			userKey,
			map[string]types.AttributeValue{
				":org": &types.AttributeValueMemberS{Value: organizationID},
				":now": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
			}, nil); err != nil {
			log.Printf("⚠️ Failed to update organization on user %s: %v", current.UserID, err)
		}
	}

	var seeker models.Seeker
	if err := attributevalue.UnmarshalMap(attrs, &seeker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seeker: %w", err)
	}
	return &seeker, nil
}

// ListSeekers returns all seekers, optionally filtered by organization.
func (s *SeekerService) ListSeekers(ctx context.Context, organizationID string) ([]models.Seeker, error) {
	if organizationID != "" {
		items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.SeekersTable, models.SeekerOrgIndex,
			"organizationId = :org",
			map[string]types.AttributeValue{
				":org": &types.AttributeValueMemberS{Value: organizationID},
			}, nil, 500)
		if err != nil {
			return nil, fmt.Errorf("failed to query seekers by organization: %w", err)
		}
		var seekers []models.Seeker
		if err := attributevalue.UnmarshalListOfMaps(items, &seekers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seekers: %w", err)
		}
		return seekers, nil
	}

	var seekers []models.Seeker
	if err := s.Dynamo.ScanWithFilter(ctx, models.SeekersTable, nil, nil, &seekers); err != nil {
		return nil, err
	}
	return seekers, nil
}

// AttachDocument stores the S3 key of an uploaded intake document.
func (s *SeekerService) AttachDocument(ctx context.Context, seekerID, documentKey string) error {
	if _, err := s.GetSeeker(ctx, seekerID); err != nil {
		return err
	}
	key := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: seekerID},
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.SeekersTable,
		"SET documentKey = :key, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: documentKey},
			":now": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		}, nil)
	return err
}

// DeleteSeeker hard-deletes a seeker record. Admin action only; seekers are
// never deleted through any other path.
func (s *SeekerService) DeleteSeeker(ctx context.Context, seekerID string) error {
	key := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: seekerID},
	}
	return s.Dynamo.DeleteItem(ctx, models.SeekersTable, key)
}

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

// PartnerService handles community-hub applications. Approval turns a
// partner into an Organization.
type PartnerService struct {
	Dynamo DB
	Users  *UserService
}

// HubLevel derives the 1-5 hub score from the self-reported infrastructure
// checklist.
func HubLevel(c models.InfrastructureChecklist) int {
	count := 0
	for _, item := range []bool{
		c.HasPrayerSpace,
		c.HasClassrooms,
		c.HasSocialHall,
		c.HasFullTimeStaff,
		c.HasWeekendSchool,
		c.HasYouthPrograms,
		c.HasSocialServices,
		c.HasParking,
	} {
		if item {
			count++
		}
	}

	switch {
	case count >= 8:
		return 5
	case count >= 6:
		return 4
	case count >= 4:
		return 3
	case count >= 2:
		return 2
	default:
		return 1
	}
}

// CreatePartnerInput is the hub application payload.
type CreatePartnerInput struct {
	OrganizationName string                         `json:"organizationName"`
	ContactName      string                         `json:"contactName"`
	ContactEmail     string                         `json:"contactEmail"`
	ContactPhone     string                         `json:"contactPhone,omitempty"`
	Address          string                         `json:"address,omitempty"`
	City             string                         `json:"city,omitempty"`
	Checklist        models.InfrastructureChecklist `json:"checklist"`
}

// CreatePartner records a hub application in pending status with its derived
// hub level.
func (s *PartnerService) CreatePartner(ctx context.Context, in CreatePartnerInput) (*models.Partner, error) {
	if in.OrganizationName == "" || in.ContactName == "" || in.ContactEmail == "" {
		return nil, errors.New("organizationName, contactName and contactEmail are required")
	}

	existing, err := s.Dynamo.QueryItemsWithIndex(ctx, models.PartnersTable, models.PartnerEmailIndex,
		"contactEmail = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: in.ContactEmail},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing partner: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	now := time.Now().Format(time.RFC3339)
	partner := models.Partner{
		PartnerID:        uuid.New().String(),
		OrganizationName: in.OrganizationName,
		ContactName:      in.ContactName,
		ContactEmail:     in.ContactEmail,
		ContactPhone:     in.ContactPhone,
		Address:          in.Address,
		City:             in.City,
		Checklist:        in.Checklist,
		HubLevel:         HubLevel(in.Checklist),
		Status:           models.PartnerStatusPending,
		CreatedAt:        now,
		LastUpdated:      now,
	}

	if err := s.Dynamo.PutItem(ctx, models.PartnersTable, partner); err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	log.Printf("✅ Created partner application %s (hub level %d)", partner.PartnerID, partner.HubLevel)
	return &partner, nil
}

// GetPartner retrieves a partner application by id
func (s *PartnerService) GetPartner(ctx context.Context, partnerID string) (*models.Partner, error) {
	key := map[string]types.AttributeValue{
		"partnerId": &types.AttributeValueMemberS{Value: partnerID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.PartnersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	var partner models.Partner
	if err := attributevalue.UnmarshalMap(item, &partner); err != nil {
		return nil, fmt.Errorf("failed to unmarshal partner: %w", err)
	}
	return &partner, nil
}

// ApprovePartner creates the Organization from an approved application,
// together with a partner_lead placeholder user for the contact.
func (s *PartnerService) ApprovePartner(ctx context.Context, partnerID string) (*models.Organization, error) {
	partner, err := s.GetPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.Status == models.PartnerStatusApproved && partner.OrganizationID != "" {
		return nil, fmt.Errorf("partner %s is already approved", partnerID)
	}

	orgID := uuid.New().String()
	lead, err := s.Users.CreatePlaceholderUser(ctx, partner.ContactEmail, partner.ContactName,
		partner.ContactPhone, models.RolePartnerLead, orgID)
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	org := models.Organization{
		OrganizationID: orgID,
		Name:           partner.OrganizationName,
		Address:        partner.Address,
		City:           partner.City,
		HubLevel:       partner.HubLevel,
		PartnerID:      partner.PartnerID,
		LeadUserID:     lead.UserID,
		CreatedAt:      now,
	}
	if err := s.Dynamo.PutItem(ctx, models.OrganizationsTable, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	key := map[string]types.AttributeValue{
		"partnerId": &types.AttributeValueMemberS{Value: partnerID},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.PartnersTable,
		"SET #st = :approved, organizationId = :org, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":approved": &types.AttributeValueMemberS{Value: models.PartnerStatusApproved},
			":org":      &types.AttributeValueMemberS{Value: orgID},
			":now":      &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{"#st": "status"}); err != nil {
		return nil, err
	}

	log.Printf("✅ Approved partner %s as organization %s", partnerID, orgID)
	return &org, nil
}

// RejectPartner marks an application rejected.
func (s *PartnerService) RejectPartner(ctx context.Context, partnerID string) error {
	if _, err := s.GetPartner(ctx, partnerID); err != nil {
		return err
	}
	key := map[string]types.AttributeValue{
		"partnerId": &types.AttributeValueMemberS{Value: partnerID},
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.PartnersTable,
		"SET #st = :rejected, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":rejected": &types.AttributeValueMemberS{Value: models.PartnerStatusRejected},
			":now":      &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"})
	return err
}

// GetOrganization retrieves an organization by id
func (s *PartnerService) GetOrganization(ctx context.Context, organizationID string) (*models.Organization, error) {
	key := map[string]types.AttributeValue{
		"organizationId": &types.AttributeValueMemberS{Value: organizationID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.OrganizationsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("organization %s not found", organizationID)
		}
		return nil, err
	}

	var org models.Organization
	if err := attributevalue.UnmarshalMap(item, &org); err != nil {
		return nil, fmt.Errorf("failed to unmarshal organization: %w", err)
	}
	return &org, nil
}

// ListOrganizations returns all organizations.
func (s *PartnerService) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := s.Dynamo.ScanWithFilter(ctx, models.OrganizationsTable, nil, nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

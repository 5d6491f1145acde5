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

// PairingService pairs seekers with ansars and drives the pairing lifecycle.
type PairingService struct {
	Dynamo        DB
	Seekers       *SeekerService
	Ansars        *AnsarService
	Partners      *PartnerService
	Notifications *NotificationService
}

// CreatePairingInput identifies who is being paired and by whom.
type CreatePairingInput struct {
	SeekerID       string `json:"seekerId"`
	AnsarID        string `json:"ansarId"`
	OrganizationID string `json:"organizationId"`
	CreatedBy      string `json:"createdBy,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// CreatePairing validates its preconditions, claims the seeker with a
// conditional write, then inserts the pairing and patches both parties.
// The claim on activePairingId is what actually guarantees at most one
// pending_intro/active pairing per seeker; the reads before it only exist to
// produce descriptive errors.
func (s *PairingService) CreatePairing(ctx context.Context, in CreatePairingInput) (*models.Pairing, error) {
	if in.SeekerID == "" || in.AnsarID == "" {
		return nil, errors.New("seekerId and ansarId are required")
	}

	seeker, err := s.Seekers.GetSeeker(ctx, in.SeekerID)
	if err != nil {
		return nil, err
	}

	ansar, err := s.Ansars.GetAnsar(ctx, in.AnsarID)
	if err != nil {
		return nil, err
	}
	if ansar.Status != models.AnsarStatusApproved && ansar.Status != models.AnsarStatusActive {
		return nil, ErrAnsarNotApproved
	}

	if seeker.ActivePairingID != "" {
		return nil, ErrSeekerAlreadyPaired
	}

	pairingID := uuid.New().String()
	now := time.Now().Format(time.RFC3339)

	// Claim the seeker. A concurrent pairing request loses this write and
	// gets the same "already paired" error with nothing written.
	seekerKey := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: in.SeekerID},
	}
	_, err = s.Dynamo.UpdateItemWithCondition(ctx, models.SeekersTable,
		"SET activePairingId = :pid, #st = :connected, lastUpdated = :now",
		"attribute_not_exists(activePairingId)",
		seekerKey,
		map[string]types.AttributeValue{
			":pid":       &types.AttributeValueMemberS{Value: pairingID},
			":connected": &types.AttributeValueMemberS{Value: models.SeekerStatusConnected},
			":now":       &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{"#st": "status"})
	if err != nil {
		if errors.Is(err, ErrConditionalCheckFailed) {
			return nil, ErrSeekerAlreadyPaired
		}
		return nil, err
	}

	pairing := models.Pairing{
		PairingID:      pairingID,
		SeekerID:       in.SeekerID,
		AnsarID:        in.AnsarID,
		OrganizationID: in.OrganizationID,
		Status:         models.PairingStatusPendingIntro,
		Notes:          in.Notes,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      now,
		LastUpdated:    now,
	}
	if err := s.Dynamo.PutItem(ctx, models.PairingsTable, pairing); err != nil {
		return nil, fmt.Errorf("failed to create pairing: %w", err)
	}

	if err := s.Ansars.SetAnsarStatus(ctx, in.AnsarID, models.AnsarStatusActive); err != nil {
		return nil, err
	}

	organizationName := ""
	if in.OrganizationID != "" {
		if org, err := s.Partners.GetOrganization(ctx, in.OrganizationID); err == nil {
			organizationName = org.Name
		}
	}

	params := map[string]string{
		"seekerName":       seeker.FullName,
		"ansarName":        ansar.FullName,
		"organizationName": organizationName,
	}
	if err := s.Notifications.Enqueue(ctx, models.ChannelSMS, seeker.PhoneNumber, TemplatePairingIntroSMS, params); err != nil {
		log.Printf("⚠️ Failed to enqueue pairing SMS for seeker %s: %v", in.SeekerID, err)
	}
	if err := s.Notifications.Enqueue(ctx, models.ChannelEmail, seeker.Email, TemplatePairingIntroEmail, params); err != nil {
		log.Printf("⚠️ Failed to enqueue pairing email for seeker %s: %v", in.SeekerID, err)
	}

	log.Printf("✅ Paired seeker %s with ansar %s (pairing %s)", in.SeekerID, in.AnsarID, pairingID)
	return &pairing, nil
}

// GetPairing retrieves a pairing by id
func (s *PairingService) GetPairing(ctx context.Context, pairingID string) (*models.Pairing, error) {
	key := map[string]types.AttributeValue{
		"pairingId": &types.AttributeValueMemberS{Value: pairingID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.PairingsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrPairingNotFound
		}
		return nil, err
	}

	var pairing models.Pairing
	if err := attributevalue.UnmarshalMap(item, &pairing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pairing: %w", err)
	}
	return &pairing, nil
}

// ConfirmIntro moves pending_intro to active once the introduction happened,
// and activates the seeker.
func (s *PairingService) ConfirmIntro(ctx context.Context, pairingID string) (*models.Pairing, error) {
	pairing, err := s.GetPairing(ctx, pairingID)
	if err != nil {
		return nil, err
	}
	if pairing.Status != models.PairingStatusPendingIntro {
		return nil, fmt.Errorf("pairing %s is %s, expected %s", pairingID, pairing.Status, models.PairingStatusPendingIntro)
	}

	if err := s.setPairingStatus(ctx, pairingID, models.PairingStatusActive); err != nil {
		return nil, err
	}

	seekerKey := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: pairing.SeekerID},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.SeekersTable,
		"SET #st = :active, lastUpdated = :now",
		seekerKey,
		map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: models.SeekerStatusActive},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"}); err != nil {
		return nil, err
	}

	pairing.Status = models.PairingStatusActive
	return pairing, nil
}

// UpdatePairingStatus patches the pairing status. Paused pairings return to
// active through this same path with no guard. Terminal transitions
// (completed, ended) also release the seeker's pairing claim and return the
// ansar to the approved pool, so a finished pairing never blocks re-pairing.
func (s *PairingService) UpdatePairingStatus(ctx context.Context, pairingID, status string) error {
	switch status {
	case models.PairingStatusActive, models.PairingStatusCompleted,
		models.PairingStatusPaused, models.PairingStatusEnded:
	default:
		return fmt.Errorf("invalid pairing status %q", status)
	}

	pairing, err := s.GetPairing(ctx, pairingID)
	if err != nil {
		return err
	}
	if err := s.setPairingStatus(ctx, pairingID, status); err != nil {
		return err
	}

	switch status {
	case models.PairingStatusCompleted:
		// The mentorship concluded normally: the seeker stays active but is
		// free to pair again.
		return s.releaseParties(ctx, pairing, models.SeekerStatusActive)
	case models.PairingStatusEnded:
		return s.releaseParties(ctx, pairing, models.SeekerStatusTriaged)
	}
	return nil
}

// Unpair force-ends a pairing regardless of its current state: the pairing
// becomes ended, the seeker returns to triaged and frees its pairing claim,
// and the ansar reverts to approved.
func (s *PairingService) Unpair(ctx context.Context, pairingID string) error {
	pairing, err := s.GetPairing(ctx, pairingID)
	if err != nil {
		return err
	}

	if err := s.setPairingStatus(ctx, pairingID, models.PairingStatusEnded); err != nil {
		return err
	}
	if err := s.releaseParties(ctx, pairing, models.SeekerStatusTriaged); err != nil {
		return err
	}

	log.Printf("✅ Unpaired pairing %s (seeker %s, ansar %s)", pairingID, pairing.SeekerID, pairing.AnsarID)
	return nil
}

// releaseParties clears the seeker's pairing claim, sets the seeker status,
// and returns the ansar to the approved pool. Every transition out of
// pending_intro/active goes through here so activePairingId stays present
// only while such a pairing exists.
func (s *PairingService) releaseParties(ctx context.Context, pairing *models.Pairing, seekerStatus string) error {
	seekerKey := map[string]types.AttributeValue{
		"seekerId": &types.AttributeValueMemberS{Value: pairing.SeekerID},
	}
	if _, err := s.Dynamo.UpdateItem(ctx, models.SeekersTable,
		"SET #st = :status, lastUpdated = :now REMOVE activePairingId",
		seekerKey,
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: seekerStatus},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"}); err != nil {
		return err
	}
	return s.Ansars.SetAnsarStatus(ctx, pairing.AnsarID, models.AnsarStatusApproved)
}

func (s *PairingService) setPairingStatus(ctx context.Context, pairingID, status string) error {
	key := map[string]types.AttributeValue{
		"pairingId": &types.AttributeValueMemberS{Value: pairingID},
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.PairingsTable,
		"SET #st = :status, lastUpdated = :now",
		key,
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":now":    &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
		map[string]string{"#st": "status"})
	return err
}

// ListPairingsForSeeker fetches all pairings referencing a seeker.
func (s *PairingService) ListPairingsForSeeker(ctx context.Context, seekerID string) ([]models.Pairing, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.PairingsTable, models.PairingSeekerIndex,
		"seekerId = :seekerId",
		map[string]types.AttributeValue{
			":seekerId": &types.AttributeValueMemberS{Value: seekerID},
		}, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairings by seeker: %w", err)
	}

	var pairings []models.Pairing
	if err := attributevalue.UnmarshalListOfMaps(items, &pairings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pairings: %w", err)
	}
	return pairings, nil
}

// ListPairingsForAnsar fetches all pairings referencing an ansar.
func (s *PairingService) ListPairingsForAnsar(ctx context.Context, ansarID string) ([]models.Pairing, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.PairingsTable, models.PairingAnsarIndex,
		"ansarId = :ansarId",
		map[string]types.AttributeValue{
			":ansarId": &types.AttributeValueMemberS{Value: ansarID},
		}, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to query pairings by ansar: %w", err)
	}

	var pairings []models.Pairing
	if err := attributevalue.UnmarshalListOfMaps(items, &pairings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pairings: %w", err)
	}
	return pairings, nil
}

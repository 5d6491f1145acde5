package models

// Pairing represents the relationship between one seeker and one ansar
type Pairing struct {
	PairingID      string `dynamodbav:"pairingId" json:"pairingId"`
	SeekerID       string `dynamodbav:"seekerId" json:"seekerId"`
	AnsarID        string `dynamodbav:"ansarId" json:"ansarId"`
	OrganizationID string `dynamodbav:"organizationId,omitempty" json:"organizationId,omitempty"`
	Status         string `dynamodbav:"status" json:"status"` // pending_intro, active, completed, paused, ended
	Notes          string `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy      string `dynamodbav:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated    string `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// PairingsTable is the DynamoDB table name for pairings
const PairingsTable = "Pairings"

// GSIs on the Pairings table
const (
	PairingSeekerIndex = "seekerId-index"
	PairingAnsarIndex  = "ansarId-index"
)

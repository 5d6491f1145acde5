package models

// Seeker represents an intake record for a person requesting community support
type Seeker struct {
	SeekerID       string   `dynamodbav:"seekerId" json:"seekerId"`
	UserID         string   `dynamodbav:"userId,omitempty" json:"userId,omitempty"`
	FullName       string   `dynamodbav:"fullName" json:"fullName"`
	Email          string   `dynamodbav:"email" json:"email"`
	PhoneNumber    string   `dynamodbav:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	City           string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Languages      []string `dynamodbav:"languages,omitempty" json:"languages,omitempty"`
	Needs          []string `dynamodbav:"needs,omitempty" json:"needs,omitempty"`
	Notes          string   `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	ConsentGiven   bool     `dynamodbav:"consentGiven" json:"consentGiven"`
	Status         string   `dynamodbav:"status" json:"status"` // awaiting_outreach, triaged, connected, active
	OrganizationID string   `dynamodbav:"organizationId,omitempty" json:"organizationId,omitempty"`

	// ActivePairingID is present only while the seeker has a pending_intro or
	// active pairing. Pairing creation claims it with a conditional write, so
	// the store itself rejects a second concurrent pairing.
	ActivePairingID string `dynamodbav:"activePairingId,omitempty" json:"activePairingId,omitempty"`

	// DocumentKey references an uploaded intake document in S3.
	DocumentKey string `dynamodbav:"documentKey,omitempty" json:"documentKey,omitempty"`

	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated string `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// SeekersTable is the DynamoDB table name for seeker intake records
const SeekersTable = "Seekers"

// GSIs on the Seekers table
const (
	SeekerEmailIndex = "email-index"
	SeekerOrgIndex   = "organizationId-index"
)

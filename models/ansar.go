package models

// Ansar represents a volunteer mentor application record
type Ansar struct {
	AnsarID        string   `dynamodbav:"ansarId" json:"ansarId"`
	UserID         string   `dynamodbav:"userId,omitempty" json:"userId,omitempty"`
	FullName       string   `dynamodbav:"fullName" json:"fullName"`
	Email          string   `dynamodbav:"email" json:"email"`
	PhoneNumber    string   `dynamodbav:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	City           string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Languages      []string `dynamodbav:"languages,omitempty" json:"languages,omitempty"`
	Skills         []string `dynamodbav:"skills,omitempty" json:"skills,omitempty"`
	Availability   string   `dynamodbav:"availability,omitempty" json:"availability,omitempty"`
	Status         string   `dynamodbav:"status" json:"status"` // pending, approved, active, inactive
	OrganizationID string   `dynamodbav:"organizationId,omitempty" json:"organizationId,omitempty"`
	CreatedAt      string   `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated    string   `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// AnsarsTable is the DynamoDB table name for ansar applications
const AnsarsTable = "Ansars"

// GSIs on the Ansars table
const (
	AnsarEmailIndex = "email-index"
	AnsarOrgIndex   = "organizationId-index"
)

package models

// Organization represents an approved community hub
type Organization struct {
	OrganizationID string `dynamodbav:"organizationId" json:"organizationId"`
	Name           string `dynamodbav:"name" json:"name"`
	Address        string `dynamodbav:"address,omitempty" json:"address,omitempty"`
	City           string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	HubLevel       int    `dynamodbav:"hubLevel" json:"hubLevel"` // 1-5, carried from the partner application
	PartnerID      string `dynamodbav:"partnerId" json:"partnerId"`
	LeadUserID     string `dynamodbav:"leadUserId,omitempty" json:"leadUserId,omitempty"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// OrganizationsTable is the DynamoDB table name for organizations
const OrganizationsTable = "Organizations"

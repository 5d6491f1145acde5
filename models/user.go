package models

// User is the messaging identity behind a seeker, ansar, partner lead or
// admin. AuthID carries the external auth provider id; until a real identity
// is linked it holds a "pending_" placeholder.
type User struct {
	UserID         string `dynamodbav:"userId" json:"userId"`
	AuthID         string `dynamodbav:"authId" json:"authId"`
	Email          string `dynamodbav:"email" json:"email"`
	FullName       string `dynamodbav:"fullName" json:"fullName"`
	PhoneNumber    string `dynamodbav:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Role           string `dynamodbav:"role" json:"role"` // super_admin, partner_lead, ansar, seeker
	OrganizationID string `dynamodbav:"organizationId,omitempty" json:"organizationId,omitempty"`
	Status         string `dynamodbav:"status" json:"status"` // pending, active
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated    string `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// IsPlaceholder reports whether the user still carries a synthetic auth id.
func (u User) IsPlaceholder() bool {
	return len(u.AuthID) >= len(PendingAuthPrefix) && u.AuthID[:len(PendingAuthPrefix)] == PendingAuthPrefix
}

// UsersTable is the DynamoDB table name for users
const UsersTable = "Users"

// GSIs on the Users table
const (
	UserAuthIndex  = "authId-index"
	UserEmailIndex = "email-index"
	UserRoleIndex  = "role-index"
)

package models

// InfrastructureChecklist is the self-reported facilities checklist on a
// partner application. The hub level (1-5) is derived from it.
type InfrastructureChecklist struct {
	HasPrayerSpace    bool `dynamodbav:"hasPrayerSpace" json:"hasPrayerSpace"`
	HasClassrooms     bool `dynamodbav:"hasClassrooms" json:"hasClassrooms"`
	HasSocialHall     bool `dynamodbav:"hasSocialHall" json:"hasSocialHall"`
	HasFullTimeStaff  bool `dynamodbav:"hasFullTimeStaff" json:"hasFullTimeStaff"`
	HasWeekendSchool  bool `dynamodbav:"hasWeekendSchool" json:"hasWeekendSchool"`
	HasYouthPrograms  bool `dynamodbav:"hasYouthPrograms" json:"hasYouthPrograms"`
	HasSocialServices bool `dynamodbav:"hasSocialServices" json:"hasSocialServices"`
	HasParking        bool `dynamodbav:"hasParking" json:"hasParking"`
}

// Partner represents a community-hub application. Once approved it becomes
// an Organization record.
type Partner struct {
	PartnerID        string                  `dynamodbav:"partnerId" json:"partnerId"`
	OrganizationName string                  `dynamodbav:"organizationName" json:"organizationName"`
	ContactName      string                  `dynamodbav:"contactName" json:"contactName"`
	ContactEmail     string                  `dynamodbav:"contactEmail" json:"contactEmail"`
	ContactPhone     string                  `dynamodbav:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Address          string                  `dynamodbav:"address,omitempty" json:"address,omitempty"`
	City             string                  `dynamodbav:"city,omitempty" json:"city,omitempty"`
	Checklist        InfrastructureChecklist `dynamodbav:"checklist" json:"checklist"`
	HubLevel         int                     `dynamodbav:"hubLevel" json:"hubLevel"`
	Status           string                  `dynamodbav:"status" json:"status"` // pending, approved, rejected
	OrganizationID   string                  `dynamodbav:"organizationId,omitempty" json:"organizationId,omitempty"`
	CreatedAt        string                  `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated      string                  `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// PartnersTable is the DynamoDB table name for partner applications
const PartnersTable = "Partners"

const PartnerEmailIndex = "contactEmail-index"

package models

// Seeker statuses
const (
	SeekerStatusAwaitingOutreach = "awaiting_outreach"
	SeekerStatusTriaged          = "triaged"
	SeekerStatusConnected        = "connected"
	SeekerStatusActive           = "active"
)

// Ansar statuses
const (
	AnsarStatusPending  = "pending"
	AnsarStatusApproved = "approved"
	AnsarStatusActive   = "active"
	AnsarStatusInactive = "inactive"
)

// Partner statuses
const (
	PartnerStatusPending  = "pending"
	PartnerStatusApproved = "approved"
	PartnerStatusRejected = "rejected"
)

// Pairing statuses
const (
	PairingStatusPendingIntro = "pending_intro"
	PairingStatusActive       = "active"
	PairingStatusCompleted    = "completed"
	PairingStatusPaused       = "paused"
	PairingStatusEnded        = "ended"
)

// User roles
const (
	RoleSuperAdmin  = "super_admin"
	RolePartnerLead = "partner_lead"
	RoleAnsar       = "ansar"
	RoleSeeker      = "seeker"
)

// User statuses
const (
	UserStatusPending = "pending"
	UserStatusActive  = "active"
)

// Conversation types
const (
	ConversationTypeDirect    = "direct"
	ConversationTypeBroadcast = "broadcast"
)

// Notification channels
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Outbox statuses
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// Audit statuses
const (
	AuditStatusSent   = "sent"
	AuditStatusFailed = "failed"
)

// PendingAuthPrefix marks placeholder users that have not been linked to a
// real external auth identity yet.
const PendingAuthPrefix = "pending_"

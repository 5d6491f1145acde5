package services

import "errors"

// Domain validation errors. These propagate to the caller as the sole
// failure signal; no retry, no partial state.
var (
	ErrSeekerNotFound       = errors.New("seeker not found")
	ErrAnsarNotFound        = errors.New("ansar not found")
	ErrPartnerNotFound      = errors.New("partner not found")
	ErrPairingNotFound      = errors.New("pairing not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")

	ErrConsentRequired     = errors.New("consent agreement is required")
	ErrAnsarNotApproved    = errors.New("ansar is not approved or active")
	ErrSeekerAlreadyPaired = errors.New("seeker already has a pending or active pairing")
	ErrEmailTaken          = errors.New("a record with this email already exists")
	ErrNotAParticipant     = errors.New("user is not a participant in this conversation")
	ErrNoRecipients        = errors.New("no recipients match the broadcast filter")
)

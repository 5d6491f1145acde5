package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wasl_server/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors to HTTP statuses. Anything unrecognized is a
// 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrSeekerNotFound),
		errors.Is(err, services.ErrAnsarNotFound),
		errors.Is(err, services.ErrPartnerNotFound),
		errors.Is(err, services.ErrPairingNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrConversationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrSeekerAlreadyPaired),
		errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrConsentRequired),
		errors.Is(err, services.ErrAnsarNotApproved),
		errors.Is(err, services.ErrNotAParticipant),
		errors.Is(err, services.ErrNoRecipients):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

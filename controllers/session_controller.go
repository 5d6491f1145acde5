package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wasl_server/services"
)

// SessionController struct
type SessionController struct {
	UserService *services.UserService
}

// NewSessionController initializes the session controller
func NewSessionController(service *services.UserService) *SessionController {
	return &SessionController{UserService: service}
}

// HandleSyncSession - idempotent upsert keyed by the external auth id,
// called once per session establishment
func (c *SessionController) HandleSyncSession(w http.ResponseWriter, r *http.Request) {
	var input services.SyncSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	user, err := c.UserService.SyncSession(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to sync session: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleGetUser - fetch one user
func (c *SessionController) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	user, err := c.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"wasl_server/services"

	"github.com/gorilla/mux"
)

// InboxController struct
type InboxController struct {
	InboxService *services.InboxService
}

// NewInboxController initializes the inbox controller
func NewInboxController(service *services.InboxService) *InboxController {
	return &InboxController{InboxService: service}
}

// HandleSendDirectMessage - send (and possibly start) a direct conversation
func (c *InboxController) HandleSendDirectMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID    string `json:"senderId"`
		RecipientID string `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	message, err := c.InboxService.SendDirectMessage(r.Context(), request.SenderID, request.RecipientID, request.Content)
	if err != nil {
		log.Printf("❌ Failed to send direct message: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// HandleBroadcast - role-scoped broadcast
func (c *InboxController) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var input services.BroadcastInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	conversation, err := c.InboxService.Broadcast(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to broadcast: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conversation)
}

// HandleListConversations - the caller's inbox
func (c *InboxController) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	conversations, err := c.InboxService.ListConversations(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

// HandleListMessages - a conversation's messages, newest first
func (c *InboxController) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	messages, err := c.InboxService.ListMessages(r.Context(), conversationID, userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleMarkAsRead - zero the caller's unread counter
func (c *InboxController) HandleMarkAsRead(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.InboxService.MarkAsRead(r.Context(), conversationID, request.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleListMessageableUsers - who the caller may start a conversation with
func (c *InboxController) HandleListMessageableUsers(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	users, err := c.InboxService.ListMessageableUsers(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wasl_server/services"

	"github.com/gorilla/mux"
)

// SeekerController struct
type SeekerController struct {
	SeekerService *services.SeekerService
}

// NewSeekerController initializes the seeker controller
func NewSeekerController(service *services.SeekerService) *SeekerController {
	return &SeekerController{SeekerService: service}
}

// HandleCreateSeeker - intake form submission
func (c *SeekerController) HandleCreateSeeker(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSeekerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	seeker, err := c.SeekerService.CreateSeeker(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to create seeker: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, seeker)
}

// HandleGetSeeker - fetch one seeker
func (c *SeekerController) HandleGetSeeker(w http.ResponseWriter, r *http.Request) {
	seekerID := mux.Vars(r)["seekerId"]

	seeker, err := c.SeekerService.GetSeeker(r.Context(), seekerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seeker)
}

// HandleListSeekers - list seekers, optionally by organization
func (c *SeekerController) HandleListSeekers(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organizationId")

	seekers, err := c.SeekerService.ListSeekers(r.Context(), organizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seekers)
}

// HandleTriageSeeker - staff triage action
func (c *SeekerController) HandleTriageSeeker(w http.ResponseWriter, r *http.Request) {
	seekerID := mux.Vars(r)["seekerId"]

	var request struct {
		OrganizationID string `json:"organizationId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	seeker, err := c.SeekerService.TriageSeeker(r.Context(), seekerID, request.OrganizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seeker)
}

// HandleAttachDocument - link an uploaded intake document
func (c *SeekerController) HandleAttachDocument(w http.ResponseWriter, r *http.Request) {
	seekerID := mux.Vars(r)["seekerId"]

	var request struct {
		DocumentKey string `json:"documentKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.DocumentKey == "" {
		http.Error(w, `{"error": "documentKey is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.SeekerService.AttachDocument(r.Context(), seekerID, request.DocumentKey); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleDeleteSeeker - admin-only hard delete
func (c *SeekerController) HandleDeleteSeeker(w http.ResponseWriter, r *http.Request) {
	seekerID := mux.Vars(r)["seekerId"]

	if err := c.SeekerService.DeleteSeeker(r.Context(), seekerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

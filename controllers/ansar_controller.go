package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wasl_server/services"

	"github.com/gorilla/mux"
)

// AnsarController struct
type AnsarController struct {
	AnsarService *services.AnsarService
}

// NewAnsarController initializes the ansar controller
func NewAnsarController(service *services.AnsarService) *AnsarController {
	return &AnsarController{AnsarService: service}
}

// HandleCreateAnsar - volunteer application submission
func (c *AnsarController) HandleCreateAnsar(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAnsarInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	ansar, err := c.AnsarService.CreateAnsar(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to create ansar: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ansar)
}

// HandleGetAnsar - fetch one ansar
func (c *AnsarController) HandleGetAnsar(w http.ResponseWriter, r *http.Request) {
	ansarID := mux.Vars(r)["ansarId"]

	ansar, err := c.AnsarService.GetAnsar(r.Context(), ansarID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ansar)
}

// HandleListAnsars - list ansars, optionally by organization
func (c *AnsarController) HandleListAnsars(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organizationId")

	ansars, err := c.AnsarService.ListAnsars(r.Context(), organizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ansars)
}

// HandleApproveAnsar - staff approval action
func (c *AnsarController) HandleApproveAnsar(w http.ResponseWriter, r *http.Request) {
	ansarID := mux.Vars(r)["ansarId"]

	var request struct {
		OrganizationID string `json:"organizationId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	ansar, err := c.AnsarService.ApproveAnsar(r.Context(), ansarID, request.OrganizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ansar)
}

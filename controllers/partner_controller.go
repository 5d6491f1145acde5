package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wasl_server/services"

	"github.com/gorilla/mux"
)

// PartnerController struct
type PartnerController struct {
	PartnerService *services.PartnerService
}

// NewPartnerController initializes the partner controller
func NewPartnerController(service *services.PartnerService) *PartnerController {
	return &PartnerController{PartnerService: service}
}

// HandleCreatePartner - hub application submission
func (c *PartnerController) HandleCreatePartner(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePartnerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	partner, err := c.PartnerService.CreatePartner(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to create partner: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

// HandleGetPartner - fetch one partner application
func (c *PartnerController) HandleGetPartner(w http.ResponseWriter, r *http.Request) {
	partnerID := mux.Vars(r)["partnerId"]

	partner, err := c.PartnerService.GetPartner(r.Context(), partnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partner)
}

// HandleApprovePartner - approval creates the organization
func (c *PartnerController) HandleApprovePartner(w http.ResponseWriter, r *http.Request) {
	partnerID := mux.Vars(r)["partnerId"]

	org, err := c.PartnerService.ApprovePartner(r.Context(), partnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// HandleRejectPartner - rejection action
func (c *PartnerController) HandleRejectPartner(w http.ResponseWriter, r *http.Request) {
	partnerID := mux.Vars(r)["partnerId"]

	if err := c.PartnerService.RejectPartner(r.Context(), partnerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleGetOrganization - fetch one organization
func (c *PartnerController) HandleGetOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID := mux.Vars(r)["organizationId"]

	org, err := c.PartnerService.GetOrganization(r.Context(), organizationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// HandleListOrganizations - list all organizations
func (c *PartnerController) HandleListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := c.PartnerService.ListOrganizations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

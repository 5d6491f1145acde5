package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"wasl_server/services"

	"github.com/gorilla/mux"
)

// PairingController struct
type PairingController struct {
	PairingService *services.PairingService
}

// NewPairingController initializes the pairing controller
func NewPairingController(service *services.PairingService) *PairingController {
	return &PairingController{PairingService: service}
}

// HandleCreatePairing - pair a seeker with an ansar
func (c *PairingController) HandleCreatePairing(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePairingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	pairing, err := c.PairingService.CreatePairing(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to create pairing: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pairing)
}

// HandleGetPairing - fetch one pairing
func (c *PairingController) HandleGetPairing(w http.ResponseWriter, r *http.Request) {
	pairingID := mux.Vars(r)["pairingId"]

	pairing, err := c.PairingService.GetPairing(r.Context(), pairingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pairing)
}

// HandleConfirmIntro - pending_intro becomes active
func (c *PairingController) HandleConfirmIntro(w http.ResponseWriter, r *http.Request) {
	pairingID := mux.Vars(r)["pairingId"]

	pairing, err := c.PairingService.ConfirmIntro(r.Context(), pairingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pairing)
}

// HandleUpdatePairingStatus - manual status patch
func (c *PairingController) HandleUpdatePairingStatus(w http.ResponseWriter, r *http.Request) {
	pairingID := mux.Vars(r)["pairingId"]

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Status == "" {
		http.Error(w, `{"error": "status is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.PairingService.UpdatePairingStatus(r.Context(), pairingID, request.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleUnpair - force-end a pairing and reset both parties
func (c *PairingController) HandleUnpair(w http.ResponseWriter, r *http.Request) {
	pairingID := mux.Vars(r)["pairingId"]

	if err := c.PairingService.Unpair(r.Context(), pairingID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

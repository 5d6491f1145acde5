package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterPairingRoutes sets up routes for pairing operations under /api/pairings
func RegisterPairingRoutes(r *mux.Router, pairingService *services.PairingService) {
	controller := controllers.NewPairingController(pairingService)

	pairingRouter := r.PathPrefix("/api/pairings").Subrouter()
	pairingRouter.HandleFunc("", controller.HandleCreatePairing).Methods("POST")
	pairingRouter.HandleFunc("/{pairingId}", controller.HandleGetPairing).Methods("GET")
	pairingRouter.HandleFunc("/{pairingId}/confirm-intro", controller.HandleConfirmIntro).Methods("POST")
	pairingRouter.HandleFunc("/{pairingId}/status", controller.HandleUpdatePairingStatus).Methods("PATCH")
	pairingRouter.HandleFunc("/{pairingId}/unpair", controller.HandleUnpair).Methods("POST")
}

package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterPartnerRoutes sets up routes for hub applications and organizations
func RegisterPartnerRoutes(r *mux.Router, partnerService *services.PartnerService) {
	controller := controllers.NewPartnerController(partnerService)

	partnerRouter := r.PathPrefix("/api/partners").Subrouter()
	partnerRouter.HandleFunc("", controller.HandleCreatePartner).Methods("POST")
	partnerRouter.HandleFunc("/{partnerId}", controller.HandleGetPartner).Methods("GET")
	partnerRouter.HandleFunc("/{partnerId}/approve", controller.HandleApprovePartner).Methods("POST")
	partnerRouter.HandleFunc("/{partnerId}/reject", controller.HandleRejectPartner).Methods("POST")

	orgRouter := r.PathPrefix("/api/organizations").Subrouter()
	orgRouter.HandleFunc("", controller.HandleListOrganizations).Methods("GET")
	orgRouter.HandleFunc("/{organizationId}", controller.HandleGetOrganization).Methods("GET")
}

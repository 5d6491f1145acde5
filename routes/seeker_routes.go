package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterSeekerRoutes sets up routes for seeker intake and triage under /api/seekers
func RegisterSeekerRoutes(r *mux.Router, seekerService *services.SeekerService) {
	controller := controllers.NewSeekerController(seekerService)

	seekerRouter := r.PathPrefix("/api/seekers").Subrouter()
	seekerRouter.HandleFunc("", controller.HandleCreateSeeker).Methods("POST")
	seekerRouter.HandleFunc("", controller.HandleListSeekers).Methods("GET")
	seekerRouter.HandleFunc("/{seekerId}", controller.HandleGetSeeker).Methods("GET")
	seekerRouter.HandleFunc("/{seekerId}/triage", controller.HandleTriageSeeker).Methods("POST")
	seekerRouter.HandleFunc("/{seekerId}/document", controller.HandleAttachDocument).Methods("POST")
	seekerRouter.HandleFunc("/{seekerId}", controller.HandleDeleteSeeker).Methods("DELETE")
}

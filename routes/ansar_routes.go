package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterAnsarRoutes sets up routes for volunteer applications under /api/ansars
func RegisterAnsarRoutes(r *mux.Router, ansarService *services.AnsarService) {
	controller := controllers.NewAnsarController(ansarService)

	ansarRouter := r.PathPrefix("/api/ansars").Subrouter()
	ansarRouter.HandleFunc("", controller.HandleCreateAnsar).Methods("POST")
	ansarRouter.HandleFunc("", controller.HandleListAnsars).Methods("GET")
	ansarRouter.HandleFunc("/{ansarId}", controller.HandleGetAnsar).Methods("GET")
	ansarRouter.HandleFunc("/{ansarId}/approve", controller.HandleApproveAnsar).Methods("POST")
}

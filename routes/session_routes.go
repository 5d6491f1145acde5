package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterSessionRoutes sets up identity routes under /api/session
func RegisterSessionRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewSessionController(userService)

	sessionRouter := r.PathPrefix("/api/session").Subrouter()
	sessionRouter.HandleFunc("/sync", controller.HandleSyncSession).Methods("POST")
	sessionRouter.HandleFunc("/user", controller.HandleGetUser).Methods("GET")
}

package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterInboxRoutes sets up routes for messaging under /api/inbox
func RegisterInboxRoutes(r *mux.Router, inboxService *services.InboxService) {
	controller := controllers.NewInboxController(inboxService)

	inboxRouter := r.PathPrefix("/api/inbox").Subrouter()
	inboxRouter.HandleFunc("/messages", controller.HandleSendDirectMessage).Methods("POST")
	inboxRouter.HandleFunc("/broadcasts", controller.HandleBroadcast).Methods("POST")
	inboxRouter.HandleFunc("/conversations", controller.HandleListConversations).Methods("GET")
	inboxRouter.HandleFunc("/conversations/{conversationId}/messages", controller.HandleListMessages).Methods("GET")
	inboxRouter.HandleFunc("/conversations/{conversationId}/read", controller.HandleMarkAsRead).Methods("POST")
	inboxRouter.HandleFunc("/recipients", controller.HandleListMessageableUsers).Methods("GET")
}

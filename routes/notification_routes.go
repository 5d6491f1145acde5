package routes

import (
	"wasl_server/controllers"
	"wasl_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes exposes the notification audit log under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("/audit", controller.HandleListAuditLog).Methods("GET")
}

package controllers

import (
	"net/http"

	"wasl_server/services"
)

// NotificationController exposes the send-attempt audit log for the admin
// dashboard.
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController initializes the notification controller
func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleListAuditLog - recent send attempts with status and provider ids
func (c *NotificationController) HandleListAuditLog(w http.ResponseWriter, r *http.Request) {
	rows, err := c.NotificationService.ListAuditLog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// controllers/notification_controller.go
package controllers

import (
	"net/http"

	"campus_equipment_lending/app"
	"campus_equipment_lending/models"

	"github.com/gin-gonic/gin"
)

type NotificationController struct{ *Srv }

func NewNotificationController(s *Srv) *NotificationController {
	return &NotificationController{Srv: s}
}

// GET /api/notifications — 借用人看自己的，管理员看 "admin" 收件箱
func (nc *NotificationController) List(c *gin.Context) {
	caller := app.Caller(c)

	recipient := caller.ID
	if caller.IsAdmin() {
		recipient = models.AdminRecipient
	}

	ns, err := nc.Repo.ListNotifications(c.Request.Context(), recipient, 20)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	data := app.H{"notifications": ns}
	if caller.IsAdmin() {
		pending, err := nc.Repo.CountPendingRequests(c.Request.Context())
		if err != nil {
			sendError(c, http.StatusInternalServerError, err.Error())
			return
		}
		data["pendingRequests"] = pending
	}
	sendSuccess(c, http.StatusOK, data)
}

// POST /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.Repo.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, app.H{"message": "Notification marked as read"})
}

// POST /api/notifications/read-all
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	caller := app.Caller(c)
	recipient := caller.ID
	if caller.IsAdmin() {
		recipient = models.AdminRecipient
	}

	marked, err := nc.Repo.MarkAllNotificationsRead(c.Request.Context(), recipient)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, app.H{"marked": marked})
}

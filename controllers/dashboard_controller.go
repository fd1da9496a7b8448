// controllers/dashboard_controller.go
package controllers

import (
	"net/http"

	"campus_equipment_lending/app"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{ *Srv }

func NewDashboardController(s *Srv) *DashboardController { return &DashboardController{Srv: s} }

// GET /api/dashboard/stats （仅管理员）
func (dc *DashboardController) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := dc.Repo.CountEquipmentByStatus(ctx)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	pending, err := dc.Repo.CountPendingRequests(ctx)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	borrowers, err := dc.Repo.CountBorrowers(ctx)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	sendSuccess(c, http.StatusOK, app.H{
		"totalEquipment":     stats.Total,
		"availableEquipment": stats.Available,
		"borrowedEquipment":  stats.Borrowed,
		"pendingRequests":    pending,
		"totalBorrowers":     borrowers,
	})
}

// controllers/history_controller.go
package controllers

import (
	"net/http"

	"campus_equipment_lending/app"

	"github.com/gin-gonic/gin"
)

type HistoryController struct{ *Srv }

func NewHistoryController(s *Srv) *HistoryController { return &HistoryController{Srv: s} }

// GET /api/history?equipmentId= （仅管理员）
func (hc *HistoryController) ByEquipment(c *gin.Context) {
	equipmentID := c.Query("equipmentId")
	if equipmentID == "" {
		sendError(c, http.StatusBadRequest, "Equipment ID is required")
		return
	}

	eq, err := hc.Repo.GetEquipment(c.Request.Context(), equipmentID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if eq == nil {
		sendError(c, http.StatusNotFound, "Equipment not found")
		return
	}

	entries, err := hc.Repo.ListEquipmentHistory(c.Request.Context(), equipmentID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	sendSuccess(c, http.StatusOK, app.H{
		"equipment": app.H{"id": eq.ID, "name": eq.Name},
		"history":   entries,
	})
}

// controllers/equipment_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"campus_equipment_lending/app"
	"campus_equipment_lending/db"
	"campus_equipment_lending/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

// 管理员创建一件设备
func (ec *EquipmentController) Create(c *gin.Context) {
	var in struct {
		Name      string `json:"name" binding:"required"`
		Category  string `json:"category"`
		Location  string `json:"location"`
		Condition string `json:"condition"`
		Barcode   string `json:"barcode"`
		ImageURL  string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}
	if in.Condition == "" {
		in.Condition = models.ConditionGood
	}
	eq := &models.Equipment{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Category:  in.Category,
		Location:  in.Location,
		Condition: in.Condition,
		Status:    models.EquipmentAvailable,
		Barcode:   in.Barcode,
		ImageURL:  in.ImageURL,
		CreatedBy: app.Caller(c).ID,
	}
	if err := ec.Repo.CreateEquipment(c.Request.Context(), eq); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusCreated, eq)
}

func (ec *EquipmentController) List(c *gin.Context) {
	items, err := ec.Repo.ListEquipment(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, items)
}

func (ec *EquipmentController) Get(c *gin.Context) {
	eq, err := ec.Repo.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if eq == nil {
		sendError(c, http.StatusNotFound, "Equipment not found")
		return
	}
	sendSuccess(c, http.StatusOK, eq)
}

// 管理员更新设备字段（白名单）
func (ec *EquipmentController) Update(c *gin.Context) {
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	allowed := map[string]string{
		"name":      "name",
		"category":  "category",
		"status":    "status",
		"condition": "condition",
		"location":  "location",
		"barcode":   "barcode",
		"imageUrl":  "image_url",
	}
	fields := map[string]any{}
	for key, column := range allowed {
		if v, ok := in[key]; ok {
			fields[column] = v
		}
	}
	if len(fields) == 0 {
		sendError(c, http.StatusBadRequest, "No update data provided")
		return
	}

	eq, err := ec.Repo.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if eq == nil {
		sendError(c, http.StatusNotFound, "Equipment not found")
		return
	}
	if err := ec.Repo.UpdateEquipment(c.Request.Context(), eq.ID, fields); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, app.H{"message": "Equipment updated"})
}

// 删除设备；借出中不允许删
func (ec *EquipmentController) Delete(c *gin.Context) {
	err := ec.Repo.DeleteEquipment(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		sendSuccess(c, http.StatusOK, app.H{"message": "Equipment deleted"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		sendError(c, http.StatusNotFound, "Equipment not found")
	case errors.Is(err, db.ErrEquipmentBorrowed):
		sendError(c, http.StatusConflict, err.Error())
	default:
		sendError(c, http.StatusInternalServerError, err.Error())
	}
}

// GET /api/admin/equipment?q=&status=&page=&size=
func (ec *EquipmentController) AdminList(c *gin.Context) {
	q := db.AdminEquipmentQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ec.Repo.ListEquipmentWithBorrower(c.Request.Context(), q)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, res)
}

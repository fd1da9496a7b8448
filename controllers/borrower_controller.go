// controllers/borrower_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"campus_equipment_lending/app"
	"campus_equipment_lending/models"

	"github.com/gin-gonic/gin"
)

type BorrowerController struct{ *Srv }

func NewBorrowerController(s *Srv) *BorrowerController { return &BorrowerController{Srv: s} }

// 管理员创建借用人账户；初始信用分 20
func (bc *BorrowerController) Create(c *gin.Context) {
	var in struct {
		ID        string `json:"id" binding:"required"`
		Password  string `json:"password" binding:"required"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Course    string `json:"course"`
		YearLevel string `json:"yearLevel"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := bc.Repo.FindBorrowerByID(c.Request.Context(), in.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		sendError(c, http.StatusBadRequest, "Borrower account with this ID already exists")
		return
	}

	points := models.DefaultTrustPoints
	b := &models.Borrower{
		ID:          in.ID,
		Password:    in.Password,
		Name:        in.Name,
		Email:       in.Email,
		Course:      in.Course,
		YearLevel:   in.YearLevel,
		Status:      "Active",
		TrustPoints: &points,
		CreatedBy:   app.Caller(c).ID,
	}
	if err := bc.Repo.CreateBorrower(c.Request.Context(), b); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusCreated, app.H{"id": b.ID})
}

// GET /api/borrowers?q=&page=&size=
func (bc *BorrowerController) List(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := bc.Repo.ListBorrowers(c.Request.Context(), q, page, size)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, res)
}

// GET /api/borrowers/:id — 自己或管理员
func (bc *BorrowerController) Get(c *gin.Context) {
	id := c.Param("id")
	caller := app.Caller(c)
	if !caller.IsAdmin() && caller.ID != id {
		sendError(c, http.StatusForbidden, "forbidden")
		return
	}

	b, err := bc.Repo.FindBorrowerByID(c.Request.Context(), id)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if b == nil {
		sendError(c, http.StatusNotFound, "Borrower not found")
		return
	}
	sendSuccess(c, http.StatusOK, b)
}

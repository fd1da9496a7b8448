// controllers/request_controller.go
package controllers

import (
	"net/http"

	"campus_equipment_lending/app"
	"campus_equipment_lending/lending"

	"github.com/gin-gonic/gin"
)

type RequestController struct{ *Srv }

func NewRequestController(s *Srv) *RequestController { return &RequestController{Srv: s} }

// POST /api/requests
func (rc *RequestController) Create(c *gin.Context) {
	var in lending.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	req, err := rc.Lending.Create(c.Request.Context(), app.Caller(c), in)
	if err != nil {
		sendLendingError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, app.H{"id": req.ID})
}

// GET /api/requests/:id
func (rc *RequestController) Get(c *gin.Context) {
	req, err := rc.Repo.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if req == nil {
		sendError(c, http.StatusNotFound, "Request not found")
		return
	}
	caller := app.Caller(c)
	if !caller.IsAdmin() && caller.ID != req.BorrowerID {
		sendError(c, http.StatusForbidden, "forbidden")
		return
	}
	sendSuccess(c, http.StatusOK, req)
}

// GET /api/requests?borrowerId=&status=
func (rc *RequestController) List(c *gin.Context) {
	borrowerID := c.Query("borrowerId")
	status := c.Query("status")

	caller := app.Caller(c)
	if !caller.IsAdmin() {
		// 普通用户只能查自己的
		borrowerID = caller.ID
	}

	reqs, err := rc.Repo.ListRequests(c.Request.Context(), borrowerID, status)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	sendSuccess(c, http.StatusOK, reqs)
}

type actionBody struct {
	AdminComment        string `json:"adminComment"`
	ReturnCondition     string `json:"returnCondition"`
	ReturnNotes         string `json:"returnNotes"`
	CancellationComment string `json:"cancellationComment"`
	Comment             string `json:"comment"`
}

// POST /api/requests/:id/approve
func (rc *RequestController) Approve(c *gin.Context) {
	var in actionBody
	_ = c.ShouldBindJSON(&in)
	err := rc.Lending.Approve(c.Request.Context(), app.Caller(c), c.Param("id"), in.AdminComment)
	rc.actionResult(c, err, "Request approved")
}

// POST /api/requests/:id/reject
func (rc *RequestController) Reject(c *gin.Context) {
	var in actionBody
	_ = c.ShouldBindJSON(&in)
	err := rc.Lending.Reject(c.Request.Context(), app.Caller(c), c.Param("id"), in.AdminComment)
	rc.actionResult(c, err, "Request rejected")
}

// POST /api/requests/:id/return
func (rc *RequestController) Return(c *gin.Context) {
	var in actionBody
	_ = c.ShouldBindJSON(&in)
	err := rc.Lending.Return(c.Request.Context(), app.Caller(c), c.Param("id"), in.ReturnCondition, in.ReturnNotes)
	rc.actionResult(c, err, "Equipment returned")
}

// POST /api/requests/:id/cancel
func (rc *RequestController) Cancel(c *gin.Context) {
	var in actionBody
	_ = c.ShouldBindJSON(&in)
	err := rc.Lending.Cancel(c.Request.Context(), app.Caller(c), c.Param("id"), in.CancellationComment)
	rc.actionResult(c, err, "Request cancelled")
}

// POST /api/requests/:id/review
func (rc *RequestController) Review(c *gin.Context) {
	var in actionBody
	_ = c.ShouldBindJSON(&in)
	err := rc.Lending.Review(c.Request.Context(), app.Caller(c), c.Param("id"), in.Comment)
	rc.actionResult(c, err, "Feedback submitted")
}

func (rc *RequestController) actionResult(c *gin.Context, err error, message string) {
	if err != nil {
		sendLendingError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, app.H{"message": message})
}

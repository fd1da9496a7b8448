// controllers/auth_controller.go
package controllers

import (
	"crypto/subtle"
	"net/http"

	"campus_equipment_lending/app"
	"campus_equipment_lending/lending"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type loginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Login resolves the caller against the admins table first unless the client
// pinned a role. Credentials are opaque strings compared as-is.
func (ac *AuthController) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var password, role string
	if in.Role != lending.RoleBorrower {
		admin, err := ac.Repo.FindAdminByID(c.Request.Context(), in.ID)
		if err != nil {
			sendError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if admin != nil {
			password, role = admin.Password, lending.RoleAdmin
		}
	}
	if role == "" && in.Role != lending.RoleAdmin {
		borrower, err := ac.Repo.FindBorrowerByID(c.Request.Context(), in.ID)
		if err != nil {
			sendError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if borrower != nil {
			password, role = borrower.Password, lending.RoleBorrower
		}
	}
	if role == "" || subtle.ConstantTimeCompare([]byte(password), []byte(in.Password)) != 1 {
		sendError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sid := uuid.NewString()
	if err := ac.AppSess.Create(c.Request.Context(), sid, in.ID, role); err != nil {
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}
	ac.setAppCookie(c.Writer, sid, ac.Cfg.SessionTTL)

	sendSuccess(c, http.StatusOK, app.H{"userId": in.ID, "role": role})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	sendSuccess(c, http.StatusOK, nil)
}

func (ac *AuthController) WhoAmI(c *gin.Context) {
	caller := app.Caller(c)
	sendSuccess(c, http.StatusOK, app.H{"userId": caller.ID, "role": caller.Role})
}

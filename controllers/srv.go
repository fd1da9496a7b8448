// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"campus_equipment_lending/app"
	"campus_equipment_lending/config"
	"campus_equipment_lending/db"
	"campus_equipment_lending/lending"
	"campus_equipment_lending/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo    *db.Repo
	Lending *lending.Service
	AppSess *session.AppSessionStore
	Cfg     config.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:    repo,
		Lending: lending.NewService(repo, a.Log),
		AppSess: a.AppSessions(),
		Cfg:     a.Config,
	}
}

// --- helpers ---

// 统一 JSON 信封：{ success, data, error }
func sendSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, app.H{"success": true, "data": data})
}

func sendError(c *gin.Context, status int, msg string) {
	c.JSON(status, app.H{"success": false, "error": msg})
}

func sendLendingError(c *gin.Context, err error) {
	sendError(c, statusFor(err), err.Error())
}

func statusFor(err error) int {
	var ve *lending.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, lending.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, lending.ErrAdminOnly),
		errors.Is(err, lending.ErrNotOwner),
		errors.Is(err, lending.ErrLowTrust):
		return http.StatusForbidden
	case errors.Is(err, lending.ErrRequestNotFound),
		errors.Is(err, lending.ErrEquipmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, lending.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

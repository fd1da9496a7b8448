package routes

import (
	"time"

	"campus_equipment_lending/app"
	"campus_equipment_lending/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	reqCtl := controllers.NewRequestController(s)
	eqCtl := controllers.NewEquipmentController(s)
	borrowerCtl := controllers.NewBorrowerController(s)
	notifCtl := controllers.NewNotificationController(s)
	historyCtl := controllers.NewHistoryController(s)
	dashCtl := controllers.NewDashboardController(s)

	// 复用的中间件
	authMW := app.AuthRequired(a.AppSessions())
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证（公开+受保护）
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", authCtl.WhoAmI)
		authed.POST("/logout", authCtl.Logout)
	}

	// ------------------------------
	// 借用请求（生命周期）
	// ------------------------------
	requests := r.Group("/api/requests", authMW, seenMW)
	{
		requests.POST("", reqCtl.Create)
		requests.GET("", reqCtl.List)
		requests.GET("/:id", reqCtl.Get)
		requests.POST("/:id/cancel", reqCtl.Cancel)
		requests.POST("/:id/review", reqCtl.Review)
	}
	requestsAdmin := r.Group("/api/requests", authMW, adminMW)
	{
		requestsAdmin.POST("/:id/approve", reqCtl.Approve)
		requestsAdmin.POST("/:id/reject", reqCtl.Reject)
		requestsAdmin.POST("/:id/return", reqCtl.Return)
	}

	// ------------------------------
	// 设备
	// ------------------------------
	equipment := r.Group("/api/equipment", authMW, seenMW)
	{
		equipment.GET("", eqCtl.List)
		equipment.GET("/:id", eqCtl.Get)
	}
	equipmentAdmin := r.Group("/api/equipment", authMW, adminMW)
	{
		equipmentAdmin.POST("", eqCtl.Create)
		equipmentAdmin.PUT("/:id", eqCtl.Update)
		equipmentAdmin.DELETE("/:id", eqCtl.Delete)
	}

	// ------------------------------
	// 借用人管理（仅管理员）+ 自查
	// ------------------------------
	borrowers := r.Group("/api/borrowers", authMW)
	{
		borrowers.GET("/:id", borrowerCtl.Get) // 自己或管理员
	}
	borrowersAdmin := r.Group("/api/borrowers", authMW, adminMW)
	{
		borrowersAdmin.POST("", borrowerCtl.Create)
		borrowersAdmin.GET("", borrowerCtl.List)
	}

	// ------------------------------
	// 通知
	// ------------------------------
	notifications := r.Group("/api/notifications", authMW, seenMW)
	{
		notifications.GET("", notifCtl.List)
		notifications.POST("/:id/read", notifCtl.MarkRead)
		notifications.POST("/read-all", notifCtl.MarkAllRead)
	}

	// ------------------------------
	// 历史 + 仪表盘（仅管理员）
	// ------------------------------
	admin := r.Group("/api", authMW, adminMW)
	{
		admin.GET("/history", historyCtl.ByEquipment)
		admin.GET("/dashboard/stats", dashCtl.Stats)
		admin.GET("/admin/equipment", eqCtl.AdminList)
	}
}

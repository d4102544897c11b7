package routes

import (
	"github.com/gin-gonic/gin"

	"it_asset_manager/app"
	"it_asset_manager/controllers"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	userCtl := controllers.NewUserController(s)
	assetCtl := controllers.NewAssetController(s)
	accessCtl := controllers.NewAccessController(s)
	dashCtl := controllers.NewDashboardController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()

	// ------------------------------
	// 健康检查（公开）
	// ------------------------------
	r.GET("/healthz", dashCtl.Healthz)
	r.GET("/readyz", dashCtl.Readyz)
	r.GET("/livez", dashCtl.Livez)

	// ------------------------------
	// 认证（公开 + 受保护）
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}
	authed := auth.Group("", authMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/me", authCtl.Me)
		authed.PUT("/profile", authCtl.UpdateProfile)
		authed.POST("/change-password", authCtl.ChangePassword)
	}

	// ------------------------------
	// 业务 API：全部要求登录
	// ------------------------------
	api := r.Group("/api", authMW)

	api.GET("/dashboard", dashCtl.Dashboard)

	assets := api.Group("/assets")
	{
		assets.GET("", assetCtl.List)
		assets.POST("", assetCtl.Create)
		assets.GET("/statistics", assetCtl.Statistics)
		assets.GET("/export", assetCtl.Export)
		assets.GET("/sample", assetCtl.Sample)
		assets.POST("/import", assetCtl.Import)
		assets.GET("/:id", assetCtl.Get)
		assets.PUT("/:id", assetCtl.Update)
		assets.DELETE("/:id", assetCtl.Delete)
		assets.POST("/:id/assign", assetCtl.Assign)
		assets.POST("/:id/unassign", assetCtl.Unassign)
		assets.POST("/:id/maintenance", assetCtl.Maintenance)
		assets.POST("/:id/retire", assetCtl.Retire)
	}

	access := api.Group("/access")
	{
		access.GET("/statistics", accessCtl.Statistics)

		apps := access.Group("/applications")
		{
			apps.GET("", accessCtl.ListApplication)
			apps.POST("", accessCtl.GrantApplication)
			apps.GET("/export", accessCtl.ExportApplication)
			apps.GET("/sample", accessCtl.SampleApplication)
			apps.POST("/import", accessCtl.ImportApplication)
			apps.POST("/:id/revoke", accessCtl.RevokeApplication)
			apps.POST("/:id/reactivate", accessCtl.ReactivateApplication)
			apps.PUT("/:id/level", accessCtl.UpdateApplicationLevel)
		}

		gh := access.Group("/github")
		{
			gh.GET("", accessCtl.ListGitHub)
			gh.POST("", accessCtl.GrantGitHub)
			gh.GET("/export", accessCtl.ExportGitHub)
			gh.GET("/sample", accessCtl.SampleGitHub)
			gh.POST("/import", accessCtl.ImportGitHub)
			gh.POST("/:id/revoke", accessCtl.RevokeGitHub)
			gh.POST("/:id/reactivate", accessCtl.ReactivateGitHub)
			gh.PUT("/:id/type", accessCtl.UpdateGitHubType)
		}
	}

	// ------------------------------
	// 用户管理：仅管理员
	// ------------------------------
	users := api.Group("/users", adminMW)
	{
		users.GET("", userCtl.List)
		users.POST("", userCtl.Create)
		users.GET("/:id", userCtl.Get)
		users.POST("/:id/activate", userCtl.Activate)
		users.POST("/:id/deactivate", userCtl.Deactivate)
	}
}

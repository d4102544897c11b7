// controllers/dashboard_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"it_asset_manager/app"
)

type DashboardController struct{ *Srv }

func NewDashboardController(s *Srv) *DashboardController { return &DashboardController{Srv: s} }

// 首页汇总：资产 + 权限两边的统计一把拉出来
func (dc *DashboardController) Dashboard(c *gin.Context) {
	assets, err := dc.Assets.Statistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	access, err := dc.Access.Statistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	users, err := dc.Repo.CountUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"assets": assets,
		"access": access,
		"users":  users,
	})
}

// Healthz pings Postgres and Redis with a short deadline.
func (dc *DashboardController) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := dc.App.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, app.H{"status": "down", "error": "database unreachable"})
		return
	}
	if err := dc.App.RDB.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, app.H{"status": "down", "error": "redis unreachable"})
		return
	}
	c.JSON(http.StatusOK, app.H{"status": "ok"})
}

func (dc *DashboardController) Readyz(c *gin.Context) {
	dc.Healthz(c)
}

func (dc *DashboardController) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"status": "ok"})
}

// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"it_asset_manager/app"
	"it_asset_manager/db"
	"it_asset_manager/services"
	"it_asset_manager/session"
)

type Srv struct {
	Repo    *db.Repo
	AppSess *session.AppSessionStore
	Assets  *services.AssetService
	Access  *services.AccessService
	Auth    *services.AuthService
	Cfg     app.Config
	App     *app.App
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:    repo,
		AppSess: a.AppSessions(),
		Assets:  services.NewAssetService(repo),
		Access:  services.NewAccessService(repo),
		Auth:    services.NewAuthService(repo),
		Cfg:     a.Config,
		App:     a,
	}
}

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.App.SecureCookies(),
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearAppCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.App.SecureCookies(),
	})
}

// 登录成功：创建会话 + 下发 Cookie
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID uint, username string) error {
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID, username); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// statusFor maps a service error category to the HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), app.H{"error": err.Error()})
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

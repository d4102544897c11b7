// controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"it_asset_manager/app"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// 管理员建账号
func (uc *UserController) Create(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	u, err := uc.Auth.CreateUser(c.Request.Context(), in.Username, in.Password, in.Email, in.IsAdmin)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

func (uc *UserController) List(c *gin.Context) {
	res, err := uc.Repo.ListUsers(c.Request.Context(),
		c.Query("q"), queryInt(c, "page", 1), queryInt(c, "size", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

func (uc *UserController) Activate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	u, err := uc.Auth.SetActive(c.Request.Context(), id, true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// 停用账号时把该用户所有会话一起踢掉
func (uc *UserController) Deactivate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if self, _ := currentUserID(c); self == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot deactivate your own account"})
		return
	}
	u, err := uc.Auth.SetActive(c.Request.Context(), id, false)
	if err != nil {
		fail(c, err)
		return
	}
	_ = uc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"user": u})
}

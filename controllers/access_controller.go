// controllers/access_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"it_asset_manager/app"
	"it_asset_manager/csvio"
)

type AccessController struct{ *Srv }

func NewAccessController(s *Srv) *AccessController { return &AccessController{Srv: s} }

// --- application access ---

func (ac *AccessController) ListApplication(c *gin.Context) {
	rows, err := ac.Access.ListApplication(c.Request.Context(),
		c.Query("userName"), c.Query("applicationName"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}

func (ac *AccessController) GrantApplication(c *gin.Context) {
	var in struct {
		UserName        string `json:"userName" binding:"required"`
		ApplicationName string `json:"applicationName" binding:"required"`
		AccessLevel     string `json:"accessLevel" binding:"required"`
		Remarks         string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	row, err := ac.Access.GrantApplication(c.Request.Context(),
		in.UserName, in.ApplicationName, in.AccessLevel, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// 撤销是逻辑删除：行保留，状态翻成 revoked
func (ac *AccessController) RevokeApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&in)
	row, err := ac.Access.RevokeApplication(c.Request.Context(), id, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AccessController) UpdateApplicationLevel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		AccessLevel string `json:"accessLevel" binding:"required"`
		Remarks     string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	row, err := ac.Access.UpdateApplicationLevel(c.Request.Context(), id, in.AccessLevel, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AccessController) ReactivateApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&in)
	row, err := ac.Access.ReactivateApplication(c.Request.Context(), id, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AccessController) ImportApplication(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	defer f.Close()

	report := csvio.NewAppAccessCSV(ac.App.DB).Import(c.Request.Context(), f)
	c.JSON(http.StatusOK, report)
}

func (ac *AccessController) ExportApplication(c *gin.Context) {
	rows, err := ac.Repo.AllAppAccess(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	setCSVDownload(c, fmt.Sprintf("application_access_%s.csv", time.Now().UTC().Format("20060102")))
	if err := csvio.NewAppAccessCSV(ac.App.DB).Export(c.Writer, rows, time.Now().UTC()); err != nil {
		ac.App.Log.Error().Err(err).Msg("application access export failed mid-stream")
	}
}

func (ac *AccessController) SampleApplication(c *gin.Context) {
	setCSVDownload(c, "application_access_sample.csv")
	if err := csvio.NewAppAccessCSV(ac.App.DB).WriteSample(c.Writer); err != nil {
		ac.App.Log.Error().Err(err).Msg("application access sample write failed")
	}
}

// --- github repo access ---

func (ac *AccessController) ListGitHub(c *gin.Context) {
	rows, err := ac.Access.ListGitHub(c.Request.Context(),
		c.Query("userName"), c.Query("organizationName"), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}

func (ac *AccessController) GrantGitHub(c *gin.Context) {
	var in struct {
		UserName         string `json:"userName" binding:"required"`
		OrganizationName string `json:"organizationName" binding:"required"`
		RepoName         string `json:"repoName" binding:"required"`
		AccessType       string `json:"accessType" binding:"required"`
		Remarks          string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	row, err := ac.Access.GrantGitHub(c.Request.Context(),
		in.UserName, in.OrganizationName, in.RepoName, in.AccessType, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (ac *AccessController) RevokeGitHub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&in)
	row, err := ac.Access.RevokeGitHub(c.Request.Context(), id, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AccessController) UpdateGitHubType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		AccessType string `json:"accessType" binding:"required"`
		Remarks    string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	row, err := ac.Access.UpdateGitHubType(c.Request.Context(), id, in.AccessType, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AccessController) ReactivateGitHub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&in)
	row, err := ac.Access.ReactivateGitHub(c.Request.Context(), id, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (ac *AccessController) ImportGitHub(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	defer f.Close()

	report := csvio.NewGitHubAccessCSV(ac.App.DB).Import(c.Request.Context(), f)
	c.JSON(http.StatusOK, report)
}

func (ac *AccessController) ExportGitHub(c *gin.Context) {
	rows, err := ac.Repo.AllGitHubAccess(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	setCSVDownload(c, fmt.Sprintf("github_access_%s.csv", time.Now().UTC().Format("20060102")))
	if err := csvio.NewGitHubAccessCSV(ac.App.DB).Export(c.Writer, rows, time.Now().UTC()); err != nil {
		ac.App.Log.Error().Err(err).Msg("github access export failed mid-stream")
	}
}

func (ac *AccessController) SampleGitHub(c *gin.Context) {
	setCSVDownload(c, "github_access_sample.csv")
	if err := csvio.NewGitHubAccessCSV(ac.App.DB).WriteSample(c.Writer); err != nil {
		ac.App.Log.Error().Err(err).Msg("github access sample write failed")
	}
}

func (ac *AccessController) Statistics(c *gin.Context) {
	st, err := ac.Access.Statistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// controllers/asset_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"it_asset_manager/app"
	"it_asset_manager/csvio"
	"it_asset_manager/db"
	"it_asset_manager/services"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// 资产列表（关键词 + 状态过滤 + 分页）
func (ac *AssetController) List(c *gin.Context) {
	q := db.AssetsQuery{
		Q:          c.Query("q"),
		Status:     c.Query("status"),
		AssignedTo: c.Query("assignedTo"),
		Page:       queryInt(c, "page", 1),
		Size:       queryInt(c, "size", 50),
	}
	res, err := ac.Assets.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ac *AssetController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := ac.Assets.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssetController) Create(c *gin.Context) {
	var in services.AssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ac.Assets.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ac *AssetController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.AssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ac.Assets.Update(c.Request.Context(), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssetController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := ac.Assets.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"deleted": a.AssetTag})
}

// 分配给某个用户
func (ac *AssetController) Assign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Username string `json:"username" binding:"required"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ac.Assets.Assign(c.Request.Context(), id, in.Username, in.Location)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssetController) Unassign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := ac.Assets.Unassign(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssetController) Maintenance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&in)
	a, err := ac.Assets.SetMaintenance(c.Request.Context(), id, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssetController) Retire(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Remarks string `json:"remarks"`
	}
	_ = c.ShouldBindJSON(&in)
	a, err := ac.Assets.Retire(c.Request.Context(), id, in.Remarks)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AssetController) Statistics(c *gin.Context) {
	st, err := ac.Assets.Statistics(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// 批量导入（multipart 上传 CSV）
func (ac *AssetController) Import(c *gin.Context) {
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

	report := csvio.NewAssetCSV(ac.App.DB).Import(c.Request.Context(), f)
	c.JSON(http.StatusOK, report)
}

func setCSVDownload(c *gin.Context, name string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func (ac *AssetController) Export(c *gin.Context) {
	assets, err := ac.Repo.AllAssets(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	setCSVDownload(c, fmt.Sprintf("assets_%s.csv", time.Now().UTC().Format("20060102")))
	if err := csvio.NewAssetCSV(ac.App.DB).Export(c.Writer, assets); err != nil {
		ac.App.Log.Error().Err(err).Msg("asset export failed mid-stream")
	}
}

func (ac *AssetController) Sample(c *gin.Context) {
	setCSVDownload(c, "assets_sample.csv")
	if err := csvio.NewAssetCSV(ac.App.DB).WriteSample(c.Writer); err != nil {
		ac.App.Log.Error().Err(err).Msg("asset sample write failed")
	}
}

package csvio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it_asset_manager/models"
)

func TestAssetImportMinimalRowDefaults(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	src := strings.NewReader("asset_tag,asset_type,serial_number\nLAP001,laptop,SN001\n")
	report := c.Import(context.Background(), src)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Empty(t, report.Errors)

	var a models.Asset
	require.NoError(t, c.DB.Where("asset_tag = ?", "LAP001").First(&a).Error)
	assert.Equal(t, "Computing", a.AssetCategory)
	assert.Equal(t, models.StatusUnassigned, a.Status)
	assert.Equal(t, "good", a.Condition)
	assert.Equal(t, models.OwnershipPurchased, a.OwnershipType)
}

func TestAssetImportMissingHeaderColumn(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	src := strings.NewReader("asset_tag,asset_type\nLAP001,laptop\n")
	report := c.Import(context.Background(), src)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 0, report.Updated)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "missing required columns: serial_number")

	var count int64
	c.DB.Model(&models.Asset{}).Count(&count)
	assert.Zero(t, count)
}

func TestAssetImportIsIdempotent(t *testing.T) {
	c := NewAssetCSV(testDB(t))
	csvData := "asset_tag,asset_type,serial_number,brand\n" +
		"LAP001,laptop,SN001,Dell\n" +
		"RTR001,router,SN002,Cisco\n"

	first := c.Import(context.Background(), strings.NewReader(csvData))
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, first.Updated)
	assert.Empty(t, first.Errors)

	second := c.Import(context.Background(), strings.NewReader(csvData))
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Empty(t, second.Errors)

	var count int64
	c.DB.Model(&models.Asset{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestAssetImportUpdatesByTag(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	r := c.Import(context.Background(),
		strings.NewReader("asset_tag,asset_type,serial_number,brand\nLAP001,laptop,SN001,Dell\n"))
	require.Equal(t, 1, r.Created)

	r = c.Import(context.Background(),
		strings.NewReader("asset_tag,asset_type,serial_number,brand,condition\nLAP001,laptop,SN001,Lenovo,fair\n"))
	assert.Equal(t, 1, r.Updated)

	var a models.Asset
	require.NoError(t, c.DB.Where("asset_tag = ?", "LAP001").First(&a).Error)
	assert.Equal(t, "Lenovo", a.Brand)
	assert.Equal(t, "fair", a.Condition)
}

func TestAssetImportSerialConflict(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	r := c.Import(context.Background(),
		strings.NewReader("asset_tag,asset_type,serial_number\nLAP001,laptop,SN001\n"))
	require.Equal(t, 1, r.Created)

	// SN001 已经属于 LAP001，换个 tag 再导入要按行报错并跳过
	r = c.Import(context.Background(),
		strings.NewReader("asset_tag,asset_type,serial_number\nLAP002,laptop,SN001\nLAP003,laptop,SN003\n"))
	assert.Equal(t, 1, r.Created)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "serial number SN001 already exists for asset LAP001")

	var count int64
	c.DB.Model(&models.Asset{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestAssetParseBadRowDoesNotBlockGoodRow(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	csvData := "asset_tag,asset_type,serial_number,ram_gb\n" +
		"LAP001,laptop,SN001,sixteen\n" +
		"LAP002,laptop,SN002,16\n"
	rows, errs := c.Parse(strings.NewReader(csvData))

	require.Len(t, rows, 1)
	assert.Equal(t, "LAP002", rows[0].AssetTag)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "row 2:")
	assert.Contains(t, errs[0], "ram_gb")
}

func TestAssetImportStatusFollowsAssignee(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	r := c.Import(context.Background(), strings.NewReader(
		"asset_tag,asset_type,serial_number,assigned_to\nLAP001,laptop,SN001,john.doe\n"))
	require.Equal(t, 1, r.Created)

	var a models.Asset
	require.NoError(t, c.DB.Where("asset_tag = ?", "LAP001").First(&a).Error)
	assert.Equal(t, models.StatusAssigned, a.Status)
	assert.Equal(t, "john.doe", a.AssignedTo)
}

func TestAssetExportRoundTrip(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	r := c.Import(context.Background(), strings.NewReader(
		"asset_tag,asset_type,serial_number,purchase_cost\nLAP001,laptop,SN001,1299.99\n"))
	require.Equal(t, 1, r.Created)

	var assets []models.Asset
	require.NoError(t, c.DB.Find(&assets).Error)

	var buf bytes.Buffer
	require.NoError(t, c.Export(&buf, assets))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(AssetColumns, ","), lines[0])
	assert.Contains(t, lines[1], "LAP001")
	assert.Contains(t, lines[1], "1299.99")
	assert.Contains(t, lines[1], "Computing")
}

func TestAssetSampleParsesCleanly(t *testing.T) {
	c := NewAssetCSV(testDB(t))

	var buf bytes.Buffer
	require.NoError(t, c.WriteSample(&buf))

	rows, errs := c.Parse(&buf)
	assert.Empty(t, errs)
	assert.Len(t, rows, 3)
}

package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"it_asset_manager/models"
)

// Assets

func (r *Repo) CreateAsset(ctx context.Context, a *models.Asset) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) SaveAsset(ctx context.Context, a *models.Asset) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *Repo) DeleteAsset(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Asset{}, id).Error
}

func (r *Repo) FindAssetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) FindAssetByTag(ctx context.Context, tag string) (*models.Asset, error) {
	var a models.Asset
	err := r.DB.WithContext(ctx).Where("asset_tag = ?", tag).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) FindAssetBySerial(ctx context.Context, serial string) (*models.Asset, error) {
	var a models.Asset
	err := r.DB.WithContext(ctx).Where("serial_number = ?", serial).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type AssetsQuery struct {
	Q          string // 关键词：tag/type/brand/model/serial/assignee/location
	Status     string
	AssignedTo string
	Page       int
	Size       int
}

type ListAssetsResult struct {
	Assets []models.Asset `json:"assets"`
	Total  int64          `json:"total"`
}

func (r *Repo) ListAssets(ctx context.Context, q AssetsQuery) (ListAssetsResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 50
	}

	tx := r.DB.WithContext(ctx).Model(&models.Asset{})
	if q.Q != "" {
		like := "%" + q.Q + "%"
		tx = tx.Where(
			"asset_tag LIKE ? OR asset_type LIKE ? OR brand LIKE ? OR model LIKE ? OR serial_number LIKE ? OR assigned_to LIKE ? OR location LIKE ?",
			like, like, like, like, like, like, like)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.AssignedTo != "" {
		tx = tx.Where("assigned_to = ? AND status = ?", q.AssignedTo, models.StatusAssigned)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListAssetsResult{}, err
	}

	var assets []models.Asset
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&assets).Error; err != nil {
		return ListAssetsResult{}, err
	}
	return ListAssetsResult{Assets: assets, Total: total}, nil
}

func (r *Repo) AllAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.DB.WithContext(ctx).Order("asset_tag").Find(&assets).Error
	return assets, err
}

type GroupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// AssetStatistics aggregates the dashboard counters in a handful of
// queries rather than loading every row.
type AssetStatistics struct {
	Total              int64            `json:"total"`
	Assigned           int64            `json:"assigned"`
	Unassigned         int64            `json:"unassigned"`
	Maintenance        int64            `json:"maintenance"`
	Retired            int64            `json:"retired"`
	ByType             map[string]int64 `json:"byType"`
	ByOwnership        map[string]int64 `json:"byOwnership"`
	ExpiringWarranties int64            `json:"expiringWarranties"`
}

func (r *Repo) AssetStatistics(ctx context.Context, now time.Time) (AssetStatistics, error) {
	stats := AssetStatistics{ByType: map[string]int64{}, ByOwnership: map[string]int64{}}
	tx := r.DB.WithContext(ctx).Model(&models.Asset{})

	if err := tx.Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	for status, dst := range map[string]*int64{
		models.StatusAssigned:    &stats.Assigned,
		models.StatusUnassigned:  &stats.Unassigned,
		models.StatusMaintenance: &stats.Maintenance,
		models.StatusRetired:     &stats.Retired,
	} {
		if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
			Where("status = ?", status).Count(dst).Error; err != nil {
			return stats, err
		}
	}

	var byType []GroupCount
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Select("asset_type AS key, COUNT(*) AS count").
		Group("asset_type").Scan(&byType).Error; err != nil {
		return stats, err
	}
	for _, g := range byType {
		stats.ByType[g.Key] = g.Count
	}

	var byOwnership []GroupCount
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Select("ownership_type AS key, COUNT(*) AS count").
		Group("ownership_type").Scan(&byOwnership).Error; err != nil {
		return stats, err
	}
	for _, g := range byOwnership {
		stats.ByOwnership[g.Key] = g.Count
	}

	cutoff := now.AddDate(0, 0, 30)
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("warranty_expiry IS NOT NULL AND warranty_expiry >= ? AND warranty_expiry <= ?", now, cutoff).
		Count(&stats.ExpiringWarranties).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

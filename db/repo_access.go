package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"it_asset_manager/models"
)

// Application access

func (r *Repo) CreateAppAccess(ctx context.Context, a *models.ApplicationAccess) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) SaveAppAccess(ctx context.Context, a *models.ApplicationAccess) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *Repo) FindAppAccessByID(ctx context.Context, id uint) (*models.ApplicationAccess, error) {
	var a models.ApplicationAccess
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindActiveAppAccess looks up the single active grant for a (user, app)
// pair. Nil without error when there is none.
func (r *Repo) FindActiveAppAccess(ctx context.Context, userName, applicationName string) (*models.ApplicationAccess, error) {
	var a models.ApplicationAccess
	err := r.DB.WithContext(ctx).
		Where("user_name = ? AND application_name = ? AND status = ?", userName, applicationName, models.AccessActive).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindAppAccessByKey matches the natural key regardless of status, for the
// CSV upsert path.
func (r *Repo) FindAppAccessByKey(ctx context.Context, userName, applicationName string) (*models.ApplicationAccess, error) {
	var a models.ApplicationAccess
	err := r.DB.WithContext(ctx).
		Where("user_name = ? AND application_name = ?", userName, applicationName).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) ListAppAccess(ctx context.Context, userName, applicationName, status string) ([]models.ApplicationAccess, error) {
	tx := r.DB.WithContext(ctx).Model(&models.ApplicationAccess{}).Order("assign_date DESC")
	if userName != "" {
		tx = tx.Where("user_name = ?", userName)
	}
	if applicationName != "" {
		tx = tx.Where("application_name = ?", applicationName)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var rows []models.ApplicationAccess
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) AllAppAccess(ctx context.Context) ([]models.ApplicationAccess, error) {
	var rows []models.ApplicationAccess
	err := r.DB.WithContext(ctx).Order("user_name, application_name").Find(&rows).Error
	return rows, err
}

// GitHub access

func (r *Repo) CreateGitHubAccess(ctx context.Context, g *models.GitHubAccess) error {
	return r.DB.WithContext(ctx).Create(g).Error
}

func (r *Repo) SaveGitHubAccess(ctx context.Context, g *models.GitHubAccess) error {
	return r.DB.WithContext(ctx).Save(g).Error
}

func (r *Repo) FindGitHubAccessByID(ctx context.Context, id uint) (*models.GitHubAccess, error) {
	var g models.GitHubAccess
	if err := r.DB.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repo) FindActiveGitHubAccess(ctx context.Context, userName, org, repo string) (*models.GitHubAccess, error) {
	var g models.GitHubAccess
	err := r.DB.WithContext(ctx).
		Where("user_name = ? AND organization_name = ? AND repo_name = ? AND status = ?", userName, org, repo, models.AccessActive).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repo) FindGitHubAccessByKey(ctx context.Context, userName, org, repo string) (*models.GitHubAccess, error) {
	var g models.GitHubAccess
	err := r.DB.WithContext(ctx).
		Where("user_name = ? AND organization_name = ? AND repo_name = ?", userName, org, repo).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repo) ListGitHubAccess(ctx context.Context, userName, org, status string) ([]models.GitHubAccess, error) {
	tx := r.DB.WithContext(ctx).Model(&models.GitHubAccess{}).Order("assign_date DESC")
	if userName != "" {
		tx = tx.Where("user_name = ?", userName)
	}
	if org != "" {
		tx = tx.Where("organization_name = ?", org)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var rows []models.GitHubAccess
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) AllGitHubAccess(ctx context.Context) ([]models.GitHubAccess, error) {
	var rows []models.GitHubAccess
	err := r.DB.WithContext(ctx).Order("user_name, organization_name, repo_name").Find(&rows).Error
	return rows, err
}

// AccessStatistics aggregates grant counters for the dashboard.
type AccessStatistics struct {
	ApplicationActive  int64            `json:"applicationActive"`
	ApplicationRevoked int64            `json:"applicationRevoked"`
	GitHubActive       int64            `json:"githubActive"`
	GitHubRevoked      int64            `json:"githubRevoked"`
	ByAccessLevel      map[string]int64 `json:"byAccessLevel"`
	ByAccessType       map[string]int64 `json:"byAccessType"`
}

func (r *Repo) AccessStatistics(ctx context.Context) (AccessStatistics, error) {
	stats := AccessStatistics{ByAccessLevel: map[string]int64{}, ByAccessType: map[string]int64{}}

	counts := []struct {
		model  interface{}
		status string
		dst    *int64
	}{
		{&models.ApplicationAccess{}, models.AccessActive, &stats.ApplicationActive},
		{&models.ApplicationAccess{}, models.AccessRevoked, &stats.ApplicationRevoked},
		{&models.GitHubAccess{}, models.AccessActive, &stats.GitHubActive},
		{&models.GitHubAccess{}, models.AccessRevoked, &stats.GitHubRevoked},
	}
	for _, c := range counts {
		if err := r.DB.WithContext(ctx).Model(c.model).
			Where("status = ?", c.status).Count(c.dst).Error; err != nil {
			return stats, err
		}
	}

	var byLevel []GroupCount
	if err := r.DB.WithContext(ctx).Model(&models.ApplicationAccess{}).
		Select("access_level AS key, COUNT(*) AS count").
		Where("status = ?", models.AccessActive).
		Group("access_level").Scan(&byLevel).Error; err != nil {
		return stats, err
	}
	for _, g := range byLevel {
		stats.ByAccessLevel[g.Key] = g.Count
	}

	var byType []GroupCount
	if err := r.DB.WithContext(ctx).Model(&models.GitHubAccess{}).
		Select("access_type AS key, COUNT(*) AS count").
		Where("status = ?", models.AccessActive).
		Group("access_type").Scan(&byType).Error; err != nil {
		return stats, err
	}
	for _, g := range byType {
		stats.ByAccessType[g.Key] = g.Count
	}
	return stats, nil
}

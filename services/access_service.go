package services

import (
	"context"
	"fmt"

	"it_asset_manager/db"
	"it_asset_manager/models"
	"it_asset_manager/validate"
)

type AccessService struct {
	Repo *db.Repo
}

func NewAccessService(repo *db.Repo) *AccessService { return &AccessService{Repo: repo} }

// Application access

// GrantApplication creates an active grant. A user can hold at most one
// active grant per application; a second grant is refused.
func (s *AccessService) GrantApplication(ctx context.Context, username, applicationName, accessLevel, remarks string) (*models.ApplicationAccess, error) {
	if username == "" {
		return nil, fmt.Errorf("user name is required: %w", ErrInvalid)
	}
	if applicationName == "" {
		return nil, fmt.Errorf("application name is required: %w", ErrInvalid)
	}
	if err := validate.Enum("access_level", accessLevel, validate.AppAccessLevels); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}

	existing, err := s.Repo.FindActiveAppAccess(ctx, username, applicationName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s already has %s access to %s: %w",
			username, existing.AccessLevel, applicationName, ErrConflict)
	}

	access := &models.ApplicationAccess{
		UserName:        username,
		ApplicationName: applicationName,
		AccessLevel:     accessLevel,
		AssignDate:      today(),
		Status:          models.AccessActive,
		Remarks:         remarks,
	}
	if err := s.Repo.CreateAppAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

// RevokeApplication flips the grant to revoked and stamps the removal date.
// The row stays for audit.
func (s *AccessService) RevokeApplication(ctx context.Context, id uint, remarks string) (*models.ApplicationAccess, error) {
	access, err := s.Repo.FindAppAccessByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("access record not found: %w", ErrNotFound)
	}
	if access.Status == models.AccessRevoked {
		return nil, fmt.Errorf("access is already revoked: %w", ErrConflict)
	}
	access.Revoke(remarks, today())
	if err := s.Repo.SaveAppAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) UpdateApplicationLevel(ctx context.Context, id uint, newLevel, remarks string) (*models.ApplicationAccess, error) {
	access, err := s.Repo.FindAppAccessByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("access record not found: %w", ErrNotFound)
	}
	if access.Status != models.AccessActive {
		return nil, fmt.Errorf("cannot update inactive access record: %w", ErrConflict)
	}
	if err := validate.Enum("access_level", newLevel, validate.AppAccessLevels); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	access.AccessLevel = newLevel
	if remarks != "" {
		access.Remarks = remarks
	}
	if err := s.Repo.SaveAppAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) ReactivateApplication(ctx context.Context, id uint, remarks string) (*models.ApplicationAccess, error) {
	access, err := s.Repo.FindAppAccessByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("access record not found: %w", ErrNotFound)
	}
	if access.Status == models.AccessActive {
		return nil, fmt.Errorf("access is already active: %w", ErrConflict)
	}
	// 重新激活前确认没有别的 active 记录占着这个 (user, app)
	active, err := s.Repo.FindActiveAppAccess(ctx, access.UserName, access.ApplicationName)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("user %s already has an active grant for %s: %w",
			access.UserName, access.ApplicationName, ErrConflict)
	}
	access.Reactivate(remarks)
	if err := s.Repo.SaveAppAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) ListApplication(ctx context.Context, username, applicationName, status string) ([]models.ApplicationAccess, error) {
	return s.Repo.ListAppAccess(ctx, username, applicationName, status)
}

// GitHub access

func (s *AccessService) GrantGitHub(ctx context.Context, username, org, repo, accessType, remarks string) (*models.GitHubAccess, error) {
	if username == "" {
		return nil, fmt.Errorf("user name is required: %w", ErrInvalid)
	}
	if org == "" {
		return nil, fmt.Errorf("organization name is required: %w", ErrInvalid)
	}
	if repo == "" {
		return nil, fmt.Errorf("repository name is required: %w", ErrInvalid)
	}
	if err := validate.Enum("access_type", accessType, validate.GitHubAccessType); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}

	existing, err := s.Repo.FindActiveGitHubAccess(ctx, username, org, repo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s already has %s access to %s/%s: %w",
			username, existing.AccessType, org, repo, ErrConflict)
	}

	access := &models.GitHubAccess{
		UserName:         username,
		OrganizationName: org,
		RepoName:         repo,
		AccessType:       accessType,
		AssignDate:       today(),
		Status:           models.AccessActive,
		Remarks:          remarks,
	}
	if err := s.Repo.CreateGitHubAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) RevokeGitHub(ctx context.Context, id uint, remarks string) (*models.GitHubAccess, error) {
	access, err := s.Repo.FindGitHubAccessByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("access record not found: %w", ErrNotFound)
	}
	if access.Status == models.AccessRevoked {
		return nil, fmt.Errorf("access is already revoked: %w", ErrConflict)
	}
	access.Revoke(remarks, today())
	if err := s.Repo.SaveGitHubAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) UpdateGitHubType(ctx context.Context, id uint, newType, remarks string) (*models.GitHubAccess, error) {
	access, err := s.Repo.FindGitHubAccessByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("access record not found: %w", ErrNotFound)
	}
	if access.Status != models.AccessActive {
		return nil, fmt.Errorf("cannot update inactive access record: %w", ErrConflict)
	}
	if err := validate.Enum("access_type", newType, validate.GitHubAccessType); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	access.AccessType = newType
	if remarks != "" {
		access.Remarks = remarks
	}
	if err := s.Repo.SaveGitHubAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) ReactivateGitHub(ctx context.Context, id uint, remarks string) (*models.GitHubAccess, error) {
	access, err := s.Repo.FindGitHubAccessByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("access record not found: %w", ErrNotFound)
	}
	if access.Status == models.AccessActive {
		return nil, fmt.Errorf("access is already active: %w", ErrConflict)
	}
	active, err := s.Repo.FindActiveGitHubAccess(ctx, access.UserName, access.OrganizationName, access.RepoName)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("user %s already has an active grant for %s: %w",
			access.UserName, access.FullRepoName(), ErrConflict)
	}
	access.Reactivate(remarks)
	if err := s.Repo.SaveGitHubAccess(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *AccessService) ListGitHub(ctx context.Context, username, org, status string) ([]models.GitHubAccess, error) {
	return s.Repo.ListGitHubAccess(ctx, username, org, status)
}

func (s *AccessService) Statistics(ctx context.Context) (db.AccessStatistics, error) {
	return s.Repo.AccessStatistics(ctx)
}

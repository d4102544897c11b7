package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"it_asset_manager/models"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 部分唯一索引：同一 (user, app) 两条 active 直接被数据库拒绝
func TestOneActiveGrantPerUserAndApp(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	first := &models.ApplicationAccess{
		UserName: "john.doe", ApplicationName: "Jira", AccessLevel: "Read",
		AssignDate: day(2024, 1, 1), Status: models.AccessActive,
	}
	require.NoError(t, r.CreateAppAccess(ctx, first))

	dup := &models.ApplicationAccess{
		UserName: "john.doe", ApplicationName: "Jira", AccessLevel: "Admin",
		AssignDate: day(2024, 2, 1), Status: models.AccessActive,
	}
	assert.Error(t, r.CreateAppAccess(ctx, dup))

	// revoked 的历史行不占索引
	revoked := &models.ApplicationAccess{
		UserName: "john.doe", ApplicationName: "Jira", AccessLevel: "Write",
		AssignDate: day(2023, 1, 1), Status: models.AccessRevoked,
	}
	assert.NoError(t, r.CreateAppAccess(ctx, revoked))
}

func TestOneActiveGrantPerUserAndRepo(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	first := &models.GitHubAccess{
		UserName: "john.doe", OrganizationName: "acme", RepoName: "billing-api",
		AccessType: "Write", AssignDate: day(2024, 1, 1), Status: models.AccessActive,
	}
	require.NoError(t, r.CreateGitHubAccess(ctx, first))

	dup := &models.GitHubAccess{
		UserName: "john.doe", OrganizationName: "acme", RepoName: "billing-api",
		AccessType: "Read", AssignDate: day(2024, 2, 1), Status: models.AccessActive,
	}
	assert.Error(t, r.CreateGitHubAccess(ctx, dup))

	// 换个 repo 不冲突
	other := &models.GitHubAccess{
		UserName: "john.doe", OrganizationName: "acme", RepoName: "frontend",
		AccessType: "Read", AssignDate: day(2024, 2, 1), Status: models.AccessActive,
	}
	assert.NoError(t, r.CreateGitHubAccess(ctx, other))
}

func TestFindAssetByTagMissingIsNil(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	a, err := r.FindAssetByTag(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, a)

	s, err := r.FindAssetBySerial(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestListAssetsSearchAndPaging(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	seed := []models.Asset{
		{AssetTag: "LAP-0001", AssetType: "laptop", AssetCategory: "Computing", SerialNumber: "SN-1",
			Brand: "Dell", Status: models.StatusUnassigned, Condition: "good", OwnershipType: models.OwnershipPurchased},
		{AssetTag: "LAP-0002", AssetType: "laptop", AssetCategory: "Computing", SerialNumber: "SN-2",
			Brand: "Lenovo", AssignedTo: "john.doe", Status: models.StatusAssigned, Condition: "good", OwnershipType: models.OwnershipPurchased},
		{AssetTag: "RTR-0001", AssetType: "router", AssetCategory: "Network", SerialNumber: "SN-3",
			Brand: "Cisco", Status: models.StatusUnassigned, Condition: "good", OwnershipType: models.OwnershipRented},
	}
	for i := range seed {
		require.NoError(t, r.CreateAsset(ctx, &seed[i]))
	}

	res, err := r.ListAssets(ctx, AssetsQuery{Q: "Cisco"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	res, err = r.ListAssets(ctx, AssetsQuery{AssignedTo: "john.doe"})
	require.NoError(t, err)
	require.Len(t, res.Assets, 1)
	assert.Equal(t, "LAP-0002", res.Assets[0].AssetTag)

	res, err = r.ListAssets(ctx, AssetsQuery{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.Len(t, res.Assets, 2)
}

func TestAssetStatisticsWarrantyWindow(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	now := day(2024, 6, 1)

	soon := day(2024, 6, 15)
	far := day(2026, 1, 1)
	past := day(2024, 1, 1)
	seed := []models.Asset{
		{AssetTag: "A-1", AssetType: "laptop", AssetCategory: "Computing", SerialNumber: "S1",
			Status: models.StatusUnassigned, Condition: "good", OwnershipType: models.OwnershipPurchased, WarrantyExpiry: &soon},
		{AssetTag: "A-2", AssetType: "laptop", AssetCategory: "Computing", SerialNumber: "S2",
			Status: models.StatusUnassigned, Condition: "good", OwnershipType: models.OwnershipPurchased, WarrantyExpiry: &far},
		{AssetTag: "A-3", AssetType: "router", AssetCategory: "Network", SerialNumber: "S3",
			Status: models.StatusUnassigned, Condition: "good", OwnershipType: models.OwnershipRented, WarrantyExpiry: &past},
	}
	for i := range seed {
		require.NoError(t, r.CreateAsset(ctx, &seed[i]))
	}

	st, err := r.AssetStatistics(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.Total)
	assert.EqualValues(t, 1, st.ExpiringWarranties, "only warranties inside the 30-day window count")
	assert.EqualValues(t, 2, st.ByType["laptop"])
	assert.EqualValues(t, 1, st.ByOwnership[models.OwnershipRented])
}

func TestListUsersSearch(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	mail := "jane@example.com"
	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "john.doe", PasswordHash: "x", IsActive: true}))
	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "jane.roe", Email: &mail, PasswordHash: "x", IsActive: true}))

	res, err := r.ListUsers(ctx, "JANE", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "jane.roe", res.Users[0].Username)

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"it_asset_manager/models"
)

// Connect opens the Postgres database and runs migrations. The handle is
// returned to the caller and threaded through explicitly; there is no
// package-level connection.
func Connect(host, user, password, dbname, port string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Asset{}, &models.ApplicationAccess{}, &models.GitHubAccess{}); err != nil {
		return err
	}

	// 同一 (user, application) 最多一条 active 记录
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_user_app
	  ON %s (user_name, application_name)
	  WHERE status = 'active';
	`, models.ApplicationAccessTable, models.ApplicationAccessTable)).Error; err != nil {
		return err
	}

	// 同一 (user, org, repo) 最多一条 active 记录
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_user_repo
	  ON %s (user_name, organization_name, repo_name)
	  WHERE status = 'active';
	`, models.GitHubAccessTable, models.GitHubAccessTable)).Error; err != nil {
		return err
	}

	return nil
}

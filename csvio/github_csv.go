package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"gorm.io/gorm"

	"it_asset_manager/models"
	"it_asset_manager/validate"
)

var GitHubAccessColumns = []string{
	"user_name", "organization_name", "repo_name", "access_type",
	"assign_date", "remove_date", "status", "remarks",
}

var githubRequired = []string{"user_name", "organization_name", "repo_name", "access_type"}

// GitHubAccessCSV is the bulk pipeline for GitHub repository grants.
type GitHubAccessCSV struct{ DB *gorm.DB }

func NewGitHubAccessCSV(db *gorm.DB) *GitHubAccessCSV { return &GitHubAccessCSV{DB: db} }

func (c *GitHubAccessCSV) Parse(src io.Reader) ([]models.GitHubAccess, []string) {
	records, errs := readRecords(src, githubRequired)

	var rows []models.GitHubAccess
	for _, rec := range records {
		row, err := parseGitHubAccessRecord(rec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", rec.num, err))
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}

func parseGitHubAccessRecord(rec record) (models.GitHubAccess, error) {
	var g models.GitHubAccess

	g.UserName = rec.get("user_name")
	if g.UserName == "" {
		return g, fmt.Errorf("user name is required")
	}
	g.OrganizationName = rec.get("organization_name")
	if g.OrganizationName == "" {
		return g, fmt.Errorf("organization name is required")
	}
	g.RepoName = rec.get("repo_name")
	if g.RepoName == "" {
		return g, fmt.Errorf("repository name is required")
	}
	g.AccessType = rec.get("access_type")
	if g.AccessType == "" {
		return g, fmt.Errorf("access type is required")
	}
	if err := validate.Enum("access_type", g.AccessType, validate.GitHubAccessType); err != nil {
		return g, err
	}

	assign, err := validate.Date("assign_date", rec.get("assign_date"))
	if err != nil {
		return g, err
	}
	if assign == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		assign = &today
	}
	g.AssignDate = *assign

	if g.RemoveDate, err = validate.Date("remove_date", rec.get("remove_date")); err != nil {
		return g, err
	}

	g.Status = rec.get("status")
	if g.Status == "" {
		g.Status = models.AccessActive
	} else if err := validate.Enum("status", g.Status, validate.AccessStatuses); err != nil {
		return g, err
	}
	g.Remarks = rec.get("remarks")

	return g, nil
}

// Import upserts by the (user, org, repo) triple in one transaction.
func (c *GitHubAccessCSV) Import(ctx context.Context, src io.Reader) Report {
	rows, errs := c.Parse(src)
	report := Report{Errors: errs}
	if len(rows) == 0 {
		return report
	}

	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing models.GitHubAccess
			found, err := firstOrNil(
				tx.Where("user_name = ? AND organization_name = ? AND repo_name = ?",
					row.UserName, row.OrganizationName, row.RepoName),
				&existing)
			if err != nil {
				return err
			}
			if found {
				existing.AccessType = row.AccessType
				existing.AssignDate = row.AssignDate
				existing.RemoveDate = row.RemoveDate
				existing.Status = row.Status
				existing.Remarks = row.Remarks
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				report.Updated++
			} else {
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				report.Created++
			}
		}
		return nil
	})
	if err != nil {
		report.Created, report.Updated = 0, 0
		report.Errors = append(report.Errors, fmt.Sprintf("database error during import: %v", err))
	}
	return report
}

func (c *GitHubAccessCSV) Export(w io.Writer, rows []models.GitHubAccess, now time.Time) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, GitHubAccessColumns...), "days_since_assigned")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, g := range rows {
		rec := []string{
			g.UserName, g.OrganizationName, g.RepoName, g.AccessType,
			g.AssignDate.Format(dateLayout), formatDate(g.RemoveDate), g.Status, g.Remarks,
			strconv.Itoa(g.DaysSinceAssigned(now)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *GitHubAccessCSV) WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(GitHubAccessColumns); err != nil {
		return err
	}
	samples := [][]string{
		{"john.doe", "company-org", "main-application", "Admin", "2024-01-15", "", "active", "Lead developer access"},
		{"jane.smith", "company-org", "frontend-app", "Write", "2024-02-01", "", "active", "Frontend developer"},
		{"mike.wilson", "company-org", "test-automation", "Read", "2024-01-20", "2024-06-30", "revoked", "QA team member - access revoked"},
	}
	for _, row := range samples {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

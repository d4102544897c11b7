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

var AppAccessColumns = []string{
	"user_name", "application_name", "access_level",
	"assign_date", "remove_date", "status", "remarks",
}

var appAccessRequired = []string{"user_name", "application_name", "access_level"}

// AppAccessCSV is the bulk pipeline for application access grants.
type AppAccessCSV struct{ DB *gorm.DB }

func NewAppAccessCSV(db *gorm.DB) *AppAccessCSV { return &AppAccessCSV{DB: db} }

func (c *AppAccessCSV) Parse(src io.Reader) ([]models.ApplicationAccess, []string) {
	records, errs := readRecords(src, appAccessRequired)

	var rows []models.ApplicationAccess
	for _, rec := range records {
		row, err := parseAppAccessRecord(rec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", rec.num, err))
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}

func parseAppAccessRecord(rec record) (models.ApplicationAccess, error) {
	var a models.ApplicationAccess

	a.UserName = rec.get("user_name")
	if a.UserName == "" {
		return a, fmt.Errorf("user name is required")
	}
	a.ApplicationName = rec.get("application_name")
	if a.ApplicationName == "" {
		return a, fmt.Errorf("application name is required")
	}
	a.AccessLevel = rec.get("access_level")
	if a.AccessLevel == "" {
		return a, fmt.Errorf("access level is required")
	}
	if err := validate.Enum("access_level", a.AccessLevel, validate.AppAccessLevels); err != nil {
		return a, err
	}

	assign, err := validate.Date("assign_date", rec.get("assign_date"))
	if err != nil {
		return a, err
	}
	if assign == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		assign = &today
	}
	a.AssignDate = *assign

	if a.RemoveDate, err = validate.Date("remove_date", rec.get("remove_date")); err != nil {
		return a, err
	}

	a.Status = rec.get("status")
	if a.Status == "" {
		a.Status = models.AccessActive
	} else if err := validate.Enum("status", a.Status, validate.AccessStatuses); err != nil {
		return a, err
	}
	a.Remarks = rec.get("remarks")

	return a, nil
}

// Import upserts by the (user, application) pair in one transaction.
func (c *AppAccessCSV) Import(ctx context.Context, src io.Reader) Report {
	rows, errs := c.Parse(src)
	report := Report{Errors: errs}
	if len(rows) == 0 {
		return report
	}

	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing models.ApplicationAccess
			found, err := firstOrNil(
				tx.Where("user_name = ? AND application_name = ?", row.UserName, row.ApplicationName),
				&existing)
			if err != nil {
				return err
			}
			if found {
				existing.AccessLevel = row.AccessLevel
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

// Export appends the derived days_since_assigned column after the import
// columns.
func (c *AppAccessCSV) Export(w io.Writer, rows []models.ApplicationAccess, now time.Time) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, AppAccessColumns...), "days_since_assigned")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range rows {
		rec := []string{
			a.UserName, a.ApplicationName, a.AccessLevel,
			a.AssignDate.Format(dateLayout), formatDate(a.RemoveDate), a.Status, a.Remarks,
			strconv.Itoa(a.DaysSinceAssigned(now)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *AppAccessCSV) WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AppAccessColumns); err != nil {
		return err
	}
	samples := [][]string{
		{"john.doe", "Slack", "Admin", "2024-01-15", "", "active", "Workspace admin"},
		{"jane.smith", "Jira", "Write", "2024-02-01", "", "active", "Project contributor"},
		{"mike.wilson", "Confluence", "Read", "2024-01-20", "2024-06-30", "revoked", "Contract ended"},
	}
	for _, row := range samples {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"gorm.io/gorm"

	"it_asset_manager/models"
	"it_asset_manager/validate"
)

// AssetColumns is the import/export column order for assets. Import accepts
// any header that is a superset of assetRequired.
var AssetColumns = []string{
	"asset_tag", "asset_type", "asset_category", "ownership_type",
	"vendor_name", "rental_start_date", "rental_end_date", "rental_cost_monthly",
	"purchase_date", "purchase_cost", "warranty_expiry",
	"brand", "model", "serial_number",
	"processor", "ram_gb", "storage_gb", "storage_type",
	"port_count", "network_type",
	"screen_size", "resolution",
	"audio_type", "connector_type",
	"assigned_to", "assign_date", "location", "status", "condition", "remarks",
}

var assetRequired = []string{"asset_tag", "asset_type", "serial_number"}

// AssetCSV is the bulk pipeline for assets.
type AssetCSV struct{ DB *gorm.DB }

func NewAssetCSV(db *gorm.DB) *AssetCSV { return &AssetCSV{DB: db} }

// Parse validates every data row independently and returns the valid ones
// plus one error string per failed row. A bad row never blocks a good one.
func (c *AssetCSV) Parse(src io.Reader) ([]models.Asset, []string) {
	records, errs := readRecords(src, assetRequired)

	var assets []models.Asset
	for _, rec := range records {
		a, err := parseAssetRecord(rec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", rec.num, err))
			continue
		}
		assets = append(assets, a)
	}
	return assets, errs
}

func parseAssetRecord(rec record) (models.Asset, error) {
	var a models.Asset

	a.AssetTag = rec.get("asset_tag")
	if err := validate.AssetTag(a.AssetTag); err != nil {
		return a, err
	}
	a.AssetType = rec.get("asset_type")
	if a.AssetType == "" {
		return a, fmt.Errorf("asset type is required")
	}
	a.SerialNumber = rec.get("serial_number")
	if err := validate.SerialNumber(a.SerialNumber); err != nil {
		return a, err
	}

	var err error
	if a.RAMGB, err = validate.Int("ram_gb", rec.get("ram_gb")); err != nil {
		return a, err
	}
	if a.StorageGB, err = validate.Int("storage_gb", rec.get("storage_gb")); err != nil {
		return a, err
	}
	if a.PortCount, err = validate.Int("port_count", rec.get("port_count")); err != nil {
		return a, err
	}
	if a.RentalCostMonthly, err = validate.Float("rental_cost_monthly", rec.get("rental_cost_monthly")); err != nil {
		return a, err
	}
	if a.PurchaseCost, err = validate.Float("purchase_cost", rec.get("purchase_cost")); err != nil {
		return a, err
	}
	if a.RentalStartDate, err = validate.Date("rental_start_date", rec.get("rental_start_date")); err != nil {
		return a, err
	}
	if a.RentalEndDate, err = validate.Date("rental_end_date", rec.get("rental_end_date")); err != nil {
		return a, err
	}
	if a.PurchaseDate, err = validate.Date("purchase_date", rec.get("purchase_date")); err != nil {
		return a, err
	}
	if a.WarrantyExpiry, err = validate.Date("warranty_expiry", rec.get("warranty_expiry")); err != nil {
		return a, err
	}
	if a.AssignDate, err = validate.Date("assign_date", rec.get("assign_date")); err != nil {
		return a, err
	}

	a.VendorName = rec.get("vendor_name")
	a.Brand = rec.get("brand")
	a.Model = rec.get("model")
	a.Processor = rec.get("processor")
	a.StorageType = rec.get("storage_type")
	a.NetworkType = rec.get("network_type")
	a.ScreenSize = rec.get("screen_size")
	a.Resolution = rec.get("resolution")
	a.AudioType = rec.get("audio_type")
	a.ConnectorType = rec.get("connector_type")
	a.AssignedTo = rec.get("assigned_to")
	a.Location = rec.get("location")
	a.Remarks = rec.get("remarks")

	// Category is derived from the type; a supplied value is ignored in
	// favor of the lookup so the mapping stays canonical.
	a.AssetCategory = validate.CategoryForType(a.AssetType)

	a.OwnershipType = rec.get("ownership_type")
	if a.OwnershipType == "" {
		a.OwnershipType = models.OwnershipPurchased
	} else if err := validate.Enum("ownership_type", a.OwnershipType, validate.OwnershipTypes); err != nil {
		return a, err
	}

	a.Status = rec.get("status")
	if a.Status == "" {
		if a.AssignedTo != "" {
			a.Status = models.StatusAssigned
		} else {
			a.Status = models.StatusUnassigned
		}
	} else if err := validate.Enum("status", a.Status, validate.AssetStatuses); err != nil {
		return a, err
	}

	a.Condition = rec.get("condition")
	if a.Condition == "" {
		a.Condition = "good"
	} else if err := validate.Enum("condition", a.Condition, validate.AssetConditions); err != nil {
		return a, err
	}

	return a, nil
}

// Import parses src and upserts every valid row by asset tag inside one
// transaction. A serial number already belonging to a different tag is
// reported per row and skipped; a commit failure rolls the whole batch back
// and is reported as a single error.
func (c *AssetCSV) Import(ctx context.Context, src io.Reader) Report {
	rows, errs := c.Parse(src)
	report := Report{Errors: errs}
	if len(rows) == 0 {
		return report
	}

	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing models.Asset
			found, err := firstOrNil(tx.Where("asset_tag = ?", row.AssetTag), &existing)
			if err != nil {
				return err
			}

			var bySerial models.Asset
			serialFound, err := firstOrNil(tx.Where("serial_number = ?", row.SerialNumber), &bySerial)
			if err != nil {
				return err
			}
			if serialFound && (!found || bySerial.AssetTag != row.AssetTag) {
				report.Errors = append(report.Errors,
					fmt.Sprintf("serial number %s already exists for asset %s", row.SerialNumber, bySerial.AssetTag))
				continue
			}

			if found {
				applyAssetRow(&existing, row)
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

func firstOrNil(tx *gorm.DB, dst interface{}) (bool, error) {
	res := tx.Limit(1).Find(dst)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// applyAssetRow overwrites the mutable columns of dst with the imported row,
// keeping identity and timestamps.
func applyAssetRow(dst *models.Asset, src models.Asset) {
	dst.AssetType = src.AssetType
	dst.AssetCategory = src.AssetCategory
	dst.OwnershipType = src.OwnershipType
	dst.VendorName = src.VendorName
	dst.RentalStartDate = src.RentalStartDate
	dst.RentalEndDate = src.RentalEndDate
	dst.RentalCostMonthly = src.RentalCostMonthly
	dst.PurchaseDate = src.PurchaseDate
	dst.PurchaseCost = src.PurchaseCost
	dst.WarrantyExpiry = src.WarrantyExpiry
	dst.Brand = src.Brand
	dst.Model = src.Model
	dst.SerialNumber = src.SerialNumber
	dst.Processor = src.Processor
	dst.RAMGB = src.RAMGB
	dst.StorageGB = src.StorageGB
	dst.StorageType = src.StorageType
	dst.PortCount = src.PortCount
	dst.NetworkType = src.NetworkType
	dst.ScreenSize = src.ScreenSize
	dst.Resolution = src.Resolution
	dst.AudioType = src.AudioType
	dst.ConnectorType = src.ConnectorType
	dst.AssignedTo = src.AssignedTo
	dst.AssignDate = src.AssignDate
	dst.RemoveDate = src.RemoveDate
	dst.Location = src.Location
	dst.Status = src.Status
	dst.Condition = src.Condition
	dst.Remarks = src.Remarks
}

// Export writes assets in the canonical column order.
func (c *AssetCSV) Export(w io.Writer, assets []models.Asset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AssetColumns); err != nil {
		return err
	}
	for _, a := range assets {
		row := []string{
			a.AssetTag, a.AssetType, a.AssetCategory, a.OwnershipType,
			a.VendorName, formatDate(a.RentalStartDate), formatDate(a.RentalEndDate), formatFloat(a.RentalCostMonthly),
			formatDate(a.PurchaseDate), formatFloat(a.PurchaseCost), formatDate(a.WarrantyExpiry),
			a.Brand, a.Model, a.SerialNumber,
			a.Processor, formatInt(a.RAMGB), formatInt(a.StorageGB), a.StorageType,
			formatInt(a.PortCount), a.NetworkType,
			a.ScreenSize, a.Resolution,
			a.AudioType, a.ConnectorType,
			a.AssignedTo, formatDate(a.AssignDate), a.Location, a.Status, a.Condition, a.Remarks,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSample emits a template file with one example per asset family.
func (c *AssetCSV) WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AssetColumns); err != nil {
		return err
	}
	samples := [][]string{
		{"LAP0001", "laptop", "Computing", "purchased", "", "", "", "", "2024-01-15", "1200.00", "2027-01-15",
			"Dell", "Latitude 5520", "DL123456789", "Intel Core i7-1165G7", "16", "512", "SSD", "", "",
			"15.6\"", "1920x1080", "", "", "john.doe", "2024-01-20", "Office Floor 2, Desk 15", "assigned", "excellent", "Primary work laptop"},
		{"RTR0001", "router", "Network", "rented", "TechRent Solutions", "2024-01-01", "2024-12-31", "150.00", "", "", "2025-01-01",
			"Cisco", "ISR 4331", "CS987654321", "", "", "", "", "4", "Ethernet",
			"", "", "", "", "", "", "Server Room A, Rack 1", "unassigned", "good", "Main office router"},
		{"MON0001", "monitor", "Display", "purchased", "", "", "", "", "2024-02-01", "350.00", "2027-02-01",
			"Samsung", "Odyssey G5", "SM456789123", "", "", "", "", "", "",
			"27\"", "2560x1440", "", "HDMI", "jane.smith", "2024-02-05", "Office Floor 1, Desk 8", "assigned", "excellent", "Secondary monitor for development"},
	}
	for _, row := range samples {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

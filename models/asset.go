package models

import "time"

const AssetTable = "itam_assets"

// Ownership modes. Rented and leased assets carry vendor/rental fields.
const (
	OwnershipPurchased = "purchased"
	OwnershipRented    = "rented"
	OwnershipLeased    = "leased"
)

// Lifecycle status values.
const (
	StatusUnassigned  = "unassigned"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Asset is one physical asset, identified by its asset tag and hardware
// serial number. Type-specific spec columns stay nil for types they do not
// apply to (e.g. PortCount on a laptop).
type Asset struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AssetTag      string `gorm:"size:50;uniqueIndex;not null" json:"assetTag"`
	AssetType     string `gorm:"size:50;index;not null" json:"assetType"`
	AssetCategory string `gorm:"size:50;index;not null" json:"assetCategory"`

	OwnershipType     string     `gorm:"size:20;index;not null;default:'purchased'" json:"ownershipType"`
	VendorName        string     `gorm:"size:100" json:"vendorName,omitempty"`
	RentalStartDate   *time.Time `gorm:"type:date" json:"rentalStartDate,omitempty"`
	RentalEndDate     *time.Time `gorm:"type:date" json:"rentalEndDate,omitempty"`
	RentalCostMonthly *float64   `json:"rentalCostMonthly,omitempty"`
	PurchaseDate      *time.Time `gorm:"type:date" json:"purchaseDate,omitempty"`
	PurchaseCost      *float64   `json:"purchaseCost,omitempty"`
	WarrantyExpiry    *time.Time `gorm:"type:date" json:"warrantyExpiry,omitempty"`

	Brand        string `gorm:"size:50;index" json:"brand,omitempty"`
	Model        string `gorm:"size:100" json:"model,omitempty"`
	SerialNumber string `gorm:"size:100;uniqueIndex;not null" json:"serialNumber"`

	// Computing
	Processor   string `gorm:"size:100" json:"processor,omitempty"`
	RAMGB       *int   `gorm:"column:ram_gb" json:"ramGb,omitempty"`
	StorageGB   *int   `gorm:"column:storage_gb" json:"storageGb,omitempty"`
	StorageType string `gorm:"size:20" json:"storageType,omitempty"`

	// Network
	PortCount   *int   `json:"portCount,omitempty"`
	NetworkType string `gorm:"size:50" json:"networkType,omitempty"`

	// Display
	ScreenSize string `gorm:"size:20" json:"screenSize,omitempty"`
	Resolution string `gorm:"size:20" json:"resolution,omitempty"`

	// Audio/Video
	AudioType     string `gorm:"size:50" json:"audioType,omitempty"`
	ConnectorType string `gorm:"size:50" json:"connectorType,omitempty"`

	AssignedTo string     `gorm:"size:100;index" json:"assignedTo,omitempty"`
	AssignDate *time.Time `gorm:"type:date" json:"assignDate,omitempty"`
	RemoveDate *time.Time `gorm:"type:date" json:"removeDate,omitempty"`
	Location   string     `gorm:"size:100;index" json:"location,omitempty"`

	Status    string `gorm:"size:20;index;not null;default:'unassigned'" json:"status"`
	Condition string `gorm:"size:20;index;not null;default:'good'" json:"condition"`
	Remarks   string `gorm:"type:text" json:"remarks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string { return AssetTable }

// IsAssigned reports whether the asset is currently held by someone.
// status == assigned iff assigned_to is set and no remove_date superseded it.
func (a *Asset) IsAssigned() bool {
	return a.Status == StatusAssigned && a.AssignedTo != ""
}

func (a *Asset) IsRental() bool {
	return a.OwnershipType == OwnershipRented || a.OwnershipType == OwnershipLeased
}

func (a *Asset) IsWarrantyExpired(now time.Time) bool {
	if a.WarrantyExpiry == nil {
		return false
	}
	return now.After(*a.WarrantyExpiry)
}

// RentalDaysRemaining returns the whole days left on the rental, floored at
// zero. Nil when the asset is not rented or has no end date.
func (a *Asset) RentalDaysRemaining(now time.Time) *int {
	if !a.IsRental() || a.RentalEndDate == nil {
		return nil
	}
	d := int(a.RentalEndDate.Sub(now).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return &d
}

// AssignTo marks the asset as held by username from today.
func (a *Asset) AssignTo(username, location string, today time.Time) {
	a.AssignedTo = username
	a.AssignDate = &today
	a.RemoveDate = nil
	a.Status = StatusAssigned
	if location != "" {
		a.Location = location
	}
}

// Unassign releases the asset. assigned_to is kept for history.
func (a *Asset) Unassign(today time.Time) {
	a.RemoveDate = &today
	a.Status = StatusUnassigned
}

func (a *Asset) Retire(remarks string, today time.Time) {
	if a.IsAssigned() {
		a.Unassign(today)
	}
	a.Status = StatusRetired
	if remarks != "" {
		a.Remarks = remarks
	}
}

func (a *Asset) SetMaintenance(remarks string) {
	a.Status = StatusMaintenance
	if remarks != "" {
		a.Remarks = remarks
	}
}

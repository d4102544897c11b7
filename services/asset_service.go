package services

import (
	"context"
	"fmt"
	"time"

	"it_asset_manager/db"
	"it_asset_manager/models"
	"it_asset_manager/validate"
)

// AssetInput carries raw form/JSON field values. Everything arrives as a
// string and goes through the validate package before it touches the model.
type AssetInput struct {
	AssetTag          string `json:"assetTag"`
	AssetType         string `json:"assetType"`
	OwnershipType     string `json:"ownershipType"`
	VendorName        string `json:"vendorName"`
	RentalStartDate   string `json:"rentalStartDate"`
	RentalEndDate     string `json:"rentalEndDate"`
	RentalCostMonthly string `json:"rentalCostMonthly"`
	PurchaseDate      string `json:"purchaseDate"`
	PurchaseCost      string `json:"purchaseCost"`
	WarrantyExpiry    string `json:"warrantyExpiry"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	SerialNumber      string `json:"serialNumber"`
	Processor         string `json:"processor"`
	RAMGB             string `json:"ramGb"`
	StorageGB         string `json:"storageGb"`
	StorageType       string `json:"storageType"`
	PortCount         string `json:"portCount"`
	NetworkType       string `json:"networkType"`
	ScreenSize        string `json:"screenSize"`
	Resolution        string `json:"resolution"`
	AudioType         string `json:"audioType"`
	ConnectorType     string `json:"connectorType"`
	Location          string `json:"location"`
	Condition         string `json:"condition"`
	Remarks           string `json:"remarks"`
}

type AssetService struct {
	Repo *db.Repo
}

func NewAssetService(repo *db.Repo) *AssetService { return &AssetService{Repo: repo} }

// Create validates the input, refuses duplicate tags and serials, and
// inserts the asset. New assets start unassigned.
func (s *AssetService) Create(ctx context.Context, in AssetInput) (*models.Asset, error) {
	var a models.Asset
	if err := applyAssetInput(&a, in); err != nil {
		return nil, err
	}

	if existing, err := s.Repo.FindAssetByTag(ctx, a.AssetTag); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("asset tag %s already exists: %w", a.AssetTag, ErrConflict)
	}
	if existing, err := s.Repo.FindAssetBySerial(ctx, a.SerialNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("serial number %s already exists: %w", a.SerialNumber, ErrConflict)
	}

	a.Status = models.StatusUnassigned
	if err := s.Repo.CreateAsset(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update overwrites the editable fields, re-checking tag and serial
// uniqueness against every other asset.
func (s *AssetService) Update(ctx context.Context, id uint, in AssetInput) (*models.Asset, error) {
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}

	if in.AssetTag != a.AssetTag {
		if existing, err := s.Repo.FindAssetByTag(ctx, in.AssetTag); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("asset tag %s already exists: %w", in.AssetTag, ErrConflict)
		}
	}
	if in.SerialNumber != a.SerialNumber {
		if existing, err := s.Repo.FindAssetBySerial(ctx, in.SerialNumber); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("serial number %s already exists: %w", in.SerialNumber, ErrConflict)
		}
	}

	if err := applyAssetInput(a, in); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Delete(ctx context.Context, id uint) (*models.Asset, error) {
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}
	if err := s.Repo.DeleteAsset(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Get(ctx context.Context, id uint) (*models.Asset, error) {
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}
	return a, nil
}

func (s *AssetService) List(ctx context.Context, q db.AssetsQuery) (db.ListAssetsResult, error) {
	return s.Repo.ListAssets(ctx, q)
}

// Assign hands the asset to a user. Assigning an already-assigned asset is
// an error, never a silent reassignment.
func (s *AssetService) Assign(ctx context.Context, id uint, username, location string) (*models.Asset, error) {
	if err := validate.Username(username); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}
	if a.IsAssigned() {
		return nil, fmt.Errorf("asset %s is already assigned to %s: %w", a.AssetTag, a.AssignedTo, ErrConflict)
	}
	a.AssignTo(username, location, today())
	if err := s.Repo.SaveAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Unassign(ctx context.Context, id uint) (*models.Asset, error) {
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}
	if !a.IsAssigned() {
		return nil, fmt.Errorf("asset %s is not currently assigned: %w", a.AssetTag, ErrConflict)
	}
	a.Unassign(today())
	if err := s.Repo.SaveAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) SetMaintenance(ctx context.Context, id uint, remarks string) (*models.Asset, error) {
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}
	a.SetMaintenance(remarks)
	if err := s.Repo.SaveAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Retire(ctx context.Context, id uint, remarks string) (*models.Asset, error) {
	a, err := s.Repo.FindAssetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset not found: %w", ErrNotFound)
	}
	a.Retire(remarks, today())
	if err := s.Repo.SaveAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Statistics(ctx context.Context) (db.AssetStatistics, error) {
	return s.Repo.AssetStatistics(ctx, time.Now().UTC())
}

// applyAssetInput parses and writes every editable field onto a. The
// category always comes from the type lookup, never from the caller.
func applyAssetInput(a *models.Asset, in AssetInput) error {
	if err := validate.AssetTag(in.AssetTag); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if in.AssetType == "" {
		return fmt.Errorf("missing required field: asset_type: %w", ErrInvalid)
	}
	if err := validate.SerialNumber(in.SerialNumber); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}

	a.AssetTag = in.AssetTag
	a.AssetType = in.AssetType
	a.AssetCategory = validate.CategoryForType(in.AssetType)
	a.SerialNumber = in.SerialNumber

	a.OwnershipType = in.OwnershipType
	if a.OwnershipType == "" {
		a.OwnershipType = models.OwnershipPurchased
	} else if err := validate.Enum("ownership_type", a.OwnershipType, validate.OwnershipTypes); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	a.Condition = in.Condition
	if a.Condition == "" {
		a.Condition = "good"
	} else if err := validate.Enum("condition", a.Condition, validate.AssetConditions); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}

	var err error
	if a.RAMGB, err = validate.Int("ram_gb", in.RAMGB); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.StorageGB, err = validate.Int("storage_gb", in.StorageGB); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.PortCount, err = validate.Int("port_count", in.PortCount); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.RentalCostMonthly, err = validate.Float("rental_cost_monthly", in.RentalCostMonthly); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.PurchaseCost, err = validate.Float("purchase_cost", in.PurchaseCost); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.RentalStartDate, err = validate.Date("rental_start_date", in.RentalStartDate); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.RentalEndDate, err = validate.Date("rental_end_date", in.RentalEndDate); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.PurchaseDate, err = validate.Date("purchase_date", in.PurchaseDate); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if a.WarrantyExpiry, err = validate.Date("warranty_expiry", in.WarrantyExpiry); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}

	a.VendorName = in.VendorName
	a.Brand = in.Brand
	a.Model = in.Model
	a.Processor = in.Processor
	a.StorageType = in.StorageType
	a.NetworkType = in.NetworkType
	a.ScreenSize = in.ScreenSize
	a.Resolution = in.Resolution
	a.AudioType = in.AudioType
	a.ConnectorType = in.ConnectorType
	a.Location = in.Location
	a.Remarks = in.Remarks
	return nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

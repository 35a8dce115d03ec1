package models

import "time"

// AssetType is the closed set of supported asset categories.
type AssetType string

const (
	AssetRealEstate AssetType = "real_estate"
	AssetStock      AssetType = "stock"
	AssetCrypto     AssetType = "cryptocurrency"
	AssetVehicle    AssetType = "vehicle"
	AssetOther      AssetType = "other"
)

// IsValid reports whether t is one of the known asset types.
func (t AssetType) IsValid() bool {
	switch t {
	case AssetRealEstate, AssetStock, AssetCrypto, AssetVehicle, AssetOther:
		return true
	}
	return false
}

// Asset represents a single tracked holding owned by exactly one user.
type Asset struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Type        AssetType `json:"type"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AssetPatch carries the fields of a partial update. Nil fields are left
// untouched by the store.
type AssetPatch struct {
	Name        *string    `json:"name"`
	Type        *AssetType `json:"type"`
	Value       *float64   `json:"value"`
	Description *string    `json:"description"`
}

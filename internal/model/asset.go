package model

import "time"

// AssetType classifies an asset for tax purposes.
type AssetType string

// Supported asset types.
const (
	AssetTypeStock       AssetType = "stock"
	AssetTypeREIT        AssetType = "reit"
	AssetTypeETF         AssetType = "etf"
	AssetTypeCrypto      AssetType = "crypto"
	AssetTypeFixedIncome AssetType = "fixed_income"
	AssetTypeOther       AssetType = "other"
)

// Asset represents the aggregate position for one ticker: total quantity held
// and the weighted mean acquisition cost per unit (fees included).
//
// AverageCost only changes on a buy or on the revert of a buy; sells and
// dividends never touch it. Quantity never goes below zero. An asset that has
// been fully sold keeps its row with quantity zero for history.
type Asset struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	Quantity    float64   `json:"quantity"`
	AverageCost float64   `json:"averageCost"`
	Currency    string    `json:"currency"`
	Type        AssetType `json:"type"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

package model

import "time"

// ClosedPosition is the realized outcome of one sell transaction. It is
// derived on demand and never stored.
//
// BuyPrice is the asset's average cost at computation time, not the cost
// basis that was in effect when the sale happened. That approximation is
// inherited from the dashboard's accounting model and is documented, not
// corrected here.
type ClosedPosition struct {
	Ticker        string    `json:"ticker"`
	AssetType     AssetType `json:"assetType"`
	SellDate      time.Time `json:"sellDate"`
	Quantity      float64   `json:"quantity"`
	BuyPrice      float64   `json:"buyPrice"`
	SellPrice     float64   `json:"sellPrice"`
	Fees          float64   `json:"fees"`
	Result        float64   `json:"result"`
	ResultPercent float64   `json:"resultPercent"`
}

// TypeBreakdown aggregates realized results for one asset-type tax class.
// Loss is kept negative.
type TypeBreakdown struct {
	Profit    float64 `json:"profit"`
	Loss      float64 `json:"loss"`
	NetResult float64 `json:"netResult"`
	TotalSold float64 `json:"totalSold"`
	Rate      float64 `json:"rate"`
	Exempt    bool    `json:"exempt"`
	Tax       float64 `json:"tax"`
}

// TaxSummary is the aggregated capital-gains estimate for a query window,
// under Brazilian individual-taxpayer rules.
//
// IsExempt reflects only the stock-class sold total and is kept independent
// of the per-type exemption for display purposes.
type TaxSummary struct {
	TotalProfit  float64                     `json:"totalProfit"`
	TotalLoss    float64                     `json:"totalLoss"`
	NetResult    float64                     `json:"netResult"`
	TotalSold    float64                     `json:"totalSold"`
	EstimatedTax float64                     `json:"estimatedTax"`
	IsExempt     bool                        `json:"isExempt"`
	ByType       map[AssetType]TypeBreakdown `json:"byType"`
}

// TaxSnapshot is a materialized TaxSummary for one calendar month, refreshed
// by the scheduler so the dashboard does not recompute it on every request.
type TaxSnapshot struct {
	ID           string    `json:"id"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	TotalProfit  float64   `json:"totalProfit"`
	TotalLoss    float64   `json:"totalLoss"`
	NetResult    float64   `json:"netResult"`
	TotalSold    float64   `json:"totalSold"`
	EstimatedTax float64   `json:"estimatedTax"`
	IsExempt     bool      `json:"isExempt"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/numeric"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/repository"
)

// Brazilian individual-taxpayer capital gains parameters.
const (
	// ExemptionThreshold is the sold-value ceiling (R$) under which an
	// individual's stock sales in the queried window are tax exempt.
	ExemptionThreshold = 20000.0

	// RateStock applies to stock sales above the exemption threshold and to
	// every class without its own rate.
	RateStock = 0.15

	// RateREIT applies to REIT (FII) and ETF sales, which have no exemption.
	RateREIT = 0.20
)

// TaxService derives realized gains/losses and an estimated capital-gains
// tax from the ledger's sell history. It reads transactions and asset rows
// and never mutates them.
//
// The cost basis of each closed position is the asset's average cost at
// computation time, not the average in effect when the sale happened. That
// approximation comes from the dashboard's single-aggregate accounting model
// and is kept as is.
type TaxService struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewTaxService creates a new TaxService with the provided repository dependencies.
func NewTaxService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *TaxService {
	return &TaxService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// ClosedPositions computes one realized result per historical sell inside
// the window. A zero startDate or endDate leaves that side open.
func (s *TaxService) ClosedPositions(ctx context.Context, startDate, endDate time.Time) ([]model.ClosedPosition, error) {
	sells, assetsByTicker, err := s.loadSellsAndAssets(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	positions := make([]model.ClosedPosition, 0, len(sells))
	for _, sell := range sells {
		asset, ok := assetsByTicker[sell.Ticker]
		if !ok {
			// The sell's asset row is gone; nothing to price against.
			continue
		}
		positions = append(positions, closePosition(sell, asset))
	}

	return positions, nil
}

// Summary aggregates the window's closed positions by asset type and applies
// the Brazilian individual tax rules per class.
func (s *TaxService) Summary(ctx context.Context, startDate, endDate time.Time) (model.TaxSummary, error) {
	positions, err := s.ClosedPositions(ctx, startDate, endDate)
	if err != nil {
		return model.TaxSummary{}, err
	}

	byType := make(map[model.AssetType]model.TypeBreakdown)
	for _, p := range positions {
		breakdown := byType[p.AssetType]
		if p.Result > 0 {
			breakdown.Profit += p.Result
		} else {
			breakdown.Loss += p.Result
		}
		breakdown.TotalSold += p.SellPrice * p.Quantity
		byType[p.AssetType] = breakdown
	}

	summary := model.TaxSummary{ByType: byType}

	for assetType, breakdown := range byType {
		breakdown.NetResult = breakdown.Profit + breakdown.Loss
		breakdown.Rate = taxRate(assetType)
		breakdown.Exempt = typeExempt(assetType, breakdown.TotalSold)

		if !breakdown.Exempt && breakdown.NetResult > 0 {
			breakdown.Tax = numeric.Round(breakdown.Rate*breakdown.NetResult, numeric.CurrencyDecimals)
		}

		breakdown.Profit = numeric.Round(breakdown.Profit, numeric.CurrencyDecimals)
		breakdown.Loss = numeric.Round(breakdown.Loss, numeric.CurrencyDecimals)
		breakdown.NetResult = numeric.Round(breakdown.NetResult, numeric.CurrencyDecimals)
		breakdown.TotalSold = numeric.Round(breakdown.TotalSold, numeric.CurrencyDecimals)
		byType[assetType] = breakdown

		summary.TotalProfit += breakdown.Profit
		summary.TotalLoss += breakdown.Loss
		summary.TotalSold += breakdown.TotalSold
		summary.EstimatedTax += breakdown.Tax
	}

	summary.TotalProfit = numeric.Round(summary.TotalProfit, numeric.CurrencyDecimals)
	summary.TotalLoss = numeric.Round(summary.TotalLoss, numeric.CurrencyDecimals)
	summary.NetResult = numeric.Round(summary.TotalProfit+summary.TotalLoss, numeric.CurrencyDecimals)
	summary.TotalSold = numeric.Round(summary.TotalSold, numeric.CurrencyDecimals)
	summary.EstimatedTax = numeric.Round(summary.EstimatedTax, numeric.CurrencyDecimals)

	// The global flag looks only at stock-class sales; it is intentionally
	// kept separate from the per-class exemption for display purposes.
	summary.IsExempt = stockSalesExempt(byType[model.AssetTypeStock].TotalSold)

	return summary, nil
}

// loadSellsAndAssets fetches the window's sell transactions and the current
// asset rows concurrently.
func (s *TaxService) loadSellsAndAssets(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, map[string]model.Asset, error) {
	var sells []model.Transaction
	var assets []model.Asset

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		sells, err = s.transactionRepo.ListSells(startDate, endDate)
		if err != nil {
			return fmt.Errorf("failed to load sell transactions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		assets, err = s.assetRepo.GetAll()
		if err != nil {
			return fmt.Errorf("failed to load assets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	assetsByTicker := make(map[string]model.Asset, len(assets))
	for _, a := range assets {
		assetsByTicker[a.Ticker] = a
	}

	return sells, assetsByTicker, nil
}

// closePosition prices one sell against the asset's current average cost.
func closePosition(sell model.Transaction, asset model.Asset) model.ClosedPosition {
	totalCost := asset.AverageCost * sell.Quantity
	totalSold := sell.Price * sell.Quantity
	result := totalSold - totalCost - sell.Fees

	var resultPercent float64
	if !numeric.IsZero(asset.AverageCost, numeric.PriceDecimals) {
		resultPercent = (sell.Price/asset.AverageCost - 1) * 100
	}

	return model.ClosedPosition{
		Ticker:        sell.Ticker,
		AssetType:     asset.Type,
		SellDate:      sell.Date,
		Quantity:      sell.Quantity,
		BuyPrice:      asset.AverageCost,
		SellPrice:     sell.Price,
		Fees:          sell.Fees,
		Result:        numeric.Round(result, numeric.CurrencyDecimals),
		ResultPercent: numeric.Round(resultPercent, numeric.CurrencyDecimals),
	}
}

// taxRate returns the capital-gains rate for an asset type.
func taxRate(assetType model.AssetType) float64 {
	switch assetType {
	case model.AssetTypeREIT, model.AssetTypeETF:
		return RateREIT
	default:
		return RateStock
	}
}

// typeExempt reports whether a class's net gain is exempt for the window.
// Only stock sales have an exemption; REIT, ETF and the residual classes
// are always taxed.
func typeExempt(assetType model.AssetType, totalSold float64) bool {
	if assetType != model.AssetTypeStock {
		return false
	}
	return stockSalesExempt(totalSold)
}

// stockSalesExempt is the single exemption rule shared by the per-class
// check and the summary's global flag.
func stockSalesExempt(totalSold float64) bool {
	return numeric.Lt(totalSold, ExemptionThreshold, numeric.CurrencyDecimals)
}

package service

import (
	"time"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/numeric"
)

// This file holds the pure position arithmetic: applying a transaction to an
// asset aggregate and reverting one from it. The functions never touch the
// database; LedgerService evaluates them fully before issuing any write so a
// rejected operation leaves the stored rows untouched.
//
// Forward and inverse share the same cost-basis helpers, so the revert math
// cannot drift from the apply math.

// costBasis returns the total acquisition cost currently carried by the asset.
func costBasis(a model.Asset) float64 {
	return a.Quantity * a.AverageCost
}

// transactionCost returns the acquisition cost a buy contributes: traded
// value plus fees.
func transactionCost(t model.Transaction) float64 {
	return t.GrossValue() + t.Fees
}

// applyBuy folds a buy into the aggregate: quantity grows and the average
// cost is recalculated as the weighted mean of the old basis and the new lot.
func applyBuy(a model.Asset, t model.Transaction) model.Asset {
	newQuantity := a.Quantity + t.Quantity
	newBasis := costBasis(a) + transactionCost(t)

	a.Quantity = numeric.Round(newQuantity, numeric.QuantityDecimals)
	a.AverageCost = newBasis / newQuantity
	return a
}

// applySell folds a sell into the aggregate. The average cost of the
// remaining lot is unchanged; only the quantity shrinks.
// Fails with ErrInsufficientQuantity when the sale exceeds the held balance.
func applySell(a model.Asset, t model.Transaction) (model.Asset, error) {
	if !numeric.Gte(a.Quantity, t.Quantity, numeric.QuantityDecimals) {
		return a, apperrors.ErrInsufficientQuantity
	}

	newQuantity := numeric.Round(a.Quantity-t.Quantity, numeric.QuantityDecimals)
	if newQuantity <= 0 {
		// Selling out completely can leave a residue of representation
		// error (or a negative zero); the position is flat.
		newQuantity = 0
	}

	a.Quantity = newQuantity
	return a, nil
}

// applyDividend validates that a position exists. Quantity and average cost
// are unchanged; the income credit is the caller's side effect, not part of
// the aggregate.
func applyDividend(a model.Asset, _ model.Transaction) (model.Asset, error) {
	if numeric.IsZero(a.Quantity, numeric.QuantityDecimals) {
		return a, apperrors.ErrNoPosition
	}
	return a, nil
}

// revertBuy undoes a buy: the lot's quantity and cost are subtracted and the
// pre-buy average cost is recovered from the remaining basis.
// Fails with ErrNegativeBalance when later sells already consumed part of the
// lot; deleting it would break traceability.
func revertBuy(a model.Asset, t model.Transaction) (model.Asset, error) {
	newQuantity := numeric.Round(a.Quantity-t.Quantity, numeric.QuantityDecimals)
	if numeric.Lt(newQuantity, 0, numeric.QuantityDecimals) {
		return a, apperrors.ErrNegativeBalance
	}

	if numeric.IsZero(newQuantity, numeric.QuantityDecimals) {
		a.Quantity = 0
		a.AverageCost = 0
		return a, nil
	}

	previousBasis := costBasis(a) - transactionCost(t)
	a.Quantity = newQuantity
	a.AverageCost = previousBasis / newQuantity
	return a, nil
}

// revertSell undoes a sell: the quantity comes back and the average cost is
// untouched, exactly mirroring applySell.
func revertSell(a model.Asset, t model.Transaction) model.Asset {
	a.Quantity = numeric.Round(a.Quantity+t.Quantity, numeric.QuantityDecimals)
	return a
}

// applyTransaction dispatches a transaction to its forward fold.
func applyTransaction(a model.Asset, t model.Transaction) (model.Asset, error) {
	switch t.Kind {
	case model.KindBuy:
		return applyBuy(a, t), nil
	case model.KindSell:
		return applySell(a, t)
	case model.KindDividend:
		return applyDividend(a, t)
	default:
		return a, apperrors.ErrUnknownTransactionKind
	}
}

// revertTransaction dispatches a transaction to its inverse fold.
// Reverting a dividend is a no-op on the aggregate; only its income side
// effect has to be cleaned up, which is the caller's job.
func revertTransaction(a model.Asset, t model.Transaction) (model.Asset, error) {
	switch t.Kind {
	case model.KindBuy:
		return revertBuy(a, t)
	case model.KindSell:
		return revertSell(a, t), nil
	case model.KindDividend:
		return a, nil
	default:
		return a, apperrors.ErrUnknownTransactionKind
	}
}

// newAssetFromBuy opens a position from its first buy.
func newAssetFromBuy(id string, t model.Transaction, currency string, assetType model.AssetType, now time.Time) model.Asset {
	return model.Asset{
		ID:          id,
		Ticker:      t.Ticker,
		Quantity:    numeric.Round(t.Quantity, numeric.QuantityDecimals),
		AverageCost: transactionCost(t) / t.Quantity,
		Currency:    currency,
		Type:        assetType,
		LastUpdate:  now,
	}
}

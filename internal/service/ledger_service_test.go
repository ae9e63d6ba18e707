package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/numeric"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/testutil"
)

func buyRequest(ticker string, quantity, price, fees float64) request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		Ticker:   ticker,
		Kind:     "buy",
		Date:     "2024-01-15",
		Quantity: quantity,
		Price:    price,
		Fees:     fees,
	}
}

func sellRequest(ticker string, quantity, price, fees float64) request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		Ticker:   ticker,
		Kind:     "sell",
		Date:     "2024-02-15",
		Quantity: quantity,
		Price:    price,
		Fees:     fees,
	}
}

// TestLedgerService_RegisterTransaction_Buy tests buy registration.
//
// WHY: A buy both opens positions and feeds the weighted average; the two
// paths (new ticker, existing ticker) must land on the same aggregate state.
func TestLedgerService_RegisterTransaction_Buy(t *testing.T) {
	t.Run("first buy opens the position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		// Execute
		tx, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0))

		// Assert
		if err != nil {
			t.Fatalf("RegisterTransaction() returned unexpected error: %v", err)
		}
		if tx.ID == "" {
			t.Error("Expected transaction to be assigned an ID")
		}

		asset, err := svc.GetAsset("PETR4")
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if !numeric.Eq(asset.Quantity, 100, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity 100, got %v", asset.Quantity)
		}
		if !numeric.Eq(asset.AverageCost, 30, numeric.PriceDecimals) {
			t.Errorf("Expected average cost 30, got %v", asset.AverageCost)
		}
		if asset.Currency != "BRL" {
			t.Errorf("Expected default currency BRL, got %s", asset.Currency)
		}
	})

	t.Run("second buy recalculates the weighted average", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0)); err != nil {
			t.Fatalf("first buy failed: %v", err)
		}

		// Execute
		_, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 40, 0))

		// Assert
		if err != nil {
			t.Fatalf("RegisterTransaction() returned unexpected error: %v", err)
		}

		asset, err := svc.GetAsset("PETR4")
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if !numeric.Eq(asset.Quantity, 200, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity 200, got %v", asset.Quantity)
		}
		if !numeric.Eq(asset.AverageCost, 35, numeric.PriceDecimals) {
			t.Errorf("Expected weighted average 35, got %v", asset.AverageCost)
		}
	})

	t.Run("buy appends to the transaction log", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		// Execute
		tx, err := svc.RegisterTransaction(context.Background(), buyRequest("VALE3", 50, 61.20, 4.90))
		if err != nil {
			t.Fatalf("RegisterTransaction() returned unexpected error: %v", err)
		}

		// Assert
		stored, err := svc.GetTransaction(tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.Ticker != "VALE3" || stored.Quantity != 50 || stored.Fees != 4.90 {
			t.Errorf("Stored transaction does not match input: %+v", stored)
		}
	})
}

// TestLedgerService_RegisterTransaction_Sell tests sell registration.
//
// WHY: A rejected sell must leave both the asset aggregate and the
// transaction log untouched; the validate-then-commit ordering is the only
// thing standing between a typo and a corrupted position.
func TestLedgerService_RegisterTransaction_Sell(t *testing.T) {
	t.Run("sell reduces quantity and keeps average cost", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 200, 35, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		// Execute
		_, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 50, 50, 0))

		// Assert
		if err != nil {
			t.Fatalf("RegisterTransaction() returned unexpected error: %v", err)
		}

		asset, _ := svc.GetAsset("PETR4")
		if !numeric.Eq(asset.Quantity, 150, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity 150, got %v", asset.Quantity)
		}
		if !numeric.Eq(asset.AverageCost, 35, numeric.PriceDecimals) {
			t.Errorf("Expected average cost unchanged at 35, got %v", asset.AverageCost)
		}
	})

	t.Run("oversell is rejected and state is unchanged", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 10, 35, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		// Execute
		_, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 11, 50, 0))

		// Assert
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Fatalf("Expected ErrInsufficientQuantity, got %v", err)
		}
		if err.Error() != "Quantidade insuficiente" {
			t.Errorf("Expected verbatim message 'Quantidade insuficiente', got %q", err.Error())
		}

		asset, _ := svc.GetAsset("PETR4")
		if !numeric.Eq(asset.Quantity, 10, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity unchanged at 10, got %v", asset.Quantity)
		}

		transactions, _ := svc.GetTransactions("PETR4")
		if len(transactions) != 1 {
			t.Errorf("Expected only the buy in the log, got %d entries", len(transactions))
		}
	})

	t.Run("sell against unknown ticker is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		// Execute
		_, err := svc.RegisterTransaction(context.Background(), sellRequest("GHOST3", 10, 50, 0))

		// Assert
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Errorf("Expected ErrInsufficientQuantity, got %v", err)
		}
	})

	t.Run("selling out keeps the asset row at quantity zero", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		// Execute
		if _, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 100, 40, 0)); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		// Assert: row retained for history, not deleted
		asset, err := svc.GetAsset("PETR4")
		if err != nil {
			t.Fatalf("Expected asset row to survive a full sell, got error: %v", err)
		}
		if asset.Quantity != 0 {
			t.Errorf("Expected quantity exactly 0, got %v", asset.Quantity)
		}
	})
}

// TestLedgerService_RegisterTransaction_Dividend tests dividend registration.
//
// WHY: Dividends must leave the position untouched while crediting the
// cash-flow ledger, and must be rejected on flat or unknown positions.
func TestLedgerService_RegisterTransaction_Dividend(t *testing.T) {
	dividendRequest := func(ticker string, quantity, perUnit float64) request.CreateTransactionRequest {
		return request.CreateTransactionRequest{
			Ticker:   ticker,
			Kind:     "dividend",
			Date:     "2024-03-10",
			Quantity: quantity,
			Price:    perUnit,
		}
	}

	t.Run("dividend keeps the position and credits cash flow", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		cashFlow := testutil.NewTestCashFlowService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("HGLG11", 100, 160, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}

		// Execute
		tx, err := svc.RegisterTransaction(context.Background(), dividendRequest("HGLG11", 100, 1.10))

		// Assert
		if err != nil {
			t.Fatalf("RegisterTransaction() returned unexpected error: %v", err)
		}

		asset, _ := svc.GetAsset("HGLG11")
		if !numeric.Eq(asset.Quantity, 100, numeric.QuantityDecimals) || !numeric.Eq(asset.AverageCost, 160, numeric.PriceDecimals) {
			t.Errorf("Expected position unchanged, got quantity %v cost %v", asset.Quantity, asset.AverageCost)
		}

		entries, err := cashFlow.GetAllEntries()
		if err != nil {
			t.Fatalf("GetAllEntries() returned unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 cash flow entry, got %d", len(entries))
		}
		if !numeric.Eq(entries[0].Amount, 110, numeric.CurrencyDecimals) {
			t.Errorf("Expected credited amount 110, got %v", entries[0].Amount)
		}
		if entries[0].TransactionID != tx.ID {
			t.Errorf("Expected entry linked to transaction %s, got %s", tx.ID, entries[0].TransactionID)
		}
	})

	t.Run("dividend on unknown ticker is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		// Execute
		_, err := svc.RegisterTransaction(context.Background(), dividendRequest("GHOST3", 100, 1.10))

		// Assert
		if !errors.Is(err, apperrors.ErrNoPosition) {
			t.Errorf("Expected ErrNoPosition, got %v", err)
		}
	})

	t.Run("dividend on a sold-out position is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if _, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 100, 40, 0)); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		// Execute
		_, err := svc.RegisterTransaction(context.Background(), dividendRequest("PETR4", 100, 1.10))

		// Assert
		if !errors.Is(err, apperrors.ErrNoPosition) {
			t.Errorf("Expected ErrNoPosition, got %v", err)
		}
	})
}

// TestLedgerService_UpdateTransaction tests the revert-then-reapply edit.
//
// WHY: Edit is the most delicate ledger operation: a failed edit must leave
// the stored position and log rows exactly as they were.
func TestLedgerService_UpdateTransaction(t *testing.T) {
	t.Run("editing a buy quantity reshapes the position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0)); err != nil {
			t.Fatalf("first buy failed: %v", err)
		}
		second, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 40, 0))
		if err != nil {
			t.Fatalf("second buy failed: %v", err)
		}

		// Execute: shrink the second lot from 100 to 50
		newQuantity := 50.0
		_, err = svc.UpdateTransaction(context.Background(), second.ID, request.UpdateTransactionRequest{
			Quantity: &newQuantity,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}

		asset, _ := svc.GetAsset("PETR4")
		if !numeric.Eq(asset.Quantity, 150, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity 150, got %v", asset.Quantity)
		}
		// (100*30 + 50*40) / 150 = 33.33...
		if !numeric.Eq(asset.AverageCost, 33.33, numeric.PriceDecimals) {
			t.Errorf("Expected average cost 33.33, got %v", asset.AverageCost)
		}
	})

	t.Run("rejected edit leaves position and log untouched", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		sell, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 50, 50, 0))
		if err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		// Execute: grow the sell past the held quantity
		newQuantity := 150.0
		_, err = svc.UpdateTransaction(context.Background(), sell.ID, request.UpdateTransactionRequest{
			Quantity: &newQuantity,
		})

		// Assert
		if !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Fatalf("Expected ErrInsufficientQuantity, got %v", err)
		}

		asset, _ := svc.GetAsset("PETR4")
		if !numeric.Eq(asset.Quantity, 50, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity unchanged at 50, got %v", asset.Quantity)
		}

		stored, _ := svc.GetTransaction(sell.ID)
		if stored.Quantity != 50 {
			t.Errorf("Expected stored sell quantity unchanged at 50, got %v", stored.Quantity)
		}
	})

	t.Run("editing an unknown transaction returns not found", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		newQuantity := 10.0

		// Execute
		_, err := svc.UpdateTransaction(context.Background(), testutil.MakeID(), request.UpdateTransactionRequest{
			Quantity: &newQuantity,
		})

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("editing a dividend rebuilds its cash flow credit", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		cashFlow := testutil.NewTestCashFlowService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("HGLG11", 100, 160, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		dividend, err := svc.RegisterTransaction(context.Background(), request.CreateTransactionRequest{
			Ticker: "HGLG11", Kind: "dividend", Date: "2024-03-10", Quantity: 100, Price: 1.10,
		})
		if err != nil {
			t.Fatalf("dividend failed: %v", err)
		}

		// Execute: change the per-unit payout
		newPrice := 1.25
		_, err = svc.UpdateTransaction(context.Background(), dividend.ID, request.UpdateTransactionRequest{
			Price: &newPrice,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}

		entries, _ := cashFlow.GetAllEntries()
		if len(entries) != 1 {
			t.Fatalf("Expected exactly 1 cash flow entry after edit, got %d", len(entries))
		}
		if !numeric.Eq(entries[0].Amount, 125, numeric.CurrencyDecimals) {
			t.Errorf("Expected rebuilt credit of 125, got %v", entries[0].Amount)
		}
	})
}

// TestLedgerService_DeleteTransaction tests deletion with revert validation.
//
// WHY: Deletes are the revert path: they must restore the pre-transaction
// state exactly, and refuse when intervening sells made the revert unsafe.
func TestLedgerService_DeleteTransaction(t *testing.T) {
	t.Run("deleting a sell restores the quantity", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 200, 35, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		sell, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 50, 50, 0))
		if err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		// Execute
		if err := svc.DeleteTransaction(context.Background(), sell.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		// Assert
		asset, _ := svc.GetAsset("PETR4")
		if !numeric.Eq(asset.Quantity, 200, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity restored to 200, got %v", asset.Quantity)
		}

		if _, err := svc.GetTransaction(sell.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected transaction row removed, got %v", err)
		}
	})

	t.Run("deleting a consumed buy is rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		buy, err := svc.RegisterTransaction(context.Background(), buyRequest("PETR4", 100, 30, 0))
		if err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		if _, err := svc.RegisterTransaction(context.Background(), sellRequest("PETR4", 60, 50, 0)); err != nil {
			t.Fatalf("sell failed: %v", err)
		}

		// Execute: only 40 held, the 100-lot cannot come out
		err = svc.DeleteTransaction(context.Background(), buy.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrNegativeBalance) {
			t.Fatalf("Expected ErrNegativeBalance, got %v", err)
		}
		if err.Error() != "Saldo ficaria negativo" {
			t.Errorf("Expected verbatim message 'Saldo ficaria negativo', got %q", err.Error())
		}

		asset, _ := svc.GetAsset("PETR4")
		if !numeric.Eq(asset.Quantity, 40, numeric.QuantityDecimals) {
			t.Errorf("Expected quantity unchanged at 40, got %v", asset.Quantity)
		}
	})

	t.Run("deleting a dividend removes its cash flow credit", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		cashFlow := testutil.NewTestCashFlowService(t, db)

		if _, err := svc.RegisterTransaction(context.Background(), buyRequest("HGLG11", 100, 160, 0)); err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		dividend, err := svc.RegisterTransaction(context.Background(), request.CreateTransactionRequest{
			Ticker: "HGLG11", Kind: "dividend", Date: "2024-03-10", Quantity: 100, Price: 1.10,
		})
		if err != nil {
			t.Fatalf("dividend failed: %v", err)
		}

		// Execute
		if err := svc.DeleteTransaction(context.Background(), dividend.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		// Assert
		asset, _ := svc.GetAsset("HGLG11")
		if !numeric.Eq(asset.Quantity, 100, numeric.QuantityDecimals) {
			t.Errorf("Expected position unchanged, got quantity %v", asset.Quantity)
		}

		entries, _ := cashFlow.GetAllEntries()
		if len(entries) != 0 {
			t.Errorf("Expected cash flow credit removed, got %d entries", len(entries))
		}
	})

	t.Run("deleting an unknown transaction returns not found", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)

		// Execute
		err := svc.DeleteTransaction(context.Background(), testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

package service

import (
	"context"
	"fmt"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/numeric"
)

// ImportResult reports the outcome of ledgering one parsed brokerage note.
// Operations that were rejected by the ledger appear as warnings, mirroring
// the parser's own warnings list, instead of failing the whole note.
type ImportResult struct {
	Imported     int                 `json:"imported"`
	Transactions []model.Transaction `json:"transactions"`
	Warnings     []string            `json:"warnings"`
}

// ImportService turns parsed brokerage notes into ledger transactions.
// The PDF parsing itself happens in the upstream parser microservice; this
// service only consumes its structured output.
type ImportService struct {
	ledgerService *LedgerService
}

// NewImportService creates a new ImportService with the provided dependencies.
func NewImportService(ledgerService *LedgerService) *ImportService {
	return &ImportService{
		ledgerService: ledgerService,
	}
}

// RegisterNote registers every operation of a parsed note through the
// ledger. The note's total fees are pro-rated across operations by traded
// value, with the last share absorbing the rounding remainder so the shares
// sum exactly to the note total.
func (s *ImportService) RegisterNote(ctx context.Context, req request.ImportNoteRequest) (*ImportResult, error) {
	feeShares := prorateFees(req.Operations, req.Fees.Total)

	result := &ImportResult{
		Transactions: []model.Transaction{},
		Warnings:     []string{},
	}

	for i, op := range req.Operations {
		createReq := request.CreateTransactionRequest{
			Ticker:    op.Ticker,
			Kind:      op.Type,
			Date:      req.NoteDate,
			Quantity:  op.Quantity,
			Price:     op.Price,
			Fees:      feeShares[i],
			Currency:  req.Currency,
			AssetType: op.AssetType,
		}

		transaction, err := s.ledgerService.RegisterTransaction(ctx, createReq)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", op.Ticker, err))
			continue
		}

		result.Imported++
		result.Transactions = append(result.Transactions, *transaction)
	}

	return result, nil
}

// prorateFees splits a note's total fees across its operations
// proportionally to each operation's traded value. Every share is rounded to
// currency precision and the last operation absorbs the remainder.
func prorateFees(operations []request.NoteOperation, totalFees float64) []float64 {
	shares := make([]float64, len(operations))
	if len(operations) == 0 || totalFees == 0 {
		return shares
	}

	var grossTotal float64
	for _, op := range operations {
		grossTotal += op.Quantity * op.Price
	}
	if numeric.IsZero(grossTotal, numeric.CurrencyDecimals) {
		return shares
	}

	var allocated float64
	for i, op := range operations {
		if i == len(operations)-1 {
			shares[i] = numeric.Round(totalFees-allocated, numeric.CurrencyDecimals)
			break
		}
		share := numeric.Round(totalFees*(op.Quantity*op.Price)/grossTotal, numeric.CurrencyDecimals)
		shares[i] = share
		allocated += share
	}

	return shares
}

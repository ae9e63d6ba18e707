package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/repository"
)

// CashFlowService records income entries in the dashboard's cash-flow ledger.
// Dividends credit into it; it never reads or mutates investment state.
type CashFlowService struct {
	cashFlowRepo *repository.CashFlowRepository
}

// NewCashFlowService creates a new CashFlowService with the provided repository dependencies.
func NewCashFlowService(
	cashFlowRepo *repository.CashFlowRepository,
) *CashFlowService {
	return &CashFlowService{
		cashFlowRepo: cashFlowRepo,
	}
}

// RecordIncome credits an income entry, linked to the transaction that
// produced it so a later delete of that transaction can remove the entry.
func (s *CashFlowService) RecordIncome(ctx context.Context, amount float64, label string, date time.Time, transactionID string) error {
	entry := &model.CashFlowEntry{
		ID:            uuid.New().String(),
		Date:          date,
		Amount:        amount,
		Label:         label,
		TransactionID: transactionID,
		CreatedAt:     time.Now(),
	}

	if err := s.cashFlowRepo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to record income: %w", err)
	}

	return nil
}

// RemoveForTransaction deletes the income entries linked to a transaction.
func (s *CashFlowService) RemoveForTransaction(ctx context.Context, transactionID string) error {
	return s.cashFlowRepo.DeleteForTransaction(ctx, transactionID)
}

// GetAllEntries retrieves every cash flow entry, newest first.
func (s *CashFlowService) GetAllEntries() ([]model.CashFlowEntry, error) {
	return s.cashFlowRepo.GetAll()
}

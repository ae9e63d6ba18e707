package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/api/request"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/apperrors"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/repository"
)

// LedgerService maintains the per-ticker asset aggregate across the full
// transaction lifecycle: register, edit and delete, with edits and deletes
// going through safe reversal of the original entry.
//
// Every operation is validate-then-commit: the new aggregate is computed
// fully in memory and only then written. The asset row and the transaction
// log row are still two separate writes; if the second fails after the first
// succeeded the failure is surfaced and logged as critical, with no automatic
// compensation. There is also no per-ticker serialization of concurrent
// requests. Both gaps are deliberate carry-overs from the dashboard's
// storage model.
type LedgerService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	cashFlowService *CashFlowService
}

// NewLedgerService creates a new LedgerService with the provided dependencies.
func NewLedgerService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	cashFlowService *CashFlowService,
) *LedgerService {
	return &LedgerService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		cashFlowService: cashFlowService,
	}
}

// GetAsset retrieves the aggregate position for a ticker.
func (s *LedgerService) GetAsset(ticker string) (model.Asset, error) {
	return s.assetRepo.GetByTicker(ticker)
}

// GetAllAssets retrieves every position, including retained zero-quantity rows.
func (s *LedgerService) GetAllAssets() ([]model.Asset, error) {
	return s.assetRepo.GetAll()
}

// GetTransaction retrieves a single transaction by its ID.
func (s *LedgerService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.Get(transactionID)
}

// GetTransactions retrieves all transactions, optionally filtered by ticker.
func (s *LedgerService) GetTransactions(ticker string) ([]model.Transaction, error) {
	return s.transactionRepo.GetAll(ticker)
}

// RegisterTransaction applies a new buy, sell or dividend to the ticker's
// aggregate and appends it to the transaction log. A buy against an unknown
// ticker opens the position. A dividend additionally credits its amount to
// the cash-flow ledger; if that credit fails the error is logged but the
// already-committed investment writes are not rolled back.
func (s *LedgerService) RegisterTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Ticker:    req.Ticker,
		Kind:      model.TransactionKind(req.Kind),
		Date:      date,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Fees:      req.Fees,
		CreatedAt: time.Now(),
	}

	asset, err := s.assetRepo.GetByTicker(req.Ticker)
	switch {
	case errors.Is(err, apperrors.ErrAssetNotFound):
		asset, err = s.openingState(*transaction, req)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	default:
		asset, err = applyTransaction(asset, *transaction)
		if err != nil {
			return nil, err
		}
	}

	if err := s.commit(ctx, asset, transaction, writeInsert); err != nil {
		return nil, err
	}

	if transaction.Kind == model.KindDividend {
		s.creditDividend(ctx, transaction)
	}

	return transaction, nil
}

// UpdateTransaction edits a transaction as revert-then-reapply: the original
// entry is reverted from the current aggregate and the edited entry applied,
// all in memory, before any write is issued. If either step fails the
// persisted asset and transaction rows keep their pre-edit values.
func (s *LedgerService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	oldTransaction, err := s.transactionRepo.Get(transactionID)
	if err != nil {
		return nil, err
	}

	newTransaction, err := mergeTransaction(oldTransaction, req)
	if err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.GetByTicker(oldTransaction.Ticker)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	reverted, err := revertTransaction(asset, oldTransaction)
	if err != nil {
		return nil, err
	}

	applied, err := applyTransaction(reverted, newTransaction)
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, applied, &newTransaction, writeUpdate); err != nil {
		return nil, err
	}

	// Rebuild the income side effect if the dividend changed shape.
	if oldTransaction.Kind == model.KindDividend {
		s.removeDividendCredit(ctx, transactionID)
	}
	if newTransaction.Kind == model.KindDividend {
		s.creditDividend(ctx, &newTransaction)
	}

	return &newTransaction, nil
}

// DeleteTransaction removes a transaction after validating that it can be
// safely reverted from the current aggregate. Deleting a dividend only drops
// the log row and its linked income entry; the aggregate has nothing to
// revert.
func (s *LedgerService) DeleteTransaction(ctx context.Context, transactionID string) error {
	transaction, err := s.transactionRepo.Get(transactionID)
	if err != nil {
		return err
	}

	asset, err := s.assetRepo.GetByTicker(transaction.Ticker)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	reverted, err := revertTransaction(asset, transaction)
	if err != nil {
		return err
	}

	if transaction.Kind != model.KindDividend {
		reverted.LastUpdate = time.Now()
		if err := s.assetRepo.Upsert(ctx, reverted); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
		}
	}

	if err := s.transactionRepo.Delete(ctx, transactionID); err != nil {
		if transaction.Kind != model.KindDividend {
			log.Printf("CRITICAL: asset %s reverted but transaction %s not deleted: %v",
				transaction.Ticker, transactionID, err)
		}
		return err
	}

	if transaction.Kind == model.KindDividend {
		s.removeDividendCredit(ctx, transactionID)
	}

	return nil
}

// openingState builds the asset created by a first operation on a ticker.
// Only a buy can open a position; a sell has nothing to sell from and a
// dividend has no position to pay out on.
func (s *LedgerService) openingState(t model.Transaction, req request.CreateTransactionRequest) (model.Asset, error) {
	switch t.Kind {
	case model.KindBuy:
		currency := req.Currency
		if currency == "" {
			currency = "BRL"
		}
		assetType := model.AssetType(req.AssetType)
		if assetType == "" {
			assetType = model.AssetTypeStock
		}
		return newAssetFromBuy(uuid.New().String(), t, currency, assetType, time.Now()), nil
	case model.KindSell:
		return model.Asset{}, apperrors.ErrInsufficientQuantity
	case model.KindDividend:
		return model.Asset{}, apperrors.ErrNoPosition
	default:
		return model.Asset{}, apperrors.ErrUnknownTransactionKind
	}
}

type writeMode int

const (
	writeInsert writeMode = iota
	writeUpdate
)

// commit issues the two-step write sequence: asset row first, then the
// transaction log row. A log-row failure after a successful asset write is
// the acknowledged inconsistency window; it is logged as critical and
// surfaced, never compensated automatically.
func (s *LedgerService) commit(ctx context.Context, asset model.Asset, t *model.Transaction, mode writeMode) error {
	asset.LastUpdate = time.Now()

	if err := s.assetRepo.Upsert(ctx, asset); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	var err error
	if mode == writeInsert {
		err = s.transactionRepo.Insert(ctx, t)
	} else {
		err = s.transactionRepo.Update(ctx, t)
	}
	if err != nil {
		log.Printf("CRITICAL: asset %s written but transaction log write failed for %s: %v",
			asset.Ticker, t.ID, err)
		return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	return nil
}

// creditDividend records the dividend's cash value as income. Failure is
// logged, not retried, and does not roll back the investment-side write.
func (s *LedgerService) creditDividend(ctx context.Context, t *model.Transaction) {
	label := fmt.Sprintf("Dividendos %s", t.Ticker)
	if err := s.cashFlowService.RecordIncome(ctx, t.GrossValue(), label, t.Date, t.ID); err != nil {
		log.Printf("failed to record dividend income for %s: %v", t.Ticker, err)
	}
}

// removeDividendCredit drops the income entry linked to a dividend
// transaction. Failure is logged, not retried.
func (s *LedgerService) removeDividendCredit(ctx context.Context, transactionID string) {
	if err := s.cashFlowService.RemoveForTransaction(ctx, transactionID); err != nil {
		log.Printf("failed to remove dividend income for transaction %s: %v", transactionID, err)
	}
}

// mergeTransaction overlays the optional edit fields on the stored entry.
// The ID, ticker and creation time never change.
func mergeTransaction(old model.Transaction, req request.UpdateTransactionRequest) (model.Transaction, error) {
	merged := old

	if req.Kind != nil {
		merged.Kind = model.TransactionKind(*req.Kind)
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
		}
		merged.Date = date
	}
	if req.Quantity != nil {
		merged.Quantity = *req.Quantity
	}
	if req.Price != nil {
		merged.Price = *req.Price
	}
	if req.Fees != nil {
		merged.Fees = *req.Fees
	}

	return merged, nil
}

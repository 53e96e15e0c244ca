package ledger

import (
	"context"
	"math"
	"time"

	"Corebank/internal/domain/account"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/events"
	"Corebank/internal/logger"
	"Corebank/internal/pkg"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type Service struct {
	Accounts   account.Repository
	Repository Repository
	Locks      *pkg.KeyedMutex
	Events     events.Publisher
}

func NewService(accounts account.Repository, repo Repository, locks *pkg.KeyedMutex, publisher events.Publisher) *Service {
	return &Service{
		Accounts:   accounts,
		Repository: repo,
		Locks:      locks,
		Events:     publisher,
	}
}

func (s *Service) Deposit(ctx context.Context, accountNumber string, amount float64, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "must be greater than zero")
	}
	return s.ApplyDelta(ctx, accountNumber, amount, TypeDeposit, description, nil)
}

func (s *Service) Withdraw(ctx context.Context, accountNumber string, amount float64, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "must be greater than zero")
	}
	return s.ApplyDelta(ctx, accountNumber, -amount, TypeWithdrawal, description, nil)
}

// ApplyDelta moves money on a single account under its per-account lock. The
// sign of delta decides the direction; the stored amount is always absolute.
func (s *Service) ApplyDelta(ctx context.Context, accountNumber string, delta float64, txType Type, description string, cardID *ulid.ULID) (*Transaction, error) {
	s.Locks.Lock(accountNumber)
	defer s.Locks.Unlock(accountNumber)

	acct, err := s.LoadOpenAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	txn, err := s.applyDeltaLocked(ctx, nil, acct, delta, txType, description, cardID)
	if err != nil {
		return nil, err
	}

	s.publish(txn, accountNumber)

	return txn, nil
}

// ApplyDeltaTx is ApplyDelta for callers that already hold the account lock
// and an open repository transaction (transfers, bill payments, EMI sweeps).
func (s *Service) ApplyDeltaTx(ctx context.Context, tx interface{}, acct *account.Account, delta float64, txType Type, description string, cardID *ulid.ULID) (*Transaction, error) {
	if acct.Status == account.StatusFrozen {
		return nil, appErrors.ErrAccountFrozen
	}
	if acct.Status == account.StatusClosed {
		return nil, appErrors.ErrAccountNotFound
	}
	return s.applyDeltaLocked(ctx, tx, acct, delta, txType, description, cardID)
}

// Record inserts an audit-only transaction. No balance changes; used for
// credit card purchases, which affect the card's credit line instead.
func (s *Service) Record(ctx context.Context, tx interface{}, accountID ulid.ULID, amount float64, txType Type, description string, cardID *ulid.ULID) (*Transaction, error) {
	txn := s.newTransaction(accountID, amount, txType, description, cardID)
	if err := s.Repository.Create(ctx, tx, txn); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return txn, nil
}

func (s *Service) GetTransaction(ctx context.Context, transactionID ulid.ULID) (*Transaction, error) {
	txn, err := s.Repository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, appErrors.ErrTransactionNotFound.WithError(err)
	}
	return txn, nil
}

func (s *Service) GetTransactions(ctx context.Context, accountNumber string, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	acct, err := s.Accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, 0, appErrors.ErrAccountNotFound.WithError(err)
	}
	return s.Repository.GetByAccountID(ctx, acct.Id, pagination)
}

func (s *Service) LoadOpenAccount(ctx context.Context, accountNumber string) (*account.Account, error) {
	acct, err := s.Accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}
	if acct.Status == account.StatusFrozen {
		return nil, appErrors.ErrAccountFrozen
	}
	if acct.Status == account.StatusClosed {
		return nil, appErrors.ErrAccountNotFound
	}
	return acct, nil
}

func (s *Service) applyDeltaLocked(ctx context.Context, tx interface{}, acct *account.Account, delta float64, txType Type, description string, cardID *ulid.ULID) (*Transaction, error) {
	delta = pkg.RoundMoney(delta)
	if delta < 0 && acct.Balance+delta < 0 {
		return nil, appErrors.ErrInsufficientFunds
	}

	txn := s.newTransaction(acct.Id, math.Abs(delta), txType, description, cardID)
	if err := s.Repository.ApplyDelta(ctx, tx, acct.Id, delta, txn); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	acct.Balance = pkg.RoundMoney(acct.Balance + delta)

	return txn, nil
}

func (s *Service) newTransaction(accountID ulid.ULID, amount float64, txType Type, description string, cardID *ulid.ULID) *Transaction {
	return &Transaction{
		Id:            pkg.GenerateULIDObject(),
		TransactionID: uuid.NewString(),
		AccountId:     accountID,
		CardId:        cardID,
		Amount:        pkg.RoundMoney(math.Abs(amount)),
		Type:          txType,
		Date:          time.Now(),
		Description:   description,
	}
}

func (s *Service) publish(txn *Transaction, accountNumber string) {
	if s.Events == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Events.Publish(ctx, "transaction.recorded", map[string]any{
			"transactionId": txn.TransactionID,
			"accountNumber": accountNumber,
			"type":          txn.Type,
			"amount":        txn.Amount,
		})
		if err != nil {
			logger.Warn().Err(err).Str("transactionId", txn.TransactionID).Msg("failed to publish transaction event")
		}
	}()
}

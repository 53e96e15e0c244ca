package card

import (
	"context"
	"fmt"

	"Corebank/internal/domain/account"
	"Corebank/internal/domain/ledger"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"
	"Corebank/internal/pkg/idgen"

	"golang.org/x/crypto/bcrypt"
)

const cardValidityYears = 5

type Service struct {
	Repository Repository
	Accounts   account.Repository
	Ledger     *ledger.Service
	IdGen      idgen.Generator
}

func NewService(repo Repository, accounts account.Repository, ledgerSvc *ledger.Service, idGen idgen.Generator) *Service {
	return &Service{
		Repository: repo,
		Accounts:   accounts,
		Ledger:     ledgerSvc,
		IdGen:      idGen,
	}
}

type IssueCardRequest struct {
	AccountNumber        string
	Type                 CardType
	CreditLimit          float64
	DailyWithdrawalLimit float64
}

// IssuedCard carries the secrets exactly once, at issuance. They are never
// returned again.
type IssuedCard struct {
	Card *Card  `json:"card"`
	Pin  string `json:"pin"`
	Cvv  string `json:"cvv"`
}

func (s *Service) IssueCard(ctx context.Context, req *IssueCardRequest) (*IssuedCard, error) {
	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "must be CREDIT or DEBIT")
	}
	if req.Type == TypeCredit && req.CreditLimit <= 0 {
		return nil, appErrors.NewValidationError("credit_limit", "credit cards require a positive credit limit")
	}
	if req.Type == TypeDebit && req.CreditLimit != 0 {
		return nil, appErrors.NewValidationError("credit_limit", "debit cards cannot carry a credit limit")
	}

	acct, err := s.Accounts.GetByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}
	if acct.Status != account.StatusActive {
		return nil, appErrors.NewValidationError("account_number", "cards can only be issued for active accounts")
	}

	pin := s.IdGen.PIN()
	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	now := pkg.SetTimestamps()
	c := &Card{
		Id:                   pkg.GenerateULIDObject(),
		CardNumber:           s.IdGen.CardNumber(),
		CustomerId:           acct.CustomerId,
		AccountId:            acct.Id,
		Type:                 req.Type,
		Status:               StatusActive,
		PinHash:              string(pinHash),
		Cvv:                  s.IdGen.CVV(),
		IssueDate:            now,
		ExpiryDate:           now.AddDate(cardValidityYears, 0, 0),
		CreditLimit:          pkg.RoundMoney(req.CreditLimit),
		DailyWithdrawalLimit: pkg.RoundMoney(req.DailyWithdrawalLimit),
		BillGenerationDay:    20,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.Repository.Create(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &IssuedCard{Card: c, Pin: pin, Cvv: c.Cvv}, nil
}

func (s *Service) GetByNumber(ctx context.Context, cardNumber string) (*Card, error) {
	c, err := s.Repository.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}
	return c, nil
}

func (s *Service) Block(ctx context.Context, cardNumber string) (*Card, error) {
	return s.updateStatus(ctx, cardNumber, StatusBlocked)
}

func (s *Service) Unblock(ctx context.Context, cardNumber string) (*Card, error) {
	return s.updateStatus(ctx, cardNumber, StatusActive)
}

func (s *Service) updateStatus(ctx context.Context, cardNumber string, status Status) (*Card, error) {
	c, err := s.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if c.Status == status {
		return c, nil
	}

	c.Status = status
	c.UpdatedAt = pkg.SetTimestamps()
	if err := s.Repository.Update(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return c, nil
}

type UpdateLimitsRequest struct {
	CreditLimit          *float64
	DailyWithdrawalLimit *float64
}

func (s *Service) UpdateLimits(ctx context.Context, cardNumber string, req *UpdateLimitsRequest) (*Card, error) {
	c, err := s.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}

	if req.CreditLimit != nil {
		if c.Type != TypeCredit {
			return nil, appErrors.NewValidationError("credit_limit", "only credit cards carry a credit limit")
		}
		limit := pkg.RoundMoney(*req.CreditLimit)
		if limit < c.CurrentCreditUsed {
			return nil, appErrors.NewValidationError("credit_limit",
				fmt.Sprintf("cannot go below the outstanding credit of %.2f", c.CurrentCreditUsed))
		}
		c.CreditLimit = limit
	}
	if req.DailyWithdrawalLimit != nil {
		if *req.DailyWithdrawalLimit < 0 {
			return nil, appErrors.NewValidationError("daily_withdrawal_limit", "must not be negative")
		}
		c.DailyWithdrawalLimit = pkg.RoundMoney(*req.DailyWithdrawalLimit)
	}

	c.UpdatedAt = pkg.SetTimestamps()
	if err := s.Repository.Update(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return c, nil
}

func (s *Service) ChangeBillGenerationDay(ctx context.Context, cardNumber string, day int) (*Card, error) {
	if day < 1 || day > 28 {
		return nil, appErrors.NewValidationError("bill_generation_day", "must be between 1 and 28")
	}

	c, err := s.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if c.Type != TypeCredit {
		return nil, appErrors.NewValidationError("card_number", "only credit cards have a billing cycle")
	}

	c.BillGenerationDay = day
	c.UpdatedAt = pkg.SetTimestamps()
	if err := s.Repository.Update(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return c, nil
}

func (s *Service) ChangePin(ctx context.Context, cardNumber, currentPin, newPin string) error {
	if len(newPin) != 4 {
		return appErrors.NewValidationError("new_pin", "must be exactly 4 digits")
	}

	c, err := s.GetByNumber(ctx, cardNumber)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PinHash), []byte(currentPin)); err != nil {
		return appErrors.ErrInvalidInput.WithMessage("Current PIN is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPin), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.ErrInternalServer.WithError(err)
	}

	c.PinHash = string(hash)
	c.UpdatedAt = pkg.SetTimestamps()
	if err := s.Repository.Update(ctx, c); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Purchase records a credit card spend. The account balance is untouched:
// the charge raises the card's used credit and settles later through the
// billing cycle. The audit row and the credit adjustment commit together.
func (s *Service) Purchase(ctx context.Context, cardNumber string, amount float64, merchant string) (*ledger.Transaction, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "must be greater than zero")
	}

	c, err := s.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusBlocked {
		return nil, appErrors.ErrCardBlocked
	}
	if c.Type != TypeCredit {
		return nil, appErrors.NewValidationError("card_number", "purchases are only supported on credit cards")
	}

	amount = pkg.RoundMoney(amount)
	if c.AvailableCredit() < amount {
		return nil, appErrors.ErrCreditLimitExceeded.WithDetails(map[string]interface{}{
			"availableCredit": pkg.RoundMoney(c.AvailableCredit()),
		})
	}

	tx, err := s.Ledger.Repository.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	cardID := c.Id
	txn, err := s.Ledger.Record(ctx, tx, c.AccountId, amount, ledger.TypeCardPurchase,
		fmt.Sprintf("Card purchase at %s", merchant), &cardID)
	if err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, err
	}

	if err := s.Repository.AdjustCreditUsed(ctx, tx, c.Id, amount); err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.Repository.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return txn, nil
}

func (s *Service) ListByAccount(ctx context.Context, accountNumber string) ([]*Card, error) {
	acct, err := s.Accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}
	return s.Repository.GetByAccountID(ctx, acct.Id)
}

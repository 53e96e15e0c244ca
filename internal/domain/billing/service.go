package billing

import (
	"context"
	"fmt"
	"time"

	"Corebank/config"
	"Corebank/internal/domain/account"
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/ledger"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	Cards      card.Repository
	Accounts   account.Repository
	Ledger     *ledger.Service
	Locks      *pkg.KeyedMutex
	Config     config.BillingConfig
}

func NewService(repo Repository, cards card.Repository, accounts account.Repository, ledgerSvc *ledger.Service, locks *pkg.KeyedMutex, cfg config.BillingConfig) *Service {
	return &Service{
		Repository: repo,
		Cards:      cards,
		Accounts:   accounts,
		Ledger:     ledgerSvc,
		Locks:      locks,
		Config:     cfg,
	}
}

// GenerateBill produces the statement for the cycle that ended at the card's
// most recent bill generation day. Generating twice for the same cycle
// returns the existing statement.
func (s *Service) GenerateBill(ctx context.Context, cardNumber string, asOf time.Time) (*CreditCardBill, error) {
	c, err := s.creditCard(ctx, cardNumber)
	if err != nil {
		return nil, err
	}

	billingDate := cycleEnd(asOf, c.BillGenerationDay)

	existing, err := s.Repository.GetByCardAndBillingDate(ctx, c.Id, billingDate)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if existing != nil {
		return existing, nil
	}

	// the statement covers whole calendar days: from the day after the
	// previous billing date through the billing date itself
	windowStart := billingDate.AddDate(0, -1, 0).AddDate(0, 0, 1)
	windowEnd := billingDate.AddDate(0, 0, 1)
	entries, err := s.Ledger.Repository.GetByCardAndDateRange(ctx, c.Id, windowStart, windowEnd)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var charges, payments float64
	for _, entry := range entries {
		switch entry.Type {
		case ledger.TypeCardPurchase:
			charges += entry.Amount
		case ledger.TypeBillPayment:
			payments += entry.Amount
		}
	}

	total := pkg.RoundMoney(charges - payments)
	if total < 0 {
		total = 0
	}

	now := pkg.SetTimestamps()
	bill := &CreditCardBill{
		Id:                 pkg.GenerateULIDObject(),
		CardId:             c.Id,
		BillingDate:        billingDate,
		DueDate:            billingDate.AddDate(0, 0, s.Config.PaymentDueDays),
		TotalAmountDue:     total,
		MinimumAmountDue:   s.minimumDue(total),
		CurrentOutstanding: total,
		PaymentStatus:      StatusUnpaid,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if total == 0 {
		bill.PaymentStatus = StatusPaid
	}

	if err := s.Repository.Create(ctx, nil, bill); err != nil {
		// a concurrent generation may have won the unique
		// (card_id, billing_date) race
		existing, lookupErr := s.Repository.GetByCardAndBillingDate(ctx, c.Id, billingDate)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return bill, nil
}

type PayBillRequest struct {
	CardNumber string
	Option     PaymentOption
	Amount     float64
}

// PayBill settles the latest open statement from the card's linked account.
// The account debit, the statement update and the credit line release commit
// in one atomic unit.
func (s *Service) PayBill(ctx context.Context, req *PayBillRequest) (*CreditCardBill, error) {
	if !req.Option.IsValid() {
		return nil, appErrors.NewValidationError("option", "unknown payment option")
	}

	c, err := s.creditCard(ctx, req.CardNumber)
	if err != nil {
		return nil, err
	}

	bill, err := s.Repository.GetLatestUnpaid(ctx, c.Id)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if bill == nil {
		return nil, appErrors.ErrBillNotFound
	}

	amount, err := s.resolveAmount(c, bill, req.Option, req.Amount)
	if err != nil {
		return nil, err
	}

	acct, err := s.Accounts.GetByID(ctx, c.AccountId)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}

	s.Locks.Lock(acct.AccountNumber)
	defer s.Locks.Unlock(acct.AccountNumber)

	// reload under the lock so the balance check sees concurrent movements
	acct, err = s.Accounts.GetByID(ctx, c.AccountId)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}

	tx, err := s.Ledger.Repository.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	cardID := c.Id
	_, err = s.Ledger.ApplyDeltaTx(ctx, tx, acct, -amount, ledger.TypeBillPayment,
		fmt.Sprintf("Credit card bill payment for card %s", c.CardNumber), &cardID)
	if err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, err
	}

	bill.CurrentOutstanding = pkg.RoundMoney(bill.CurrentOutstanding - amount)
	if bill.CurrentOutstanding <= 0 {
		bill.CurrentOutstanding = 0
		bill.PaymentStatus = StatusPaid
	} else {
		bill.PaymentStatus = StatusPartial
	}
	bill.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, tx, bill); err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Cards.AdjustCreditUsed(ctx, tx, c.Id, -amount); err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.Repository.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, billID ulid.ULID) (*CreditCardBill, error) {
	bill, err := s.Repository.GetByID(ctx, billID)
	if err != nil {
		return nil, appErrors.ErrBillNotFound.WithError(err)
	}
	return bill, nil
}

func (s *Service) GetBillingHistory(ctx context.Context, cardNumber string, pagination *pkg.PaginationParams) ([]*CreditCardBill, int64, error) {
	c, err := s.creditCard(ctx, cardNumber)
	if err != nil {
		return nil, 0, err
	}
	return s.Repository.GetByCardID(ctx, c.Id, pagination)
}

func (s *Service) creditCard(ctx context.Context, cardNumber string) (*card.Card, error) {
	c, err := s.Cards.GetByNumber(ctx, cardNumber)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}
	if c.Type != card.TypeCredit {
		return nil, appErrors.NewValidationError("card_number", "only credit cards have a billing cycle")
	}
	return c, nil
}

func (s *Service) resolveAmount(c *card.Card, bill *CreditCardBill, option PaymentOption, requested float64) (float64, error) {
	var amount float64
	switch option {
	case PayFullAmount:
		amount = bill.TotalAmountDue
	case PayMinimumAmount:
		amount = bill.MinimumAmountDue
	case PayCurrentOutstanding:
		// the card's live used credit, so charges made after the statement
		// closed can be paid down before the next bill
		amount = c.CurrentCreditUsed
	case PayOtherAmount:
		amount = requested
	}

	if amount <= 0 {
		return 0, appErrors.ErrInvalidInput.WithMessage("Payment amount must be greater than zero")
	}
	if option != PayCurrentOutstanding && amount > bill.CurrentOutstanding {
		amount = bill.CurrentOutstanding
	}
	return pkg.RoundMoney(amount), nil
}

func (s *Service) minimumDue(total float64) float64 {
	if total <= 0 {
		return 0
	}
	minimum := pkg.RoundMoney(total * s.Config.MinimumDuePct)
	if minimum < s.Config.MinimumDueFloor {
		minimum = s.Config.MinimumDueFloor
	}
	if minimum > total {
		minimum = total
	}
	return minimum
}

// cycleEnd returns the most recent occurrence of the bill generation day on
// or before asOf, truncated to midnight.
func cycleEnd(asOf time.Time, generationDay int) time.Time {
	cycle := time.Date(asOf.Year(), asOf.Month(), generationDay, 0, 0, 0, 0, asOf.Location())
	if cycle.After(asOf) {
		cycle = cycle.AddDate(0, -1, 0)
	}
	return cycle
}

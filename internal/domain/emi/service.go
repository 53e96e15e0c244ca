package emi

import (
	"context"
	"fmt"
	"math"
	"time"

	"Corebank/config"
	"Corebank/internal/domain/account"
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/ledger"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/logger"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	Ledger     *ledger.Service
	Cards      card.Repository
	Accounts   account.Repository
	Locks      *pkg.KeyedMutex
	Config     config.EMIConfig
}

func NewService(repo Repository, ledgerSvc *ledger.Service, cards card.Repository, accounts account.Repository, locks *pkg.KeyedMutex, cfg config.EMIConfig) *Service {
	return &Service{
		Repository: repo,
		Ledger:     ledgerSvc,
		Cards:      cards,
		Accounts:   accounts,
		Locks:      locks,
		Config:     cfg,
	}
}

type Offer struct {
	TenureMonths       int     `json:"tenureMonths"`
	MonthlyInstallment float64 `json:"monthlyInstallment"`
	AnnualInterestRate float64 `json:"annualInterestRate"`
	ProcessingFee      float64 `json:"processingFee"`
	TotalInterest      float64 `json:"totalInterest"`
	TotalPayable       float64 `json:"totalPayable"`
}

// GetOffers quotes one offer per allowed tenure for an eligible credit card
// purchase.
func (s *Service) GetOffers(ctx context.Context, transactionID ulid.ULID) ([]Offer, error) {
	txn, err := s.Ledger.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEligibility(txn); err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, len(s.Config.AllowedTenures))
	for _, tenure := range s.Config.AllowedTenures {
		offers = append(offers, s.quote(txn.Amount, tenure))
	}
	return offers, nil
}

// ConvertToEmi turns an eligible purchase into an installment plan. The
// processing fee is financed into the plan principal and repaid through the
// installments. The eligibility flag flips under a guarded update, so
// concurrent conversions of the same transaction produce exactly one plan.
func (s *Service) ConvertToEmi(ctx context.Context, transactionID ulid.ULID, tenureMonths int) (*Plan, error) {
	txn, err := s.Ledger.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEligibility(txn); err != nil {
		return nil, err
	}
	if !s.tenureAllowed(tenureMonths) {
		return nil, appErrors.NewValidationError("tenure_months",
			fmt.Sprintf("must be one of %v", s.Config.AllowedTenures))
	}

	c, err := s.resolveCard(ctx, txn)
	if err != nil {
		return nil, err
	}

	if _, err := s.Accounts.GetByID(ctx, txn.AccountId); err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}

	offer := s.quote(txn.Amount, tenureMonths)
	now := pkg.SetTimestamps()
	plan := &Plan{
		Id:                 pkg.GenerateULIDObject(),
		TransactionId:      txn.Id,
		CardId:             c.Id,
		AccountId:          txn.AccountId,
		PrincipalAmount:    pkg.RoundMoney(txn.Amount + offer.ProcessingFee),
		AnnualInterestRate: s.Config.AnnualInterestRate,
		ProcessingFee:      offer.ProcessingFee,
		MonthlyInstallment: offer.MonthlyInstallment,
		TenureMonths:       tenureMonths,
		TotalPayable:       offer.TotalPayable,
		Status:             PlanActive,
		StartDate:          now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	schedule := s.buildSchedule(plan, now)

	tx, err := s.Ledger.Repository.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	converted, err := s.Ledger.Repository.MarkEmiConverted(ctx, tx, txn.Id)
	if err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}
	if !converted {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.ErrEmiNotEligible.WithMessage("Transaction has already been converted to EMI")
	}

	if err := s.Repository.CreatePlan(ctx, tx, plan); err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}
	if err := s.Repository.CreateScheduleEntries(ctx, tx, schedule); err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.Repository.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return plan, nil
}

func (s *Service) GetPlan(ctx context.Context, planID ulid.ULID) (*Plan, error) {
	plan, err := s.Repository.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, appErrors.ErrEmiPlanNotFound.WithError(err)
	}
	return plan, nil
}

func (s *Service) GetSchedule(ctx context.Context, planID ulid.ULID) ([]*ScheduleEntry, error) {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	return s.Repository.GetSchedule(ctx, planID)
}

func (s *Service) ListPlans(ctx context.Context, accountNumber string, pagination *pkg.PaginationParams) ([]*Plan, int64, error) {
	acct, err := s.Accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, 0, appErrors.ErrAccountNotFound.WithError(err)
	}
	return s.Repository.GetPlansByAccountID(ctx, acct.Id, pagination)
}

// ProcessInstallments collects every installment due on or before asOf. Each
// installment is its own atomic unit; a failed collection marks the entry
// OVERDUE and the sweep moves on.
func (s *Service) ProcessInstallments(ctx context.Context, asOf time.Time) (collected, failed int, err error) {
	entries, err := s.Repository.FindPendingDueOnOrBefore(ctx, asOf)
	if err != nil {
		return 0, 0, appErrors.NewDatabaseError(err)
	}

	for _, entry := range entries {
		if err := s.collectInstallment(ctx, entry); err != nil {
			failed++
			logger.Warn().Err(err).
				Str("planId", entry.PlanId.String()).
				Int("installment", entry.InstallmentNumber).
				Msg("installment collection failed")
			continue
		}
		collected++
	}

	logger.Info().Int("collected", collected).Int("failed", failed).Msg("installment sweep finished")
	return collected, failed, nil
}

func (s *Service) collectInstallment(ctx context.Context, entry *ScheduleEntry) error {
	plan, err := s.Repository.GetPlanByID(ctx, entry.PlanId)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if plan.Status != PlanActive {
		return nil
	}

	acct, err := s.Accounts.GetByID(ctx, plan.AccountId)
	if err != nil {
		return appErrors.ErrAccountNotFound.WithError(err)
	}

	s.Locks.Lock(acct.AccountNumber)
	defer s.Locks.Unlock(acct.AccountNumber)

	acct, err = s.Accounts.GetByID(ctx, plan.AccountId)
	if err != nil {
		return appErrors.ErrAccountNotFound.WithError(err)
	}

	tx, err := s.Ledger.Repository.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	cardID := plan.CardId
	_, err = s.Ledger.ApplyDeltaTx(ctx, tx, acct, -entry.InstallmentAmount, ledger.TypeEmiPayment,
		fmt.Sprintf("EMI installment %d of %d", entry.InstallmentNumber, plan.TenureMonths), &cardID)
	if err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		s.markOverdue(ctx, entry)
		return err
	}

	now := pkg.SetTimestamps()
	entry.Status = EntryPaid
	entry.PaidDate = &now
	entry.UpdatedAt = now
	if err := s.Repository.UpdateScheduleEntry(ctx, tx, entry); err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Ledger.Repository.CommitTx(tx); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	pending, err := s.Repository.CountPendingByPlan(ctx, plan.Id)
	if err == nil && pending == 0 {
		if err := s.Repository.UpdatePlanStatus(ctx, nil, plan.Id, PlanCompleted); err != nil {
			logger.Warn().Err(err).Str("planId", plan.Id.String()).Msg("failed to complete plan")
		}
	}

	return nil
}

func (s *Service) markOverdue(ctx context.Context, entry *ScheduleEntry) {
	entry.Status = EntryOverdue
	entry.UpdatedAt = pkg.SetTimestamps()
	if err := s.Repository.UpdateScheduleEntry(ctx, nil, entry); err != nil {
		logger.Error().Err(err).Str("planId", entry.PlanId.String()).Msg("failed to mark installment overdue")
	}
}

func (s *Service) checkEligibility(txn *ledger.Transaction) error {
	if txn.IsEmiConverted {
		return appErrors.ErrEmiNotEligible.WithMessage("Transaction has already been converted to EMI")
	}
	if txn.Type != ledger.TypeCardPurchase {
		return appErrors.ErrEmiNotEligible.WithMessage("Only credit card purchases can be converted to EMI")
	}
	if txn.Amount < s.Config.MinTransactionAmount {
		return appErrors.ErrEmiNotEligible.WithDetails(map[string]interface{}{
			"minimumAmount": s.Config.MinTransactionAmount,
		})
	}
	return nil
}

func (s *Service) resolveCard(ctx context.Context, txn *ledger.Transaction) (*card.Card, error) {
	if txn.CardId != nil {
		c, err := s.Cards.GetByID(ctx, *txn.CardId)
		if err != nil {
			return nil, appErrors.ErrCardNotFound.WithError(err)
		}
		return c, nil
	}
	c, err := s.Cards.GetCreditCardByAccountID(ctx, txn.AccountId)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}
	return c, nil
}

func (s *Service) tenureAllowed(tenure int) bool {
	for _, allowed := range s.Config.AllowedTenures {
		if tenure == allowed {
			return true
		}
	}
	return false
}

// quote amortizes the financed principal, which is the purchase amount plus
// the processing fee. The fee is financed rather than charged upfront, so it
// accrues interest like the rest of the principal.
func (s *Service) quote(amount float64, tenureMonths int) Offer {
	monthlyRate := s.Config.AnnualInterestRate / 12
	fee := pkg.RoundMoney(amount * s.Config.ProcessingFeePercent)
	principal := pkg.RoundMoney(amount + fee)
	installment := amortize(principal, monthlyRate, tenureMonths)
	totalPayable := pkg.RoundMoney(installment * float64(tenureMonths))

	return Offer{
		TenureMonths:       tenureMonths,
		MonthlyInstallment: installment,
		AnnualInterestRate: s.Config.AnnualInterestRate,
		ProcessingFee:      fee,
		TotalInterest:      pkg.RoundMoney(totalPayable - principal),
		TotalPayable:       totalPayable,
	}
}

// buildSchedule amortizes the principal over the tenure. Each month's
// interest accrues on the remaining principal; the last installment absorbs
// rounding drift so the components always sum to the principal.
func (s *Service) buildSchedule(plan *Plan, now time.Time) []*ScheduleEntry {
	monthlyRate := plan.AnnualInterestRate / 12
	remaining := plan.PrincipalAmount

	entries := make([]*ScheduleEntry, 0, plan.TenureMonths)
	for i := 1; i <= plan.TenureMonths; i++ {
		interest := pkg.RoundMoney(remaining * monthlyRate)
		principal := pkg.RoundMoney(plan.MonthlyInstallment - interest)
		amount := plan.MonthlyInstallment
		if i == plan.TenureMonths {
			principal = pkg.RoundMoney(remaining)
			amount = pkg.RoundMoney(principal + interest)
		}
		remaining = pkg.RoundMoney(remaining - principal)

		entries = append(entries, &ScheduleEntry{
			Id:                 pkg.GenerateULIDObject(),
			PlanId:             plan.Id,
			InstallmentNumber:  i,
			DueDate:            plan.StartDate.AddDate(0, i, 0),
			InstallmentAmount:  amount,
			PrincipalComponent: principal,
			InterestComponent:  interest,
			Status:             EntryPending,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return entries
}

// amortize computes the fixed monthly installment for a reducing-balance
// loan: P*r / (1 - (1+r)^-n).
func amortize(principal, monthlyRate float64, tenureMonths int) float64 {
	if monthlyRate == 0 {
		return pkg.RoundMoney(principal / float64(tenureMonths))
	}
	installment := principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(tenureMonths)))
	return pkg.RoundMoney(installment)
}

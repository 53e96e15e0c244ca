package account

import (
	"context"
	"strings"

	"Corebank/internal/domain/customer"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"
	"Corebank/internal/pkg/idgen"

	"github.com/oklog/ulid/v2"
)

type CustomerChecker interface {
	GetByID(ctx context.Context, customerID ulid.ULID) (*customer.Customer, error)
}

type Service struct {
	Repository Repository
	Customers  CustomerChecker
	IdGen      idgen.Generator
}

func NewService(repo Repository, customers CustomerChecker, idGen idgen.Generator) *Service {
	return &Service{
		Repository: repo,
		Customers:  customers,
		IdGen:      idGen,
	}
}

func (s *Service) OpenAccount(ctx context.Context, req *OpenAccountRequest) (*Account, error) {
	if _, err := s.Customers.GetByID(ctx, req.CustomerId); err != nil {
		return nil, err
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "invalid account type")
	}
	if req.InitialBalance < 0 {
		return nil, appErrors.NewValidationError("initial_balance", "must not be negative")
	}

	now := pkg.SetTimestamps()
	account := &Account{
		Id:            pkg.GenerateULIDObject(),
		AccountNumber: s.IdGen.AccountNumber(),
		CustomerId:    req.CustomerId,
		Type:          req.Type,
		IfscCode:      strings.TrimSpace(req.IfscCode),
		Branch:        strings.TrimSpace(req.Branch),
		Balance:       pkg.RoundMoney(req.InitialBalance),
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.Create(ctx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return account, nil
}

func (s *Service) GetByNumber(ctx context.Context, accountNumber string) (*Account, error) {
	account, err := s.Repository.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}
	return account, nil
}

func (s *Service) GetBalance(ctx context.Context, accountNumber string) (float64, error) {
	account, err := s.GetByNumber(ctx, accountNumber)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *Service) UpdateStatus(ctx context.Context, accountNumber string, status Status) (*Account, error) {
	if !status.IsValid() {
		return nil, appErrors.NewValidationError("status", "invalid account status")
	}

	account, err := s.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	if account.Status == StatusClosed && status != StatusClosed {
		return nil, appErrors.NewValidationError("status", "closed accounts cannot be reopened")
	}
	if status == StatusClosed && account.Balance != 0 {
		return nil, appErrors.NewValidationError("status", "account still holds a balance")
	}

	account.Status = status
	account.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return account, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID ulid.ULID, pagination *pkg.PaginationParams) ([]*Account, int64, error) {
	if _, err := s.Customers.GetByID(ctx, customerID); err != nil {
		return nil, 0, err
	}
	return s.Repository.GetByCustomerID(ctx, customerID, pagination)
}

type OpenAccountRequest struct {
	CustomerId     ulid.ULID
	Type           AccountType
	IfscCode       string
	Branch         string
	InitialBalance float64
}

package customer

import (
	"context"
	"strings"

	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "must not be empty")
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, appErrors.NewValidationError("email", "must not be empty")
	}

	if existing, _ := s.Repository.GetByEmail(ctx, email); existing != nil {
		return nil, appErrors.ErrConflict.WithMessage("email already registered")
	}

	now := pkg.SetTimestamps()
	customer := &Customer{
		Id:        pkg.GenerateULIDObject(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		KycStatus: KycPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, customer); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, customerID ulid.ULID) (*Customer, error) {
	customer, err := s.Repository.GetByID(ctx, customerID)
	if err != nil {
		return nil, appErrors.ErrCustomerNotFound.WithError(err)
	}
	return customer, nil
}

func (s *Service) UpdateKycStatus(ctx context.Context, customerID ulid.ULID, status KycStatus) (*Customer, error) {
	if !status.IsValid() {
		return nil, appErrors.NewValidationError("kyc_status", "invalid KYC status")
	}

	customer, err := s.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.KycStatus = status
	customer.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, customer); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*Customer, int64, error) {
	return s.Repository.List(ctx, pagination)
}

type CreateCustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

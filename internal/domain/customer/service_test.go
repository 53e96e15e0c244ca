package customer_test

import (
	"context"
	"errors"
	"testing"

	"Corebank/internal/domain/customer"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeCustomerRepository struct {
	byID    map[ulid.ULID]*customer.Customer
	byEmail map[string]*customer.Customer
}

func newFakeCustomerRepository() *fakeCustomerRepository {
	return &fakeCustomerRepository{
		byID:    map[ulid.ULID]*customer.Customer{},
		byEmail: map[string]*customer.Customer{},
	}
}

func (f *fakeCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	f.byID[c.Id] = c
	f.byEmail[c.Email] = c
	return nil
}

func (f *fakeCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	f.byID[c.Id] = c
	f.byEmail[c.Email] = c
	return nil
}

func (f *fakeCustomerRepository) GetByID(ctx context.Context, customerID ulid.ULID) (*customer.Customer, error) {
	c, ok := f.byID[customerID]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepository) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*customer.Customer, int64, error) {
	return nil, 0, nil
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	svc := customer.NewService(newFakeCustomerRepository())

	created, err := svc.Create(context.Background(), &customer.CreateCustomerRequest{
		Name:  "  Asha Rao  ",
		Email: "Asha.Rao@Example.com",
		Phone: "9876543210",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Name != "Asha Rao" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Email != "asha.rao@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.KycStatus != customer.KycPending {
		t.Fatalf("expected PENDING, got %s", created.KycStatus)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := customer.NewService(newFakeCustomerRepository())

	req := &customer.CreateCustomerRequest{Name: "Asha Rao", Email: "asha@example.com"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Create(context.Background(), req)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestCreateCustomerEmptyName(t *testing.T) {
	t.Parallel()

	svc := customer.NewService(newFakeCustomerRepository())

	_, err := svc.Create(context.Background(), &customer.CreateCustomerRequest{Name: "   ", Email: "a@b.c"})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestUpdateKycStatus(t *testing.T) {
	t.Parallel()

	svc := customer.NewService(newFakeCustomerRepository())
	created, err := svc.Create(context.Background(), &customer.CreateCustomerRequest{Name: "Asha", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateKycStatus(context.Background(), created.Id, customer.KycVerified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.KycStatus != customer.KycVerified {
		t.Fatalf("expected VERIFIED, got %s", updated.KycStatus)
	}

	_, err = svc.UpdateKycStatus(context.Background(), created.Id, customer.KycStatus("UNKNOWN"))
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestGetUnknownCustomer(t *testing.T) {
	t.Parallel()

	svc := customer.NewService(newFakeCustomerRepository())

	_, err := svc.GetByID(context.Background(), pkg.GenerateULIDObject())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "CUSTOMER_NOT_FOUND" {
		t.Fatalf("expected CUSTOMER_NOT_FOUND, got %v", err)
	}
}

package account_test

import (
	"context"
	"errors"
	"testing"

	"Corebank/internal/domain/account"
	"Corebank/internal/domain/customer"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeAccountRepository struct {
	byNumber map[string]*account.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{byNumber: map[string]*account.Account{}}
}

func (f *fakeAccountRepository) Create(ctx context.Context, a *account.Account) error {
	f.byNumber[a.AccountNumber] = a
	return nil
}

func (f *fakeAccountRepository) Update(ctx context.Context, a *account.Account) error {
	f.byNumber[a.AccountNumber] = a
	return nil
}

func (f *fakeAccountRepository) GetByID(ctx context.Context, accountID ulid.ULID) (*account.Account, error) {
	for _, a := range f.byNumber {
		if a.Id == accountID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeAccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	a, ok := f.byNumber[accountNumber]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccountRepository) GetByCustomerID(ctx context.Context, customerID ulid.ULID, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	return nil, 0, nil
}

type fakeCustomerChecker struct {
	known map[ulid.ULID]bool
}

func (f *fakeCustomerChecker) GetByID(ctx context.Context, customerID ulid.ULID) (*customer.Customer, error) {
	if !f.known[customerID] {
		return nil, appErrors.ErrCustomerNotFound
	}
	return &customer.Customer{Id: customerID, KycStatus: customer.KycVerified}, nil
}

type fixedGenerator struct{}

func (fixedGenerator) AccountNumber() string { return "999999999999" }
func (fixedGenerator) CardNumber() string    { return "4000111122223333" }
func (fixedGenerator) CVV() string           { return "123" }
func (fixedGenerator) PIN() string           { return "4321" }

func newService(customerID ulid.ULID) (*account.Service, *fakeAccountRepository) {
	repo := newFakeAccountRepository()
	checker := &fakeCustomerChecker{known: map[ulid.ULID]bool{customerID: true}}
	return account.NewService(repo, checker, fixedGenerator{}), repo
}

func TestOpenAccount(t *testing.T) {
	t.Parallel()

	customerID := pkg.GenerateULIDObject()
	svc, _ := newService(customerID)

	opened, err := svc.OpenAccount(context.Background(), &account.OpenAccountRequest{
		CustomerId:     customerID,
		Type:           account.TypeSavings,
		IfscCode:       " CORE0001234 ",
		Branch:         "MG Road",
		InitialBalance: 1000.456,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opened.AccountNumber != "999999999999" {
		t.Fatalf("expected generated number, got %s", opened.AccountNumber)
	}
	if opened.Balance != 1000.46 {
		t.Fatalf("expected rounded balance 1000.46, got %v", opened.Balance)
	}
	if opened.IfscCode != "CORE0001234" {
		t.Fatalf("expected trimmed IFSC, got %q", opened.IfscCode)
	}
	if opened.Status != account.StatusActive {
		t.Fatalf("expected ACTIVE, got %s", opened.Status)
	}
}

func TestOpenAccountUnknownCustomer(t *testing.T) {
	t.Parallel()

	svc, _ := newService(pkg.GenerateULIDObject())

	_, err := svc.OpenAccount(context.Background(), &account.OpenAccountRequest{
		CustomerId: pkg.GenerateULIDObject(),
		Type:       account.TypeSavings,
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "CUSTOMER_NOT_FOUND" {
		t.Fatalf("expected CUSTOMER_NOT_FOUND, got %v", err)
	}
}

func TestOpenAccountNegativeBalance(t *testing.T) {
	t.Parallel()

	customerID := pkg.GenerateULIDObject()
	svc, _ := newService(customerID)

	_, err := svc.OpenAccount(context.Background(), &account.OpenAccountRequest{
		CustomerId:     customerID,
		Type:           account.TypeSavings,
		InitialBalance: -1,
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCloseAccountWithBalance(t *testing.T) {
	t.Parallel()

	customerID := pkg.GenerateULIDObject()
	svc, _ := newService(customerID)

	opened, err := svc.OpenAccount(context.Background(), &account.OpenAccountRequest{
		CustomerId:     customerID,
		Type:           account.TypeSavings,
		InitialBalance: 500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), opened.AccountNumber, account.StatusClosed)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestReopenClosedAccount(t *testing.T) {
	t.Parallel()

	customerID := pkg.GenerateULIDObject()
	svc, _ := newService(customerID)

	opened, err := svc.OpenAccount(context.Background(), &account.OpenAccountRequest{
		CustomerId: customerID,
		Type:       account.TypeSavings,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), opened.AccountNumber, account.StatusClosed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), opened.AccountNumber, account.StatusActive)
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestFreezeAndUnfreeze(t *testing.T) {
	t.Parallel()

	customerID := pkg.GenerateULIDObject()
	svc, _ := newService(customerID)

	opened, err := svc.OpenAccount(context.Background(), &account.OpenAccountRequest{
		CustomerId: customerID,
		Type:       account.TypeSavings,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frozen, err := svc.UpdateStatus(context.Background(), opened.AccountNumber, account.StatusFrozen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frozen.Status != account.StatusFrozen {
		t.Fatalf("expected FROZEN, got %s", frozen.Status)
	}

	active, err := svc.UpdateStatus(context.Background(), opened.AccountNumber, account.StatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active.Status != account.StatusActive {
		t.Fatalf("expected ACTIVE, got %s", active.Status)
	}
}

func TestGetBalanceUnknownAccount(t *testing.T) {
	t.Parallel()

	svc, _ := newService(pkg.GenerateULIDObject())

	_, err := svc.GetBalance(context.Background(), "000000")
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "ACCOUNT_NOT_FOUND" {
		t.Fatalf("expected ACCOUNT_NOT_FOUND, got %v", err)
	}
}

package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Corebank/config"
	"Corebank/internal/domain/account"
	"Corebank/internal/domain/billing"
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/ledger"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeAccountRepository struct {
	accounts map[ulid.ULID]*account.Account
}

func (f *fakeAccountRepository) Create(ctx context.Context, a *account.Account) error { return nil }
func (f *fakeAccountRepository) Update(ctx context.Context, a *account.Account) error { return nil }

func (f *fakeAccountRepository) GetByID(ctx context.Context, accountID ulid.ULID) (*account.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	for _, a := range f.accounts {
		if a.AccountNumber == accountNumber {
			copied := *a
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeAccountRepository) GetByCustomerID(ctx context.Context, customerID ulid.ULID, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	return nil, 0, nil
}

type fakeLedgerRepository struct {
	entries []*ledger.Transaction

	applied    []float64
	begun      int
	committed  int
	rolledBack int
}

func (f *fakeLedgerRepository) BeginTx(ctx context.Context) (interface{}, error) {
	f.begun++
	return struct{}{}, nil
}

func (f *fakeLedgerRepository) CommitTx(tx interface{}) error {
	f.committed++
	return nil
}

func (f *fakeLedgerRepository) RollbackTx(tx interface{}) error {
	f.rolledBack++
	return nil
}

func (f *fakeLedgerRepository) ApplyDelta(ctx context.Context, tx interface{}, accountID ulid.ULID, delta float64, txn *ledger.Transaction) error {
	f.applied = append(f.applied, delta)
	return nil
}

func (f *fakeLedgerRepository) Create(ctx context.Context, tx interface{}, txn *ledger.Transaction) error {
	return nil
}

func (f *fakeLedgerRepository) MarkEmiConverted(ctx context.Context, tx interface{}, transactionID ulid.ULID) (bool, error) {
	return true, nil
}

func (f *fakeLedgerRepository) GetByID(ctx context.Context, transactionID ulid.ULID) (*ledger.Transaction, error) {
	return nil, errors.New("not found")
}

func (f *fakeLedgerRepository) GetByAccountID(ctx context.Context, accountID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error) {
	return nil, 0, nil
}

func (f *fakeLedgerRepository) GetByCardAndDateRange(ctx context.Context, cardID ulid.ULID, from, to time.Time) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for _, e := range f.entries {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCardRepository struct {
	cards       map[string]*card.Card
	creditUsed  []float64
	updateCalls int
}

func (f *fakeCardRepository) Create(ctx context.Context, c *card.Card) error { return nil }

func (f *fakeCardRepository) Update(ctx context.Context, c *card.Card) error {
	f.updateCalls++
	f.cards[c.CardNumber] = c
	return nil
}

func (f *fakeCardRepository) GetByID(ctx context.Context, cardID ulid.ULID) (*card.Card, error) {
	for _, c := range f.cards {
		if c.Id == cardID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeCardRepository) GetByNumber(ctx context.Context, cardNumber string) (*card.Card, error) {
	c, ok := f.cards[cardNumber]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCardRepository) GetByAccountID(ctx context.Context, accountID ulid.ULID) ([]*card.Card, error) {
	return nil, nil
}

func (f *fakeCardRepository) GetCreditCardByAccountID(ctx context.Context, accountID ulid.ULID) (*card.Card, error) {
	for _, c := range f.cards {
		if c.AccountId == accountID && c.Type == card.TypeCredit {
			copied := *c
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeCardRepository) AdjustCreditUsed(ctx context.Context, tx interface{}, cardID ulid.ULID, delta float64) error {
	f.creditUsed = append(f.creditUsed, delta)
	return nil
}

type fakeBillRepository struct {
	bills    map[ulid.ULID]*billing.CreditCardBill
	created  int
	onCreate func(bill *billing.CreditCardBill) error
}

func (f *fakeBillRepository) Create(ctx context.Context, tx interface{}, bill *billing.CreditCardBill) error {
	if f.onCreate != nil {
		if err := f.onCreate(bill); err != nil {
			return err
		}
	}
	f.created++
	f.bills[bill.Id] = bill
	return nil
}

func (f *fakeBillRepository) Update(ctx context.Context, tx interface{}, bill *billing.CreditCardBill) error {
	f.bills[bill.Id] = bill
	return nil
}

func (f *fakeBillRepository) GetByID(ctx context.Context, billID ulid.ULID) (*billing.CreditCardBill, error) {
	b, ok := f.bills[billID]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBillRepository) GetByCardAndBillingDate(ctx context.Context, cardID ulid.ULID, billingDate time.Time) (*billing.CreditCardBill, error) {
	for _, b := range f.bills {
		if b.CardId == cardID && b.BillingDate.Equal(billingDate) {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBillRepository) GetLatestUnpaid(ctx context.Context, cardID ulid.ULID) (*billing.CreditCardBill, error) {
	var latest *billing.CreditCardBill
	for _, b := range f.bills {
		if b.CardId != cardID || b.PaymentStatus == billing.StatusPaid {
			continue
		}
		if latest == nil || b.BillingDate.After(latest.BillingDate) {
			latest = b
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeBillRepository) GetByCardID(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*billing.CreditCardBill, int64, error) {
	return nil, 0, nil
}

func billingConfig() config.BillingConfig {
	return config.BillingConfig{
		PaymentDueDays:  15,
		MinimumDuePct:   0.05,
		MinimumDueFloor: 50,
	}
}

type fixture struct {
	service *billing.Service
	bills   *fakeBillRepository
	cards   *fakeCardRepository
	ledger  *fakeLedgerRepository
	card    *card.Card
	acct    *account.Account
}

func newFixture(balance float64) *fixture {
	acct := &account.Account{
		Id:            pkg.GenerateULIDObject(),
		AccountNumber: "111111",
		CustomerId:    pkg.GenerateULIDObject(),
		Type:          account.TypeSavings,
		Balance:       balance,
		Status:        account.StatusActive,
	}

	c := &card.Card{
		Id:                pkg.GenerateULIDObject(),
		CardNumber:        "4000111122223333",
		CustomerId:        acct.CustomerId,
		AccountId:         acct.Id,
		Type:              card.TypeCredit,
		Status:            card.StatusActive,
		CreditLimit:       100000,
		BillGenerationDay: 20,
	}

	accountRepo := &fakeAccountRepository{accounts: map[ulid.ULID]*account.Account{acct.Id: acct}}
	ledgerRepo := &fakeLedgerRepository{}
	cardRepo := &fakeCardRepository{cards: map[string]*card.Card{c.CardNumber: c}}
	billRepo := &fakeBillRepository{bills: map[ulid.ULID]*billing.CreditCardBill{}}
	locks := pkg.NewKeyedMutex()
	ledgerSvc := ledger.NewService(accountRepo, ledgerRepo, locks, nil)

	return &fixture{
		service: billing.NewService(billRepo, cardRepo, accountRepo, ledgerSvc, locks, billingConfig()),
		bills:   billRepo,
		cards:   cardRepo,
		ledger:  ledgerRepo,
		card:    c,
		acct:    acct,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) addEntry(txType ledger.Type, amount float64, on time.Time) {
	cardID := f.card.Id
	f.ledger.entries = append(f.ledger.entries, &ledger.Transaction{
		Id:        pkg.GenerateULIDObject(),
		AccountId: f.acct.Id,
		CardId:    &cardID,
		Amount:    amount,
		Type:      txType,
		Date:      on,
	})
}

func TestGenerateBill(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	f.addEntry(ledger.TypeCardPurchase, 2000, date(2026, time.March, 1))
	f.addEntry(ledger.TypeCardPurchase, 3000, date(2026, time.March, 15))
	f.addEntry(ledger.TypeBillPayment, 1000, date(2026, time.March, 10))

	bill, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bill.BillingDate.Equal(date(2026, time.March, 20)) {
		t.Fatalf("expected billing date 2026-03-20, got %v", bill.BillingDate)
	}
	if !bill.DueDate.Equal(date(2026, time.April, 4)) {
		t.Fatalf("expected due date 2026-04-04, got %v", bill.DueDate)
	}
	if bill.TotalAmountDue != 4000 {
		t.Fatalf("expected total 4000, got %v", bill.TotalAmountDue)
	}
	if bill.MinimumAmountDue != 200 {
		t.Fatalf("expected minimum due 200, got %v", bill.MinimumAmountDue)
	}
	if bill.PaymentStatus != billing.StatusUnpaid {
		t.Fatalf("expected UNPAID, got %s", bill.PaymentStatus)
	}
}

func TestGenerateBillBeforeCycleDay(t *testing.T) {
	t.Parallel()

	f := newFixture(0)

	bill, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bill.BillingDate.Equal(date(2026, time.February, 20)) {
		t.Fatalf("expected billing date 2026-02-20, got %v", bill.BillingDate)
	}
}

func TestGenerateBillIdempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	f.addEntry(ledger.TypeCardPurchase, 2000, date(2026, time.March, 1))

	first, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Id != second.Id {
		t.Fatal("expected the same statement on regeneration")
	}
	if f.bills.created != 1 {
		t.Fatalf("expected a single insert, got %d", f.bills.created)
	}
}

func TestGenerateBillIncludesGenerationDayActivity(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	// a purchase in the afternoon of the generation day closes with this cycle
	f.addEntry(ledger.TypeCardPurchase, 1500, time.Date(2026, time.March, 20, 14, 0, 0, 0, time.UTC))
	// the cycle opens the day after the previous billing date
	f.addEntry(ledger.TypeCardPurchase, 500, time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC))
	// activity on the previous billing date belongs to the previous statement
	f.addEntry(ledger.TypeCardPurchase, 999, time.Date(2026, time.February, 20, 23, 0, 0, 0, time.UTC))

	bill, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.TotalAmountDue != 2000 {
		t.Fatalf("expected total 2000, got %v", bill.TotalAmountDue)
	}
}

func TestGenerateBillLostInsertRace(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	f.addEntry(ledger.TypeCardPurchase, 2000, date(2026, time.March, 1))

	var winner *billing.CreditCardBill
	f.bills.onCreate = func(b *billing.CreditCardBill) error {
		// a concurrent generation commits its statement first
		winner = &billing.CreditCardBill{
			Id:                 pkg.GenerateULIDObject(),
			CardId:             b.CardId,
			BillingDate:        b.BillingDate,
			DueDate:            b.DueDate,
			TotalAmountDue:     b.TotalAmountDue,
			MinimumAmountDue:   b.MinimumAmountDue,
			CurrentOutstanding: b.CurrentOutstanding,
			PaymentStatus:      b.PaymentStatus,
		}
		f.bills.bills[winner.Id] = winner
		return errors.New("duplicate key value violates unique constraint \"idx_bills_card_cycle\"")
	}

	bill, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.Id != winner.Id {
		t.Fatal("expected the already committed statement to be returned")
	}
	if f.bills.created != 0 {
		t.Fatalf("expected no insert after the lost race, got %d", f.bills.created)
	}
}

func TestGenerateBillMinimumDueFloor(t *testing.T) {
	t.Parallel()

	f := newFixture(0)
	f.addEntry(ledger.TypeCardPurchase, 500, date(2026, time.March, 1))

	bill, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.MinimumAmountDue != 50 {
		t.Fatalf("expected floor 50, got %v", bill.MinimumAmountDue)
	}
}

func TestGenerateBillZeroActivity(t *testing.T) {
	t.Parallel()

	f := newFixture(0)

	bill, err := f.service.GenerateBill(context.Background(), f.card.CardNumber, date(2026, time.March, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.TotalAmountDue != 0 || bill.MinimumAmountDue != 0 {
		t.Fatalf("expected zero amounts, got %v/%v", bill.TotalAmountDue, bill.MinimumAmountDue)
	}
	if bill.PaymentStatus != billing.StatusPaid {
		t.Fatalf("expected PAID, got %s", bill.PaymentStatus)
	}
}

func (f *fixture) openBill(total float64) *billing.CreditCardBill {
	bill := &billing.CreditCardBill{
		Id:                 pkg.GenerateULIDObject(),
		CardId:             f.card.Id,
		BillingDate:        date(2026, time.March, 20),
		DueDate:            date(2026, time.April, 4),
		TotalAmountDue:     total,
		MinimumAmountDue:   200,
		CurrentOutstanding: total,
		PaymentStatus:      billing.StatusUnpaid,
	}
	f.bills.bills[bill.Id] = bill
	return bill
}

func TestPayBillFullAmount(t *testing.T) {
	t.Parallel()

	f := newFixture(10000)
	bill := f.openBill(4000)

	paid, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayFullAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if paid.Id != bill.Id {
		t.Fatal("expected the open statement to be settled")
	}
	if paid.PaymentStatus != billing.StatusPaid {
		t.Fatalf("expected PAID, got %s", paid.PaymentStatus)
	}
	if paid.CurrentOutstanding != 0 {
		t.Fatalf("expected outstanding 0, got %v", paid.CurrentOutstanding)
	}
	if len(f.ledger.applied) != 1 || f.ledger.applied[0] != -4000 {
		t.Fatalf("expected a -4000 account debit, got %v", f.ledger.applied)
	}
	if len(f.cards.creditUsed) != 1 || f.cards.creditUsed[0] != -4000 {
		t.Fatalf("expected the credit line released by 4000, got %v", f.cards.creditUsed)
	}
	if f.ledger.committed != 1 {
		t.Fatalf("expected one commit, got %d", f.ledger.committed)
	}
}

func TestPayBillMinimumAmount(t *testing.T) {
	t.Parallel()

	f := newFixture(10000)
	f.openBill(4000)

	paid, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayMinimumAmount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.PaymentStatus != billing.StatusPartial {
		t.Fatalf("expected PARTIAL, got %s", paid.PaymentStatus)
	}
	if paid.CurrentOutstanding != 3800 {
		t.Fatalf("expected outstanding 3800, got %v", paid.CurrentOutstanding)
	}
}

func TestPayBillCurrentOutstanding(t *testing.T) {
	t.Parallel()

	f := newFixture(10000)
	f.openBill(4000)
	// charges made after the statement closed raise the live used credit
	// above the billed outstanding
	f.card.CurrentCreditUsed = 5000

	paid, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayCurrentOutstanding,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.ledger.applied) != 1 || f.ledger.applied[0] != -5000 {
		t.Fatalf("expected a -5000 account debit, got %v", f.ledger.applied)
	}
	if len(f.cards.creditUsed) != 1 || f.cards.creditUsed[0] != -5000 {
		t.Fatalf("expected the credit line released by 5000, got %v", f.cards.creditUsed)
	}
	if paid.CurrentOutstanding != 0 || paid.PaymentStatus != billing.StatusPaid {
		t.Fatalf("expected the statement settled, got %v/%s", paid.CurrentOutstanding, paid.PaymentStatus)
	}
}

func TestPayBillOtherAmountClamped(t *testing.T) {
	t.Parallel()

	f := newFixture(10000)
	f.openBill(4000)

	paid, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayOtherAmount,
		Amount:     9999,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.CurrentOutstanding != 0 || paid.PaymentStatus != billing.StatusPaid {
		t.Fatalf("expected the payment clamped to the outstanding, got %v/%s", paid.CurrentOutstanding, paid.PaymentStatus)
	}
	if f.ledger.applied[0] != -4000 {
		t.Fatalf("expected a -4000 debit, got %v", f.ledger.applied[0])
	}
}

func TestPayBillOtherAmountZero(t *testing.T) {
	t.Parallel()

	f := newFixture(10000)
	f.openBill(4000)

	_, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayOtherAmount,
		Amount:     0,
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestPayBillNoOpenStatement(t *testing.T) {
	t.Parallel()

	f := newFixture(10000)

	_, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayFullAmount,
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "BILL_NOT_FOUND" {
		t.Fatalf("expected BILL_NOT_FOUND, got %v", err)
	}
}

func TestPayBillInsufficientFunds(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	f.openBill(4000)

	_, err := f.service.PayBill(context.Background(), &billing.PayBillRequest{
		CardNumber: f.card.CardNumber,
		Option:     billing.PayFullAmount,
	})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != "INSUFFICIENT_FUNDS" {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if f.ledger.committed != 0 || f.ledger.rolledBack != 1 {
		t.Fatalf("expected rollback only, got %d/%d", f.ledger.committed, f.ledger.rolledBack)
	}
	if len(f.cards.creditUsed) != 0 {
		t.Fatal("credit line must not change on a failed payment")
	}
}

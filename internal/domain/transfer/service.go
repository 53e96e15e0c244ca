package transfer

import (
	"context"
	"fmt"
	"time"

	"Corebank/config"
	"Corebank/internal/domain/ledger"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/events"
	"Corebank/internal/logger"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Ledger   *ledger.Service
	Requests RequestRepository
	Locks    *pkg.KeyedMutex
	Events   events.Publisher
	Config   config.TransferConfig
}

func NewService(ledgerSvc *ledger.Service, requests RequestRepository, locks *pkg.KeyedMutex, publisher events.Publisher, cfg config.TransferConfig) *Service {
	return &Service{
		Ledger:   ledgerSvc,
		Requests: requests,
		Locks:    locks,
		Events:   publisher,
		Config:   cfg,
	}
}

type TransferRequest struct {
	FromAccount string
	ToAccount   string
	Amount      float64
	Channel     Channel
	Remarks     string
}

type TransferResult struct {
	Reference string                `json:"reference"`
	Channel   Channel               `json:"channel"`
	Amount    float64               `json:"amount"`
	Fee       float64               `json:"fee"`
	Status    string                `json:"status"`
	Legs      []*ledger.Transaction `json:"legs"`
}

// Transfer moves money between two accounts over the given channel. The
// debit, channel fee and credit all commit in one atomic unit, with both
// account locks held in lexicographic order for the duration.
func (s *Service) Transfer(ctx context.Context, req *TransferRequest) (*TransferResult, error) {
	if req.Amount <= 0 {
		return nil, appErrors.ErrInvalidTransferAmount
	}
	if !req.Channel.IsValid() {
		return nil, appErrors.NewValidationError("channel", "must be one of NEFT, RTGS, IMPS")
	}
	if req.FromAccount == req.ToAccount {
		return nil, appErrors.NewValidationError("to_account", "cannot transfer to the same account")
	}
	if err := req.Channel.ValidateAmount(s.Config, req.Amount); err != nil {
		return nil, err
	}

	amount := pkg.RoundMoney(req.Amount)
	fee := req.Channel.Fee(s.Config)

	keys := s.Locks.LockAll(req.FromAccount, req.ToAccount)
	defer s.Locks.UnlockAll(keys)

	from, err := s.Ledger.LoadOpenAccount(ctx, req.FromAccount)
	if err != nil {
		return nil, err
	}
	to, err := s.Ledger.LoadOpenAccount(ctx, req.ToAccount)
	if err != nil {
		return nil, err
	}

	tx, err := s.Ledger.Repository.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	debit, err := s.Ledger.ApplyDeltaTx(ctx, tx, from, -amount, req.Channel.debitType(),
		transferDescription(req.Channel, "to", req.ToAccount, req.Remarks), nil)
	if err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, err
	}

	var feeTxn *ledger.Transaction
	if fee > 0 {
		feeTxn, err = s.Ledger.ApplyDeltaTx(ctx, tx, from, -fee, ledger.TypeFee,
			fmt.Sprintf("%s transfer fee", req.Channel), nil)
		if err != nil {
			_ = s.Ledger.Repository.RollbackTx(tx)
			return nil, err
		}
	}

	credit, err := s.Ledger.ApplyDeltaTx(ctx, tx, to, amount, req.Channel.creditType(),
		transferDescription(req.Channel, "from", req.FromAccount, req.Remarks), nil)
	if err != nil {
		_ = s.Ledger.Repository.RollbackTx(tx)
		return nil, err
	}

	if err := s.Ledger.Repository.CommitTx(tx); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	legs := []*ledger.Transaction{debit}
	if feeTxn != nil {
		legs = append(legs, feeTxn)
	}
	legs = append(legs, credit)

	result := &TransferResult{
		Reference: debit.TransactionID,
		Channel:   req.Channel,
		Amount:    amount,
		Fee:       fee,
		Status:    "COMPLETED",
		Legs:      legs,
	}

	if req.Channel == ChannelNEFT {
		result.Status = "PENDING_SETTLEMENT"
		s.scheduleSettlement(result.Reference, req.FromAccount, req.ToAccount, amount)
	}

	return result, nil
}

// scheduleSettlement emits the NEFT settlement notification after the batch
// window elapses. Funds already moved at commit time; this only reports the
// moment the transfer becomes visible to the receiving bank's batch cycle.
func (s *Service) scheduleSettlement(reference, from, to string, amount float64) {
	if s.Events == nil {
		return
	}
	delay := s.Config.NEFTSettlementDelay
	go func() {
		time.Sleep(delay)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.Events.Publish(ctx, "transfer.settled", map[string]any{
			"reference":   reference,
			"fromAccount": from,
			"toAccount":   to,
			"amount":      amount,
			"channel":     ChannelNEFT,
		})
		if err != nil {
			logger.Warn().Err(err).Str("reference", reference).Msg("failed to publish settlement event")
		}
	}()
}

func (s *Service) RequestMoney(ctx context.Context, requesterAccount, payerAccount string, amount float64, description string) (*MoneyRequest, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "must be greater than zero")
	}
	if requesterAccount == payerAccount {
		return nil, appErrors.NewValidationError("payer_account", "cannot request money from yourself")
	}

	if _, err := s.Ledger.LoadOpenAccount(ctx, requesterAccount); err != nil {
		return nil, err
	}
	if _, err := s.Ledger.LoadOpenAccount(ctx, payerAccount); err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	request := &MoneyRequest{
		Id:               pkg.GenerateULIDObject(),
		RequesterAccount: requesterAccount,
		PayerAccount:     payerAccount,
		Amount:           pkg.RoundMoney(amount),
		Description:      description,
		Status:           RequestPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Requests.Create(ctx, request); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if s.Events != nil {
		err := s.Events.Publish(ctx, "money_request.created", map[string]any{
			"requestId":    request.Id.String(),
			"payerAccount": payerAccount,
			"amount":       request.Amount,
		})
		if err != nil {
			logger.Warn().Err(err).Str("requestId", request.Id.String()).Msg("failed to publish money request event")
		}
	}

	return request, nil
}

// RespondToRequest settles a pending money request. Accepting pays the
// requester over IMPS; declining only flips the status.
func (s *Service) RespondToRequest(ctx context.Context, requestID ulid.ULID, accept bool) (*MoneyRequest, error) {
	request, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, appErrors.ErrNotFound.WithMessage("Money request not found").WithError(err)
	}
	if request.Status != RequestPending {
		return nil, appErrors.ErrConflict.WithMessage("Money request has already been settled")
	}

	if !accept {
		request.Status = RequestDeclined
		request.UpdatedAt = pkg.SetTimestamps()
		if err := s.Requests.Update(ctx, request); err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
		return request, nil
	}

	_, err = s.Transfer(ctx, &TransferRequest{
		FromAccount: request.PayerAccount,
		ToAccount:   request.RequesterAccount,
		Amount:      request.Amount,
		Channel:     ChannelIMPS,
		Remarks:     request.Description,
	})
	if err != nil {
		return nil, err
	}

	request.Status = RequestCompleted
	request.UpdatedAt = pkg.SetTimestamps()
	if err := s.Requests.Update(ctx, request); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return request, nil
}

func (s *Service) ListRequests(ctx context.Context, accountNumber string, pagination *pkg.PaginationParams) ([]*MoneyRequest, int64, error) {
	return s.Requests.GetByAccount(ctx, accountNumber, pagination)
}

func transferDescription(channel Channel, direction, counterparty, remarks string) string {
	desc := fmt.Sprintf("%s transfer %s %s", channel, direction, counterparty)
	if remarks != "" {
		desc = fmt.Sprintf("%s: %s", desc, remarks)
	}
	return desc
}

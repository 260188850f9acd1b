package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bankcalc/domain"
	"bankcalc/repository"
)

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields domain.FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "transfer validation failed: " + strings.Join(names, ", ")
}

type TransferService struct {
	accounts  repository.AccountRepository
	ledger    repository.UsageLedger
	transfers repository.TransferRepository
	limits    domain.Limits
	now       func() time.Time
	logger    *logrus.Logger
}

func NewTransferService(
	accounts repository.AccountRepository,
	ledger repository.UsageLedger,
	transfers repository.TransferRepository,
	limits domain.Limits,
	logger *logrus.Logger,
) *TransferService {
	return &TransferService{
		accounts:  accounts,
		ledger:    ledger,
		transfers: transfers,
		limits:    limits,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *TransferService) Limits() domain.Limits {
	return s.limits
}

// transferContext loads balance and usage of the source account. A missing
// account is reported through SourceFound rather than as an error.
func (s *TransferService) transferContext(ctx context.Context, accountID string, at time.Time) (domain.TransferContext, error) {
	tc := domain.TransferContext{Limits: s.limits}
	if strings.TrimSpace(accountID) == "" {
		return tc, nil
	}

	account, err := s.accounts.Get(ctx, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		return tc, nil
	}
	if err != nil {
		return tc, err
	}
	tc.SourceFound = true
	tc.AvailableBalance = account.Balance

	if tc.DailyUsed, tc.MonthlyUsed, err = s.ledger.Usage(ctx, accountID, at); err != nil {
		return tc, err
	}
	return tc, nil
}

// Review validates form against the current ledger state and summarizes the
// transfer for confirmation.
func (s *TransferService) Review(ctx context.Context, form domain.TransferForm) (domain.TransferReview, error) {
	now := s.now()

	tc, err := s.transferContext(ctx, form.SourceAccountID, now)
	if err != nil {
		return domain.TransferReview{}, fmt.Errorf("load transfer context: %w", err)
	}

	errs := ValidateTransferForm(form, tc, now)
	if isOwn(form) && !errs.Has(FieldDestination) {
		if _, err := s.accounts.Get(ctx, form.DestinationAccountID); errors.Is(err, domain.ErrNotFound) {
			errs = append(errs, domain.FieldError{
				Field:   FieldDestination,
				Kind:    domain.KindInvalidInput,
				Message: "Selected destination account does not exist",
			})
		} else if err != nil {
			return domain.TransferReview{}, fmt.Errorf("load destination account: %w", err)
		}
	}
	if len(errs) > 0 {
		return domain.TransferReview{}, &ValidationError{Fields: errs}
	}

	amount := decimal.RequireFromString(strings.TrimSpace(form.Amount))
	code := form.Currency
	if code == "" {
		code = defaultCurrency
	}
	currency, _ := domain.LookupCurrency(code)

	review := domain.TransferReview{
		Amount:          amount,
		Currency:        currency,
		SourceAccountID: form.SourceAccountID,
		Destination:     describeDestination(form),
		Delivery:        domain.DeliveryImmediate,
		RemainingDaily:  s.limits.Daily.Sub(tc.DailyUsed).Sub(amount),
		BalanceAfter:    tc.AvailableBalance.Sub(amount),
	}
	if form.Delivery == domain.DeliveryScheduled {
		date, _ := ParseScheduledDate(form.ScheduledDate, now.Location())
		review.Delivery = domain.DeliveryScheduled
		review.ScheduledFor = &date
	}
	return review, nil
}

// Submit re-validates form and either executes the transfer now or stores it
// for the scheduler.
func (s *TransferService) Submit(ctx context.Context, form domain.TransferForm) (domain.Transfer, error) {
	review, err := s.Review(ctx, form)
	if err != nil {
		return domain.Transfer{}, err
	}

	now := s.now()
	t := domain.Transfer{
		ID:                     uuid.New(),
		Amount:                 review.Amount,
		Currency:               review.Currency.Code,
		SourceAccountID:        form.SourceAccountID,
		DestinationType:        form.DestinationType,
		DestinationAccountID:   form.DestinationAccountID,
		RecipientName:          strings.TrimSpace(form.RecipientName),
		RecipientAccountNumber: strings.TrimSpace(form.RecipientAccountNumber),
		RecipientBankName:      strings.TrimSpace(form.RecipientBankName),
		IFSCCode:               strings.ToUpper(strings.TrimSpace(form.IFSCCode)),
		Description:            form.Description,
		Status:                 domain.StatusPending,
		CreatedAt:              now,
	}
	if t.DestinationType == "" {
		t.DestinationType = domain.DestinationOwn
	}

	if review.Delivery == domain.DeliveryScheduled {
		t.Status = domain.StatusScheduled
		t.ScheduledFor = review.ScheduledFor
	}

	if err := s.transfers.Save(ctx, t); err != nil {
		return domain.Transfer{}, fmt.Errorf("save transfer: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"transfer_id": t.ID,
		"source":      t.SourceAccountID,
		"amount":      t.Amount.String(),
	})

	if t.Status == domain.StatusScheduled {
		log.WithField("scheduled_for", t.ScheduledFor.Format(dateLayout)).Info("Transfer scheduled")
		return t, nil
	}

	if err := s.complete(ctx, &t, now); err != nil {
		log.WithError(err).Error("Transfer failed")
		var lerr *domain.LimitError
		switch {
		case errors.As(err, &lerr):
			return t, &ValidationError{Fields: domain.FieldErrors{
				*periodLimitError(lerr, review.Currency.Symbol),
			}}
		case errors.Is(err, domain.ErrInsufficientFunds):
			return t, &ValidationError{Fields: domain.FieldErrors{{
				Field:   FieldAmount,
				Kind:    domain.KindInsufficientBalance,
				Message: "Insufficient balance in source account",
			}}}
		}
		return t, err
	}

	log.Info("Transfer completed")
	return t, nil
}

func (s *TransferService) Get(ctx context.Context, id uuid.UUID) (domain.Transfer, error) {
	return s.transfers.Get(ctx, id)
}

// ProcessScheduled executes scheduled transfers that are due. Each transfer is
// claimed first so it runs at most once, then checked again against limits
// and balance; a failure marks that transfer and processing moves on.
func (s *TransferService) ProcessScheduled(ctx context.Context) (completed, failed int, err error) {
	now := s.now()
	due, err := s.transfers.ListDue(ctx, now)
	if err != nil {
		return 0, 0, fmt.Errorf("list due transfers: %w", err)
	}

	s.logger.Infof("Found %d scheduled transfers to process", len(due))
	for i := range due {
		if err := ctx.Err(); err != nil {
			return completed, failed, err
		}

		t := &due[i]
		claimed, err := s.transfers.Claim(ctx, t.ID)
		if err != nil {
			s.logger.WithError(err).WithField("transfer_id", t.ID).Warn("Failed to claim scheduled transfer")
			failed++
			continue
		}
		if !claimed {
			s.logger.WithField("transfer_id", t.ID).Debug("Scheduled transfer already claimed")
			continue
		}
		t.Status = domain.StatusProcessing

		if err := s.processScheduled(ctx, t, now); err != nil {
			s.logger.WithError(err).WithField("transfer_id", t.ID).Warn("Scheduled transfer failed")
			failed++
			continue
		}
		completed++
	}
	return completed, failed, nil
}

func (s *TransferService) processScheduled(ctx context.Context, t *domain.Transfer, now time.Time) error {
	tc, err := s.transferContext(ctx, t.SourceAccountID, now)
	if err != nil {
		// Nothing moved yet, so hand the transfer back to the next run.
		t.Status = domain.StatusScheduled
		if uerr := s.transfers.Update(ctx, *t); uerr != nil {
			s.logger.WithError(uerr).WithField("transfer_id", t.ID).Error("Failed to release scheduled transfer")
		}
		return err
	}
	if !tc.SourceFound {
		return s.fail(ctx, t, "Source account no longer exists")
	}

	outcome := ValidateTransfer(domain.TransferRequest{
		Amount:           t.Amount,
		Currency:         t.Currency,
		AvailableBalance: tc.AvailableBalance,
		DailyUsed:        tc.DailyUsed,
		MonthlyUsed:      tc.MonthlyUsed,
		Limits:           s.limits,
	})
	if !outcome.OK {
		return s.fail(ctx, t, outcome.Reasons[0].Message)
	}

	return s.complete(ctx, t, now)
}

// complete reserves the amount against the period limits, moves the money and
// persists the final status. A failed move gives the reservation back.
func (s *TransferService) complete(ctx context.Context, t *domain.Transfer, at time.Time) error {
	log := s.logger.WithField("transfer_id", t.ID)

	if err := s.ledger.Reserve(ctx, t.SourceAccountID, t.Amount, s.limits, at); err != nil {
		reason := err.Error()
		var lerr *domain.LimitError
		if errors.As(err, &lerr) {
			reason = periodLimitError(lerr, currencySymbol(t.Currency)).Message
		}
		if merr := s.markFailed(ctx, t, reason); merr != nil {
			log.WithError(merr).Error("Failed to mark transfer as failed")
		}
		return err
	}

	if err := s.move(ctx, t); err != nil {
		if rerr := s.ledger.Release(ctx, t.SourceAccountID, t.Amount, at); rerr != nil {
			log.WithError(rerr).Error("Failed to release transfer usage")
		}
		if merr := s.markFailed(ctx, t, err.Error()); merr != nil {
			log.WithError(merr).Error("Failed to mark transfer as failed")
		}
		return err
	}

	t.Status = domain.StatusCompleted
	t.CompletedAt = &at
	if err := s.transfers.Update(ctx, *t); err != nil {
		log.WithError(err).Error("Transfer moved but its status was not saved")
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

func (s *TransferService) move(ctx context.Context, t *domain.Transfer) error {
	if err := s.accounts.Debit(ctx, t.SourceAccountID, t.Amount); err != nil {
		return err
	}
	if t.DestinationType != domain.DestinationOwn {
		return nil
	}
	if err := s.accounts.Credit(ctx, t.DestinationAccountID, t.Amount); err != nil {
		if rerr := s.accounts.Credit(ctx, t.SourceAccountID, t.Amount); rerr != nil {
			s.logger.WithError(rerr).WithField("transfer_id", t.ID).Error("Failed to refund source account")
		}
		return fmt.Errorf("credit destination: %w", err)
	}
	return nil
}

func (s *TransferService) markFailed(ctx context.Context, t *domain.Transfer, reason string) error {
	t.Status = domain.StatusFailed
	t.FailureReason = reason
	if err := s.transfers.Update(ctx, *t); err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// fail marks t failed with reason and returns an error describing it.
func (s *TransferService) fail(ctx context.Context, t *domain.Transfer, reason string) error {
	if err := s.markFailed(ctx, t, reason); err != nil {
		return err
	}
	return errors.New(reason)
}

func isOwn(form domain.TransferForm) bool {
	return form.DestinationType == domain.DestinationOwn || form.DestinationType == ""
}

func describeDestination(form domain.TransferForm) string {
	switch form.DestinationType {
	case domain.DestinationOther:
		return fmt.Sprintf("%s (%s)", strings.TrimSpace(form.RecipientName), strings.TrimSpace(form.RecipientAccountNumber))
	case domain.DestinationExternal:
		return fmt.Sprintf("%s (%s), IFSC %s", strings.TrimSpace(form.RecipientName),
			strings.TrimSpace(form.RecipientAccountNumber), strings.ToUpper(strings.TrimSpace(form.IFSCCode)))
	}
	return "Own account " + form.DestinationAccountID
}

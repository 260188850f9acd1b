package service

import (
	"context"
	"errors"

	"bankcalc/domain"
)

var ErrWrongStep = errors.New("action not allowed in the current step")

// TransferFlow is the part of TransferService the wizard drives.
type TransferFlow interface {
	Review(ctx context.Context, form domain.TransferForm) (domain.TransferReview, error)
	Submit(ctx context.Context, form domain.TransferForm) (domain.Transfer, error)
}

// TransferWizard walks a transfer through form, review and success. Field
// errors keep it on the form step. It is not safe for concurrent use.
type TransferWizard struct {
	flow   TransferFlow
	step   domain.WizardStep
	form   domain.TransferForm
	errs   domain.FieldErrors
	review domain.TransferReview
	result domain.Transfer
}

func NewTransferWizard(flow TransferFlow) *TransferWizard {
	return &TransferWizard{flow: flow, step: domain.StepForm}
}

func (w *TransferWizard) Step() domain.WizardStep { return w.step }
func (w *TransferWizard) Form() domain.TransferForm { return w.form }
func (w *TransferWizard) Errors() domain.FieldErrors { return w.errs }
func (w *TransferWizard) Review() domain.TransferReview { return w.review }
func (w *TransferWizard) Result() domain.Transfer { return w.result }

// Submit validates form and advances to review.
func (w *TransferWizard) Submit(ctx context.Context, form domain.TransferForm) error {
	if w.step != domain.StepForm {
		return ErrWrongStep
	}
	w.form = form

	review, err := w.flow.Review(ctx, form)
	if err != nil {
		w.captureErrors(err)
		return err
	}

	w.errs = nil
	w.review = review
	w.step = domain.StepReview
	return nil
}

// Back returns from review to the form, keeping what was entered.
func (w *TransferWizard) Back() error {
	if w.step != domain.StepReview {
		return ErrWrongStep
	}
	w.step = domain.StepForm
	return nil
}

// Confirm executes the reviewed transfer. If the ledger changed since review
// and the form no longer validates, the wizard returns to the form.
func (w *TransferWizard) Confirm(ctx context.Context) error {
	if w.step != domain.StepReview {
		return ErrWrongStep
	}

	t, err := w.flow.Submit(ctx, w.form)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			w.errs = verr.Fields
			w.step = domain.StepForm
		}
		return err
	}

	w.result = t
	w.step = domain.StepSuccess
	return nil
}

// Reset starts a new transfer.
func (w *TransferWizard) Reset() {
	*w = TransferWizard{flow: w.flow, step: domain.StepForm}
}

func (w *TransferWizard) captureErrors(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		w.errs = verr.Fields
		return
	}
	w.errs = nil
}

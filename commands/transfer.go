package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bankcalc/domain"
	"bankcalc/service"
)

func transferCmd() *cobra.Command {
	var (
		form    domain.TransferForm
		destTyp string
		date    string
		confirm bool
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Review and send a transfer through the configured backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.DestinationType = domain.DestinationType(destTyp)
			form.Delivery = domain.DeliveryImmediate
			if date != "" {
				form.Delivery = domain.DeliveryScheduled
				form.ScheduledDate = date
			}

			b, err := openBackends(cmd.Context())
			if err != nil {
				return err
			}
			defer b.Close()

			out := cmd.OutOrStdout()
			wizard := service.NewTransferWizard(b.transferService())

			if err := wizard.Submit(cmd.Context(), form); err != nil {
				return reportWizardError(out, wizard, err)
			}
			printReview(out, wizard.Review())

			if !confirm {
				fmt.Fprintln(out, "\nRun again with --yes to send.")
				return nil
			}
			if err := wizard.Confirm(cmd.Context()); err != nil {
				return reportWizardError(out, wizard, err)
			}

			t := wizard.Result()
			fmt.Fprintf(out, "\nTransaction %s: %s\n", t.ID, t.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Amount, "amount", "", "amount to send")
	f.StringVar(&form.Currency, "currency", "NPR", "currency code: NPR, USD or INR")
	f.StringVar(&form.SourceAccountID, "from", "", "source account id")
	f.StringVar(&destTyp, "to-type", string(domain.DestinationOwn), "destination type: own, other or external")
	f.StringVar(&form.DestinationAccountID, "to", "", "destination account id for own transfers")
	f.StringVar(&form.RecipientName, "recipient", "", "recipient name")
	f.StringVar(&form.RecipientAccountNumber, "account-number", "", "recipient account number")
	f.StringVar(&form.RecipientBankName, "bank", "", "recipient bank name")
	f.StringVar(&form.IFSCCode, "ifsc", "", "IFSC code for external transfers")
	f.StringVar(&form.Description, "description", "", "transfer description")
	f.StringVar(&date, "date", "", "schedule for this date, YYYY-MM-DD")
	f.BoolVarP(&confirm, "yes", "y", false, "send without stopping at the review")
	return cmd
}

func printReview(out io.Writer, r domain.TransferReview) {
	fmt.Fprintf(out, "Amount:          %s%s\n", r.Currency.Symbol, r.Amount.StringFixed(2))
	fmt.Fprintf(out, "From:            %s\n", r.SourceAccountID)
	fmt.Fprintf(out, "To:              %s\n", r.Destination)
	if r.ScheduledFor != nil {
		fmt.Fprintf(out, "Scheduled for:   %s\n", r.ScheduledFor.Format(time.DateOnly))
	} else {
		fmt.Fprintln(out, "Delivery:        immediate")
	}
	fmt.Fprintf(out, "Balance after:   %s\n", r.BalanceAfter.StringFixed(2))
	fmt.Fprintf(out, "Remaining today: %s\n", r.RemainingDaily.StringFixed(2))
}

func reportWizardError(out io.Writer, w *service.TransferWizard, err error) error {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, e := range w.Errors() {
		fmt.Fprintf(out, "%s: %s\n", e.Field, e.Message)
	}
	return errors.New("transfer not valid")
}

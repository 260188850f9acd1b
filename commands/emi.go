package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bankcalc/domain"
	"bankcalc/service"
)

func emiCmd() *cobra.Command {
	var (
		input    domain.LoanInput
		unit     string
		schedule bool
		start    string
	)

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly installment of a loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.TenureUnit = domain.TenureUnit(unit)

			result, err := service.ComputeEMI(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monthly EMI:     %.0f\n", result.MonthlyPayment)
			fmt.Fprintf(out, "Total interest:  %.0f\n", result.TotalInterest)
			fmt.Fprintf(out, "Total payable:   %.0f\n", result.TotalPayment)
			fmt.Fprintf(out, "Principal/interest: %.1f%% / %.1f%%\n", result.PrincipalPercent, result.InterestPercent)

			if !schedule {
				return nil
			}

			from := time.Now()
			if start != "" {
				if from, err = time.Parse(time.DateOnly, start); err != nil {
					return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
				}
			}
			installments, err := service.AmortizationSchedule(input, from)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "#\tDue\tPayment\tPrincipal\tInterest\tBalance\t")
			for _, in := range installments {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
					in.Number, in.DueDate.Format(time.DateOnly), in.Payment, in.Principal, in.Interest, in.Balance)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Float64Var(&input.Amount, "principal", 0, "loan amount")
	cmd.Flags().Float64Var(&input.InterestRate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&input.Tenure, "tenure", 0, "loan tenure")
	cmd.Flags().StringVar(&unit, "unit", string(domain.TenureMonths), "tenure unit: months or years")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "print the amortization schedule")
	cmd.Flags().StringVar(&start, "start", "", "schedule start date, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("tenure")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bankcalc/domain"
	"bankcalc/service"
)

func maturityCmd() *cobra.Command {
	var (
		input   domain.DepositInput
		elapsed int
	)

	cmd := &cobra.Command{
		Use:   "maturity",
		Short: "Compute the maturity of a fixed deposit",
		RunE: func(cmd *cobra.Command, args []string) error {
			deposits := service.NewDepositService(cfg.MinDepositAmount, cfg.WithdrawalPenalty, logger)
			out := cmd.OutOrStdout()

			result, err := deposits.Maturity(input)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Maturity amount: %.0f\n", result.MaturityAmount)
			fmt.Fprintf(out, "Interest earned: %.0f\n", result.InterestEarned)

			if elapsed == 0 {
				return nil
			}
			w, err := deposits.PrematureWithdrawal(domain.WithdrawalInput{DepositInput: input, ElapsedMonths: elapsed})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Withdrawal after %d months at %.2f%%: %.0f\n", elapsed, w.ReducedRate, w.Amount)
			return nil
		},
	}

	cmd.Flags().Float64Var(&input.Amount, "principal", 0, "deposit amount")
	cmd.Flags().Float64Var(&input.InterestRate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&input.TenureMonths, "tenure", 0, "tenure in months")
	cmd.Flags().IntVar(&elapsed, "withdraw-after", 0, "also price a premature withdrawal after this many months")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("tenure")
	return cmd
}

package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bankcalc/domain"
	"bankcalc/service"
)

func validateTransferCmd() *cobra.Command {
	var amount, balance, dailyUsed, monthlyUsed, currency string

	cmd := &cobra.Command{
		Use:   "validate-transfer",
		Short: "Check an amount against balance and transfer limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.TransferRequest{Currency: currency, Limits: cfg.Limits}
			for _, f := range []struct {
				name string
				raw  string
				dst  *decimal.Decimal
			}{
				{"amount", amount, &req.Amount},
				{"balance", balance, &req.AvailableBalance},
				{"daily-used", dailyUsed, &req.DailyUsed},
				{"monthly-used", monthlyUsed, &req.MonthlyUsed},
			} {
				d, err := decimal.NewFromString(f.raw)
				if err != nil {
					return fmt.Errorf("--%s: %w", f.name, err)
				}
				*f.dst = d
			}

			out := cmd.OutOrStdout()
			outcome := service.ValidateTransfer(req)
			if outcome.OK {
				fmt.Fprintln(out, "OK")
				return nil
			}
			for _, r := range outcome.Reasons {
				fmt.Fprintf(out, "%s: %s\n", r.Field, r.Message)
			}
			return errors.New("transfer rejected")
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount to send")
	cmd.Flags().StringVar(&balance, "balance", "0", "available balance of the source account")
	cmd.Flags().StringVar(&dailyUsed, "daily-used", "0", "amount already sent today")
	cmd.Flags().StringVar(&monthlyUsed, "monthly-used", "0", "amount already sent this month")
	cmd.Flags().StringVar(&currency, "currency", "NPR", "currency code: NPR, USD or INR")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

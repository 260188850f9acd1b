package commands

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bankcalc/config"
)

var (
	cfg    *config.Config
	logger *logrus.Logger
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bankcalc",
		Short:         "Loan, deposit and transfer calculations for the banking app",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = c

			logger = logrus.New()
			logger.SetOutput(os.Stderr)
			logger.SetFormatter(&logrus.JSONFormatter{})
			logger.SetLevel(cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		serveCmd(),
		emiCmd(),
		maturityCmd(),
		validateTransferCmd(),
		transferCmd(),
	)
	return root
}

func Execute() error {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		root.PrintErrln("Error:", err)
		return err
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gregtusar/stake/internal/config"
	"github.com/gregtusar/stake/internal/logging"
	"github.com/gregtusar/stake/pkg/stake"
)

var (
	cfgFile  string
	exchange string
	output   string
	logger   *logrus.Logger
)

func main() {
	rootCmd := newRootCmd()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stake",
		Short:         "Command line client for the Stake brokerage",
		Long:          `Query and trade a Stake account on the NYSE or ASX exchange from the command line`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&exchange, "exchange", "", "exchange to use: NYSE or ASX (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", formatJSON, "output format: json or yaml")

	rootCmd.AddCommand(
		userCmd(),
		marketCmd(),
		productsCmd(),
		equitiesCmd(),
		ordersCmd(),
		tradeCmd(),
		transactionsCmd(),
		fundingsCmd(),
		fxCmd(),
		watchlistsCmd(),
		ratingsCmd(),
		statementsCmd(),
	)
	return rootCmd
}

// action is the body of a command run inside an authenticated session.
type action func(ctx context.Context, c *stake.Client) (any, error)

// run loads the configuration, logs in, runs fn and prints its result. The
// session is closed before run returns.
func run(cmd *cobra.Command, fn action) error {
	if err := checkFormat(output); err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if exchange != "" {
		cfg.Stake.Exchange = exchange
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	if err := cfg.LoadSecrets(cmd.Context(), logger); err != nil {
		return err
	}

	client := stake.New(cfg.ClientOptions(logger))

	var result any
	err = client.Session(cmd.Context(), cfg.LoginRequest(), func(ctx context.Context, c *stake.Client) error {
		var err error
		result, err = fn(ctx, c)
		return err
	})
	if err != nil {
		var failed *stake.TradeFailedError
		if errors.As(err, &failed) && failed.Trade != nil {
			if perr := printResult(cmd.OutOrStdout(), output, failed.Trade); perr != nil {
				logger.WithError(perr).Warn("Failed to print trade")
			}
		}
		return err
	}

	return printResult(cmd.OutOrStdout(), output, result)
}

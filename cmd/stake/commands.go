package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gregtusar/stake/pkg/models"
	"github.com/gregtusar/stake/pkg/stake"
)

func userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.User(), nil
			})
		},
	}
}

func marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show the market status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.Market.Get(ctx)
			})
		},
	}
}

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Look up products and instruments"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get SYMBOL",
			Short: "Get a product by symbol",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Products.Get(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "search KEYWORD",
			Short: "Search instruments by keyword",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Products.Search(ctx, args[0])
				})
			},
		},
	)
	return cmd
}

func equitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equities",
		Short: "List equity positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.Equities.List(ctx)
			})
		},
	}
}

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "List and cancel pending orders"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List pending orders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Orders.List(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "cancel ORDER_ID",
			Short: "Cancel a pending order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					ok, err := c.Orders.Cancel(ctx, args[0])
					return map[string]bool{"cancelled": ok}, err
				})
			},
		},
		&cobra.Command{
			Use:   "brokerage AMOUNT",
			Short: "Quote the brokerage fee for an order amount",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[0], err)
				}
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Orders.Brokerage(ctx, amount)
				})
			},
		},
	)
	return cmd
}

type tradeFlags struct {
	orderType    string
	quantity     float64
	amountCash   float64
	limitPrice   float64
	stopPrice    float64
	price        float64
	comments     string
	validity     string
	validityDate string
}

func (f *tradeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.orderType, "type", "market", "order type: market, limit or stop")
	cmd.Flags().Float64Var(&f.quantity, "quantity", 0, "number of units")
	cmd.Flags().Float64Var(&f.amountCash, "cash", 0, "dollar amount for US market and stop buys")
	cmd.Flags().Float64Var(&f.limitPrice, "limit", 0, "limit price")
	cmd.Flags().Float64Var(&f.stopPrice, "stop", 0, "stop price")
	cmd.Flags().Float64Var(&f.price, "price", 0, "reference price for ASX market orders")
	cmd.Flags().StringVar(&f.comments, "comments", "", "order comments")
	cmd.Flags().StringVar(&f.validity, "validity", "", "ASX order validity: GTC or GFD")
	cmd.Flags().StringVar(&f.validityDate, "validity-date", "", "ASX validity date (YYYY-MM-DD)")
}

func (f *tradeFlags) request(side models.Side, symbol string) (models.TradeRequest, error) {
	req := models.TradeRequest{
		Side:       side,
		Type:       models.OrderType(strings.ToUpper(strings.TrimSpace(f.orderType))),
		Symbol:     symbol,
		Quantity:   f.quantity,
		AmountCash: f.amountCash,
		LimitPrice: f.limitPrice,
		StopPrice:  f.stopPrice,
		Price:      f.price,
		Comments:   f.comments,
		Validity:   models.Validity(strings.ToUpper(f.validity)),
	}
	switch req.Type {
	case models.OrderTypeMarket, models.OrderTypeLimit, models.OrderTypeStop:
	default:
		return req, fmt.Errorf("unknown order type %q", f.orderType)
	}
	if f.validityDate != "" {
		d, err := parseDate(f.validityDate)
		if err != nil {
			return req, err
		}
		req.ValidityDate = d
	}
	return req, nil
}

func tradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Place a buy or sell order",
		Long:  `Place an order and confirm it against the account history. A rejected or unconfirmed trade exits non-zero.`,
	}
	for _, side := range []models.Side{models.SideBuy, models.SideSell} {
		side := side
		flags := &tradeFlags{}
		sub := &cobra.Command{
			Use:   strings.ToLower(string(side)) + " SYMBOL",
			Short: "Place a " + strings.ToLower(string(side)) + " order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				req, err := flags.request(side, args[0])
				if err != nil {
					return err
				}
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Trades.Submit(ctx, req)
				})
			},
		}
		flags.register(sub)
		cmd.AddCommand(sub)
	}
	return cmd
}

func transactionsCmd() *cobra.Command {
	var from, to, direction string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List the transaction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.TransactionFilter{
				Limit:     limit,
				Offset:    offset,
				Direction: models.TransactionDirection(direction),
			}
			var err error
			if filter.From, err = parseOptionalDate(from); err != nil {
				return err
			}
			if filter.To, err = parseOptionalDate(to); err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.Transactions.List(ctx, filter)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&direction, "direction", "", "US paging direction: prev or next")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of entries to skip")
	return cmd
}

func fundingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "fundings", Short: "Deposits, withdrawals and cash"}

	var from, to string
	var statuses, actions []string
	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List funding records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.FundingFilter{Limit: limit, Offset: offset}
			for _, s := range statuses {
				filter.Statuses = append(filter.Statuses, models.FundingStatus(strings.ToUpper(s)))
			}
			for _, a := range actions {
				filter.Actions = append(filter.Actions, models.FundingAction(strings.ToUpper(a)))
			}
			var err error
			if filter.From, err = parseOptionalDate(from); err != nil {
				return err
			}
			if filter.To, err = parseOptionalDate(to); err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.Fundings.List(ctx, filter)
			})
		},
	}
	list.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	list.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	list.Flags().StringSliceVar(&statuses, "status", nil, "ASX status filter, repeatable")
	list.Flags().StringSliceVar(&actions, "action", nil, "ASX action filter, repeatable")
	list.Flags().IntVar(&limit, "limit", 0, "page size")
	list.Flags().IntVar(&offset, "offset", 0, "records to skip")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "inflight",
			Short: "List funds in flight",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Fundings.InFlight(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "cash",
			Short: "Show cash available for trading and withdrawal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Fundings.CashAvailable(ctx)
				})
			},
		},
	)
	return cmd
}

func fxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fx FROM TO AMOUNT",
		Short: "Quote a currency conversion, e.g. fx AUD USD 1000",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}
			req := models.FxConversionRequest{
				FromCurrency: models.Currency(strings.ToUpper(args[0])),
				ToCurrency:   models.Currency(strings.ToUpper(args[1])),
				FromAmount:   amount,
			}
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.FX.Convert(ctx, req)
			})
		},
	}
}

func watchlistsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "watchlists", Short: "Manage watchlists"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List watchlists",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Watchlists.List(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show a watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Watchlists.Get(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "create NAME [TICKER...]",
			Short: "Create a watchlist",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Watchlists.Create(ctx, args[0], args[1:]...)
				})
			},
		},
		&cobra.Command{
			Use:   "add ID TICKER...",
			Short: "Add tickers to a watchlist",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Watchlists.AddTickers(ctx, args[0], args[1:]...)
				})
			},
		},
		&cobra.Command{
			Use:   "remove ID TICKER...",
			Short: "Remove tickers from a watchlist",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					return c.Watchlists.RemoveTickers(ctx, args[0], args[1:]...)
				})
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a watchlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
					ok, err := c.Watchlists.Delete(ctx, args[0])
					return map[string]bool{"deleted": ok}, err
				})
			},
		},
	)
	return cmd
}

func ratingsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ratings SYMBOL...",
		Short: "List analyst ratings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.RatingsRequest{Symbols: args, Limit: limit}
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.Ratings.List(ctx, req)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", models.DefaultRatingsLimit, "maximum number of ratings")
	return cmd
}

func statementsCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "statements SYMBOL",
		Short: "Show financial statements for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseOptionalDate(from)
			if err != nil {
				return err
			}
			req := models.StatementRequest{Symbol: args[0], StartDate: start}
			return run(cmd, func(ctx context.Context, c *stake.Client) (any, error) {
				return c.Statements.List(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD), default one year ago")
	return cmd
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return parseDate(s)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type CheckoutOptions struct {
	*RootOptions
	Items         []string
	TableID       string
	PaymentMethod string
	OrderType     string
	CustomerName  string
	CustomerPhone string
}

func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Ring up an order from the command line",
		Long: `Price a cart from the menu and submit it. Offline terminals queue the
order for the next sync instead of committing it.

Example:
  pos-ledger checkout --item pizza-margherita=2 --item lemonade --table t1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseCartLines(opts.Items)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --item", err)
			}
			req := services.CheckoutRequest{
				Items:         lines,
				TableID:       opts.TableID,
				PaymentMethod: opts.PaymentMethod,
				OrderType:     opts.OrderType,
				CustomerName:  opts.CustomerName,
				CustomerPhone: opts.CustomerPhone,
			}
			return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *Runtime) error {
				res, err := rt.Services.Orders.Checkout(ctx, req)
				if err != nil {
					return WrapExitError(ExitFailure, "checkout failed", err)
				}
				return opts.formatter(cmd).Success(res, func(w io.Writer) error {
					verb := "Committed"
					if res.Queued {
						verb = "Queued"
					}
					_, err := fmt.Fprintf(w, "%s order %s: %s\n", verb, res.Order.ID, utils.FormatCurrency(res.Order.Total))
					return err
				})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Items, "item", "i", nil, "menu item id, optionally =quantity (repeatable)")
	cmd.Flags().StringVar(&opts.TableID, "table", "", "table id for dine-in orders")
	cmd.Flags().StringVar(&opts.PaymentMethod, "payment", services.DefaultPaymentMethod, "payment method")
	cmd.Flags().StringVar(&opts.OrderType, "type", "", "dine-in, pickup or delivery")
	cmd.Flags().StringVar(&opts.CustomerName, "customer", "", "customer name")
	cmd.Flags().StringVar(&opts.CustomerPhone, "phone", "", "customer phone")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// parseCartLines turns "id" or "id=qty" into cart lines.
func parseCartLines(args []string) ([]services.CartLine, error) {
	lines := make([]services.CartLine, 0, len(args))
	for _, arg := range args {
		id, qty, found := strings.Cut(strings.TrimSpace(arg), "=")
		line := services.CartLine{MenuItemID: id, Quantity: 1}
		if id == "" {
			return nil, fmt.Errorf("empty item in %q", arg)
		}
		if found {
			n, err := strconv.Atoi(qty)
			if err != nil {
				return nil, fmt.Errorf("quantity in %q: %w", arg, err)
			}
			line.Quantity = n
		}
		lines = append(lines, line)
	}
	return lines, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type OrdersOptions struct {
	*RootOptions
	Active bool
}

func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List committed orders",
		Long: `List the order ledger, newest first.

With --active only orders that are not completed are shown, oldest first,
in the order the kitchen works them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *Runtime) error {
				var (
					orders []models.Order
					err    error
				)
				if opts.Active {
					orders, err = rt.Services.Ledger.Active(ctx)
				} else {
					orders, err = rt.Services.Ledger.List(ctx)
				}
				if err != nil {
					return err
				}
				return opts.formatter(cmd).Success(orders, func(w io.Writer) error {
					return renderOrders(w, orders)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Active, "active", false, "only orders not yet completed")

	cmd.AddCommand(newOrderStatusCommand(rootOpts))
	return cmd
}

func newOrderStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Move an order to pending, preparing, ready or completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *Runtime) error {
				id, status := args[0], strings.ToLower(args[1])
				if err := rt.Services.Ledger.UpdateStatus(ctx, id, status); err != nil {
					if errors.Is(err, services.ErrInvalidStatus) {
						return WrapExitError(ExitCommandError, "cannot update order", err)
					}
					return err
				}
				order, err := rt.Services.Ledger.Get(ctx, id)
				if err != nil {
					return WrapExitError(ExitFailure, "order not in ledger", err)
				}
				return opts.formatter(cmd).Success(order, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Order %s is now %s\n", order.ID, order.Status)
					return err
				})
			})
		},
	}
}

func renderOrders(w io.Writer, orders []models.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Created", "Table", "Type", "Status", "Items", "Total")
	for _, o := range orders {
		row := []string{
			o.ID,
			o.CreatedAt.Local().Format("2006-01-02 15:04"),
			o.TableID,
			o.OrderType,
			o.Status,
			summarizeItems(o.Items),
			utils.FormatCurrency(o.Total),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func summarizeItems(items []models.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

// withRuntime opens the runtime for a one-shot command and closes it after fn.
func withRuntime(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, *Runtime) error) error {
	utils.InfoLogger.SetOutput(cmd.ErrOrStderr())

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	rt, err := OpenRuntime(ctx, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer rt.Close()
	return fn(ctx, rt)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

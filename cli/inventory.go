package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/pos-ledger/models"
)

type InventoryOptions struct {
	*RootOptions
	LowOnly bool
}

func NewInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InventoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *Runtime) error {
				var (
					items []models.InventoryItem
					err   error
				)
				if opts.LowOnly {
					items, err = rt.Services.Inventory.LowStock(ctx)
				} else {
					items, err = rt.Services.Inventory.List(ctx)
				}
				if err != nil {
					return err
				}
				return opts.formatter(cmd).Success(items, func(w io.Writer) error {
					return renderInventory(w, items)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&opts.LowOnly, "low", false, "only items at or below their threshold")

	return cmd
}

func renderInventory(w io.Writer, items []models.InventoryItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No inventory items.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Category", "Quantity", "Unit", "Threshold", "")
	for _, it := range items {
		flag := ""
		if it.IsLow() {
			flag = "LOW"
		}
		row := []string{
			it.ID,
			it.Name,
			it.Category,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			it.Unit,
			strconv.FormatFloat(it.Threshold, 'f', -1, 64),
			flag,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

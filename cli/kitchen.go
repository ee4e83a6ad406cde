package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type KitchenOptions struct {
	*RootOptions
	Once bool
}

func NewKitchenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KitchenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "kitchen",
		Short: "Follow active orders like a kitchen display",
		Long: `Print the active orders and reprint them whenever the ledger changes,
on this terminal or any other sharing the database. Without a change the
list is still refreshed every LEDGER_POLL_INTERVAL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKitchen(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Once, "once", false, "print once and exit")

	return cmd
}

func runKitchen(cmd *cobra.Command, opts *KitchenOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	return withRuntime(cmd, opts.RootOptions, func(ctx context.Context, rt *Runtime) error {
		out := opts.formatter(cmd)
		var renderErr error
		refresh := func(ctx context.Context) {
			orders, err := rt.Services.Ledger.Active(ctx)
			if err != nil {
				utils.ErrorLogger.WithField("error", err).Warn("Could not read active orders")
				return
			}
			renderErr = out.Success(orders, func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "Active orders: %d (%s)\n", len(orders), time.Now().Format("15:04:05")); err != nil {
					return err
				}
				return renderOrders(w, orders)
			})
		}

		if opts.Once {
			refresh(ctx)
			return renderErr
		}

		monitor := services.NewChangeMonitor(rt.Store, rt.Services.Bus)
		monitor.Interval = rt.Config.ChangePollInterval
		if err := monitor.Start(); err != nil {
			return err
		}
		defer monitor.Stop()

		sub := rt.Services.Bus.Subscribe(kds.TopicLedgerChanged)
		defer sub.Close()
		kds.Follow(ctx, sub, rt.Config.LedgerPollInterval, refresh)
		return renderErr
	})
}

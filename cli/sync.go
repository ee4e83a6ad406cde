package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/pos-ledger/services"
)

func NewQueueCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show orders waiting in the offline queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *Runtime) error {
				orders, err := rt.Services.Queue.PeekAll(ctx)
				if err != nil {
					return err
				}
				return opts.formatter(cmd).Success(orders, func(w io.Writer) error {
					if _, err := fmt.Fprintf(w, "%d order(s) waiting to sync\n", len(orders)); err != nil {
						return err
					}
					if len(orders) == 0 {
						return nil
					}
					return renderOrders(w, orders)
				})
			})
		},
	}
}

type flushResult struct {
	Flushed int    `json:"flushed"`
	Error   string `json:"error,omitempty"`
}

func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit everything in the offline queue",
		Long: `Flush the offline queue into the ledger in the order the orders were
queued. A failed commit stops the flush; orders committed before it are
removed from the queue and the rest stay for the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *Runtime) error {
				n, err := rt.Services.Sync.Flush(ctx)
				switch {
				case errors.Is(err, services.ErrOffline):
					return WrapExitError(ExitCommandError, "terminal is offline", err)
				case err != nil && !errors.Is(err, services.ErrFlushPartial):
					return err
				}

				res := flushResult{Flushed: n}
				if err != nil {
					res.Error = err.Error()
				}
				if outErr := opts.formatter(cmd).Success(res, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Synced %d order(s)\n", n)
					return err
				}); outErr != nil {
					return outErr
				}
				if err != nil {
					return WrapExitError(ExitFailure, "sync stopped early", err)
				}
				return nil
			})
		},
	}
}

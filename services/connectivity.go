package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/yeremiapane/pos-ledger/utils"
)

// Connectivity is the signal that routes submits to the ledger or to the
// offline queue.
type Connectivity struct {
	online atomic.Bool
}

func NewConnectivity(online bool) *Connectivity {
	c := &Connectivity{}
	c.online.Store(online)
	return c
}

func (c *Connectivity) Online() bool { return c.online.Load() }

// SetOnline reports whether the state changed.
func (c *Connectivity) SetOnline(online bool) bool {
	if c.online.Swap(online) == online {
		return false
	}
	if online {
		utils.InfoLogger.Info("Connectivity restored, orders commit directly")
	} else {
		utils.ErrorLogger.Warn("Connectivity lost, orders go to the offline queue")
	}
	return true
}

// Probe pings every interval and follows the result until ctx is done.
func (c *Connectivity) Probe(ctx context.Context, interval time.Duration, ping func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, interval)
			err := ping(pctx)
			cancel()
			if err != nil {
				utils.InfoLogger.WithField("error", err).Debug("Connectivity probe failed")
			}
			c.SetOnline(err == nil)
		}
	}
}

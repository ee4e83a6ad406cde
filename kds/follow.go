package kds

import (
	"context"
	"time"
)

// Follow calls refresh once, then again on every event from sub and on every
// tick of interval, until ctx is done or the subscription closes.
func Follow(ctx context.Context, sub *Subscription, interval time.Duration, refresh func(context.Context)) {
	refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.C():
			if !ok {
				return
			}
			refresh(ctx)
		case <-ticker.C:
			refresh(ctx)
		}
	}
}

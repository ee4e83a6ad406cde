package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOnlineReportsTransitions(t *testing.T) {
	c := NewConnectivity(true)
	assert.True(t, c.Online())
	assert.False(t, c.SetOnline(true))
	assert.True(t, c.SetOnline(false))
	assert.False(t, c.Online())
}

func TestProbeFollowsPing(t *testing.T) {
	c := NewConnectivity(true)
	var failing atomic.Bool
	failing.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Probe(ctx, 10*time.Millisecond, func(context.Context) error {
		if failing.Load() {
			return errors.New("unreachable")
		}
		return nil
	})

	require.Eventually(t, func() bool { return !c.Online() }, time.Second, 5*time.Millisecond)
	failing.Store(false)
	require.Eventually(t, c.Online, time.Second, 5*time.Millisecond)
}

func TestAutoSyncFlushesWhenOnline(t *testing.T) {
	env := newTestEnv(t, false)
	queueOrders(t, env, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go env.svc.Sync.Run(ctx, 10*time.Millisecond)

	time.Sleep(40 * time.Millisecond)
	pending, err := env.svc.Queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	env.svc.Connectivity.SetOnline(true)
	require.Eventually(t, func() bool {
		n, err := env.svc.Queue.Len(ctx)
		return err == nil && n == 0
	}, time.Second, 10*time.Millisecond)

	orders, err := env.svc.Ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

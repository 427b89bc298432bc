package network

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveL1(t *testing.T) {
	ctx := context.Background()
	r := NewResolver()

	t.Run("well-known name gets default endpoint", func(t *testing.T) {
		network, err := r.ResolveL1(ctx, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, uint64(11155111), network.ChainID)
		assert.NotEmpty(t, network.RPCURL)
	})

	t.Run("name lookup is case-insensitive", func(t *testing.T) {
		network, err := r.ResolveL1(ctx, "Mainnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), network.ChainID)
	})

	t.Run("url passes through", func(t *testing.T) {
		network, err := r.ResolveL1(ctx, "http://10.0.0.5:8545")
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:8545", network.RPCURL)
	})

	t.Run("unrecognized identifier treated as endpoint", func(t *testing.T) {
		network, err := r.ResolveL1(ctx, "geth.internal:8545")
		require.NoError(t, err)
		assert.Equal(t, "geth.internal:8545", network.RPCURL)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := r.ResolveL1(ctx, "")
		assert.Error(t, err)
	})
}

func TestResolveL2(t *testing.T) {
	ctx := context.Background()
	r := NewResolver()

	t.Run("url accepted", func(t *testing.T) {
		network, err := r.ResolveL2(ctx, "https://sepolia.era.zksync.dev")
		require.NoError(t, err)
		assert.Equal(t, "https://sepolia.era.zksync.dev", network.RPCURL)
	})

	t.Run("no named shortcuts for the rollup", func(t *testing.T) {
		_, err := r.ResolveL2(ctx, "sepolia")
		assert.Error(t, err)
	})
}

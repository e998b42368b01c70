package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/pkg/chain"
)

func TestFromName(t *testing.T) {
	t.Parallel()

	net, err := chain.FromName("polygon")
	require.NoError(t, err)
	require.Equal(t, int64(137), net.ChainID)

	net, err = chain.FromName("BSC")
	require.NoError(t, err)
	require.Equal(t, 18, net.USDTDecimals)

	_, err = chain.FromName("solana")
	require.Error(t, err)
}

func TestNamesCoverSupportedNetworks(t *testing.T) {
	t.Parallel()

	names := chain.Names()
	require.Len(t, names, 4)
	for _, name := range names {
		net, err := chain.FromName(name)
		require.NoError(t, err)
		require.NotEmpty(t, net.USDTContract)
		require.NotEmpty(t, net.NativeSymbol)
		require.Greater(t, net.ChainID, int64(0))
	}
}

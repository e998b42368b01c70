package walletbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/pkg/chain"
)

func newSignerStub(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/address", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(addressResponse{
			Address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		})
	})
	for endpoint, handler := range handlers {
		mux.HandleFunc(endpoint, handler)
	}
	return httptest.NewServer(mux)
}

func TestNewServiceProbesSigner(t *testing.T) {
	t.Parallel()

	server := newSignerStub(t, nil)
	defer server.Close()

	svc, err := NewService(server.URL, 5*time.Second)
	require.NoError(t, err)
	defer svc.Close()

	address, err := svc.Address(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", address)
}

func TestNewServiceFailsFastOnDeadSigner(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "locked", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewService(server.URL, time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "health check")
}

func TestTokenBalanceCarriesChainID(t *testing.T) {
	t.Parallel()

	server := newSignerStub(t, map[string]http.HandlerFunc{
		"/wallet/tokenBalance": func(w http.ResponseWriter, r *http.Request) {
			var req balanceRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, chain.BSC.ChainID, req.ChainID)
			require.Equal(t, chain.BSC.USDTContract, req.TokenContract)

			w.Write([]byte(`{"balance": "250.75"}`))
		},
	})
	defer server.Close()

	svc, err := NewService(server.URL, 5*time.Second)
	require.NoError(t, err)
	defer svc.Close()

	balance, err := svc.TokenBalance(
		context.Background(), chain.BSC, chain.BSC.USDTContract,
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	)
	require.NoError(t, err)
	require.Equal(t, "250.75", balance.String())
}

func TestWaitForReceiptPollsUntilConfirmed(t *testing.T) {
	t.Parallel()

	var calls int32
	server := newSignerStub(t, map[string]http.HandlerFunc{
		"/wallet/transactionReceipt": func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 2 {
				w.Write([]byte(`{"receipt": null}`))
				return
			}
			w.Write([]byte(`{"receipt": {"txHash": "0xabc", "blockNumber": 42, "success": true}}`))
		},
	})
	defer server.Close()

	svc, err := NewService(server.URL, 5*time.Second)
	require.NoError(t, err)
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receipt, err := svc.WaitForReceipt(ctx, chain.Polygon, "0xabc")
	require.NoError(t, err)
	require.True(t, receipt.Success)
	require.Equal(t, uint64(42), receipt.BlockNumber)
	require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestWaitForReceiptHonorsContext(t *testing.T) {
	t.Parallel()

	server := newSignerStub(t, map[string]http.HandlerFunc{
		"/wallet/transactionReceipt": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"receipt": null}`))
		},
	})
	defer server.Close()

	svc, err := NewService(server.URL, 5*time.Second)
	require.NoError(t, err)
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = svc.WaitForReceipt(ctx, chain.Polygon, "0xabc")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

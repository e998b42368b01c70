package walletbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/ports"
	"github.com/otcdex/otc-daemon/pkg/chain"
)

const receiptPollInterval = 2 * time.Second

// service implements ports.WalletService against an external signer daemon
// speaking JSON over HTTP. Key custody, connection handling and signature
// prompts all live in the signer; this bridge only forwards requests.
type service struct {
	addr   string
	client *http.Client
}

// NewService returns a ports.WalletService connected to the signer daemon
// at addr. The signer is probed once so a misconfigured address fails fast.
func NewService(addr string, requestTimeout time.Duration) (ports.WalletService, error) {
	svc := &service{
		addr:   addr,
		client: &http.Client{Timeout: requestTimeout},
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if _, err := svc.Address(ctx); err != nil {
		return nil, fmt.Errorf("wallet bridge health check: %w", err)
	}
	return svc, nil
}

func (s *service) Address(ctx context.Context) (string, error) {
	var resp addressResponse
	if err := s.call(ctx, "/wallet/address", nil, &resp); err != nil {
		return "", err
	}
	return resp.Address, nil
}

func (s *service) TokenBalance(
	ctx context.Context, network chain.Network, tokenContract, address string,
) (decimal.Decimal, error) {
	var resp balanceResponse
	err := s.call(ctx, "/wallet/tokenBalance", balanceRequest{
		ChainID:       network.ChainID,
		TokenContract: tokenContract,
		Address:       address,
	}, &resp)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (s *service) NativeBalance(
	ctx context.Context, network chain.Network, address string,
) (decimal.Decimal, error) {
	var resp balanceResponse
	err := s.call(ctx, "/wallet/nativeBalance", balanceRequest{
		ChainID: network.ChainID,
		Address: address,
	}, &resp)
	if err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (s *service) CreateTransfer(
	ctx context.Context, network chain.Network, tokenContract, to string,
	amount decimal.Decimal,
) (string, error) {
	var resp txResponse
	err := s.call(ctx, "/wallet/createTransfer", transferRequest{
		ChainID:       network.ChainID,
		TokenContract: tokenContract,
		To:            to,
		Amount:        amount,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Tx, nil
}

func (s *service) SignTransaction(
	ctx context.Context, network chain.Network, unsignedTx string,
) (string, error) {
	var resp txResponse
	err := s.call(ctx, "/wallet/signTransaction", txRequest{
		ChainID: network.ChainID,
		Tx:      unsignedTx,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Tx, nil
}

func (s *service) BroadcastTransaction(
	ctx context.Context, network chain.Network, signedTx string,
) (string, error) {
	var resp txHashResponse
	err := s.call(ctx, "/wallet/broadcastTransaction", txRequest{
		ChainID: network.ChainID,
		Tx:      signedTx,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.TxHash, nil
}

// WaitForReceipt polls the signer for the receipt until it shows up or the
// context expires.
func (s *service) WaitForReceipt(
	ctx context.Context, network chain.Network, txHash string,
) (*ports.TxReceipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		var resp receiptResponse
		err := s.call(ctx, "/wallet/transactionReceipt", txHashRequest{
			ChainID: network.ChainID,
			TxHash:  txHash,
		}, &resp)
		if err != nil {
			return nil, err
		}
		if resp.Receipt != nil {
			return resp.Receipt, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *service) Close() {
	s.client.CloseIdleConnections()
}

func (s *service) call(
	ctx context.Context, endpoint string, payload, out interface{},
) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, s.addr+endpoint, body,
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("wallet bridge: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"wallet bridge %s: status %d: %s",
			endpoint, resp.StatusCode, string(respBody),
		)
	}
	return json.Unmarshal(respBody, out)
}

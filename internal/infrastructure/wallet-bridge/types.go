package walletbridge

import (
	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/ports"
)

type addressResponse struct {
	Address string `json:"address"`
}

type balanceRequest struct {
	ChainID       int64  `json:"chainId"`
	TokenContract string `json:"tokenContract,omitempty"`
	Address       string `json:"address"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type transferRequest struct {
	ChainID       int64           `json:"chainId"`
	TokenContract string          `json:"tokenContract"`
	To            string          `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
}

type txRequest struct {
	ChainID int64  `json:"chainId"`
	Tx      string `json:"tx"`
}

type txResponse struct {
	Tx string `json:"tx"`
}

type txHashRequest struct {
	ChainID int64  `json:"chainId"`
	TxHash  string `json:"txHash"`
}

type txHashResponse struct {
	TxHash string `json:"txHash"`
}

type receiptResponse struct {
	Receipt *ports.TxReceipt `json:"receipt"`
}

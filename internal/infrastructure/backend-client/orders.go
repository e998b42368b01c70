package backendclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
)

type orderClient struct {
	client *httpClient
}

type feedResult struct {
	Orders []*domain.Order    `json:"orders"`
	Stats  *domain.OrderStats `json:"stats"`
}

func (c *orderClient) GetAllBuyOrders(
	ctx context.Context, filters ports.FeedFilters,
) ([]*domain.Order, *domain.OrderStats, error) {
	payload := map[string]interface{}{
		"storecode":     filters.StoreCode,
		"limit":         filters.Limit,
		"page":          filters.Page,
		"walletAddress": filters.WalletAddress,
	}
	if filters.FromDate != "" {
		payload["fromDate"] = filters.FromDate
	}
	if filters.ToDate != "" {
		payload["toDate"] = filters.ToDate
	}
	if len(filters.Statuses) > 0 {
		payload["statuses"] = filters.Statuses
	}

	result, err := c.client.post(ctx, "/api/order/getAllBuyOrders", payload, "")
	if err != nil {
		return nil, nil, err
	}

	var feed feedResult
	if err := json.Unmarshal(result, &feed); err != nil {
		return nil, nil, fmt.Errorf("parse feed: %w", err)
	}
	if feed.Stats == nil {
		feed.Stats = &domain.OrderStats{}
	}
	return feed.Orders, feed.Stats, nil
}

func (c *orderClient) AcceptBuyOrder(
	ctx context.Context, idempotencyKey, orderID, sellerWalletAddress,
	tradeID, buyerWalletAddress string,
) error {
	_, err := c.client.post(ctx, "/api/order/acceptBuyOrder", map[string]interface{}{
		"orderId":             orderID,
		"sellerWalletAddress": sellerWalletAddress,
		"tradeId":             tradeID,
		"buyerWalletAddress":  buyerWalletAddress,
	}, idempotencyKey)
	return err
}

func (c *orderClient) RequestPayment(
	ctx context.Context, idempotencyKey, orderID, transactionHash string,
	paymentBankInfo *domain.BankInfo,
) error {
	payload := map[string]interface{}{
		"orderId":         orderID,
		"transactionHash": transactionHash,
	}
	if paymentBankInfo != nil {
		payload["paymentBankInfo"] = paymentBankInfo
	}
	_, err := c.client.post(
		ctx, "/api/order/buyOrderRequestPayment", payload, idempotencyKey,
	)
	return err
}

func (c *orderClient) ConfirmPaymentWithEscrow(
	ctx context.Context, idempotencyKey, orderID string,
	paymentAmount decimal.Decimal, transactionHash string,
) error {
	_, err := c.client.post(
		ctx, "/api/order/buyOrderConfirmPaymentWithEscrow",
		map[string]interface{}{
			"orderId":         orderID,
			"paymentAmount":   paymentAmount,
			"transactionHash": transactionHash,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) ConfirmPaymentWithoutEscrow(
	ctx context.Context, idempotencyKey, orderID string,
	paymentAmount decimal.Decimal, transactionHash string,
) error {
	_, err := c.client.post(
		ctx, "/api/order/buyOrderConfirmPaymentWithoutEscrow",
		map[string]interface{}{
			"orderId":         orderID,
			"paymentAmount":   paymentAmount,
			"transactionHash": transactionHash,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) CancelTradeBySeller(
	ctx context.Context, idempotencyKey, orderID, walletAddress,
	cancelTradeReason string,
) error {
	_, err := c.client.post(
		ctx, "/api/order/cancelTradeBySeller", map[string]interface{}{
			"orderId":           orderID,
			"walletAddress":     walletAddress,
			"cancelTradeReason": cancelTradeReason,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) CancelTradeBySellerWithEscrow(
	ctx context.Context, idempotencyKey, orderID, walletAddress,
	cancelTradeReason string,
) error {
	_, err := c.client.post(
		ctx, "/api/order/cancelTradeBySellerWithEscrow", map[string]interface{}{
			"orderId":           orderID,
			"walletAddress":     walletAddress,
			"cancelTradeReason": cancelTradeReason,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) RollbackPayment(
	ctx context.Context, idempotencyKey, orderID string,
	paymentAmount decimal.Decimal,
) error {
	_, err := c.client.post(
		ctx, "/api/order/buyOrderRollbackPayment", map[string]interface{}{
			"orderId":       orderID,
			"paymentAmount": paymentAmount,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) UpdateSettlement(
	ctx context.Context, idempotencyKey, orderID string,
) error {
	_, err := c.client.post(
		ctx, "/api/order/updateBuyOrderSettlement", map[string]interface{}{
			"orderId": orderID,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) ToggleAudioNotification(
	ctx context.Context, idempotencyKey, orderID string, audioOn bool,
	walletAddress string,
) error {
	_, err := c.client.post(
		ctx, "/api/order/toggleAudioNotification", map[string]interface{}{
			"orderId":       orderID,
			"audioOn":       audioOn,
			"walletAddress": walletAddress,
		}, idempotencyKey,
	)
	return err
}

func (c *orderClient) GetEscrowGasBalance(
	ctx context.Context, escrowAddress string,
) (decimal.Decimal, error) {
	result, err := c.client.post(
		ctx, "/api/order/getEscrowGasBalance", map[string]interface{}{
			"escrowAddress": escrowAddress,
		}, "",
	)
	if err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	if err := json.Unmarshal(result, &balance); err != nil {
		return decimal.Zero, fmt.Errorf("parse gas balance: %w", err)
	}
	return balance, nil
}

func (c *orderClient) GetSellerDirectory(
	ctx context.Context, storeCode string,
) ([]*domain.SellerSnapshot, error) {
	result, err := c.client.post(
		ctx, "/api/store/getSellers", map[string]interface{}{
			"storecode": storeCode,
		}, "",
	)
	if err != nil {
		return nil, err
	}

	var sellers []*domain.SellerSnapshot
	if err := json.Unmarshal(result, &sellers); err != nil {
		return nil, fmt.Errorf("parse seller directory: %w", err)
	}
	return sellers, nil
}

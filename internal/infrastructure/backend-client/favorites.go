package backendclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/otcdex/otc-daemon/internal/core/ports"
)

type favoriteWalletClient struct {
	client *httpClient
}

func (c *favoriteWalletClient) ListFavoriteWallets(
	ctx context.Context, ownerWalletAddress string,
) ([]*ports.FavoriteWallet, error) {
	result, err := c.client.post(ctx, "/api/favorite-wallets/list", map[string]interface{}{
		"ownerWalletAddress": ownerWalletAddress,
	}, "")
	if err != nil {
		return nil, err
	}

	var wallets []*ports.FavoriteWallet
	if err := json.Unmarshal(result, &wallets); err != nil {
		return nil, fmt.Errorf("parse favorite wallets: %w", err)
	}
	return wallets, nil
}

func (c *favoriteWalletClient) AddFavoriteWallet(
	ctx context.Context, ownerWalletAddress, walletAddress, label string,
) error {
	_, err := c.client.post(ctx, "/api/favorite-wallets/add", map[string]interface{}{
		"ownerWalletAddress": ownerWalletAddress,
		"walletAddress":      walletAddress,
		"label":              label,
	}, "")
	return err
}

func (c *favoriteWalletClient) RemoveFavoriteWallet(
	ctx context.Context, ownerWalletAddress, walletAddress string,
) error {
	_, err := c.client.post(ctx, "/api/favorite-wallets/remove", map[string]interface{}{
		"ownerWalletAddress": ownerWalletAddress,
		"walletAddress":      walletAddress,
	}, "")
	return err
}

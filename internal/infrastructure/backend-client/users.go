package backendclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/otcdex/otc-daemon/internal/core/ports"
)

type userClient struct {
	client *httpClient
}

func (c *userClient) GetUser(
	ctx context.Context, walletAddress string,
) (*ports.User, error) {
	return c.getUser(ctx, "/api/user/getUser", walletAddress)
}

func (c *userClient) GetUserByWalletAddress(
	ctx context.Context, walletAddress string,
) (*ports.User, error) {
	return c.getUser(ctx, "/api/user/getUserByWalletAddress", walletAddress)
}

func (c *userClient) getUser(
	ctx context.Context, endpoint, walletAddress string,
) (*ports.User, error) {
	result, err := c.client.post(ctx, endpoint, map[string]interface{}{
		"walletAddress": walletAddress,
	}, "")
	if err != nil {
		return nil, err
	}

	user := &ports.User{}
	if err := json.Unmarshal(result, user); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return user, nil
}

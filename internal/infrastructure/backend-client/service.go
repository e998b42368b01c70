package backendclient

import (
	"time"

	"github.com/otcdex/otc-daemon/internal/core/ports"
)

type service struct {
	client *httpClient
}

// NewService returns a ports.BackendService talking JSON over HTTP to the
// platform backend at baseURL.
func NewService(
	baseURL string, requestTimeout time.Duration, requestsPerSecond int,
) ports.BackendService {
	return &service{
		client: newHTTPClient(baseURL, requestTimeout, requestsPerSecond),
	}
}

func (s *service) Orders() ports.OrderClient {
	return &orderClient{s.client}
}

func (s *service) Users() ports.UserClient {
	return &userClient{s.client}
}

func (s *service) Favorites() ports.FavoriteWalletClient {
	return &favoriteWalletClient{s.client}
}

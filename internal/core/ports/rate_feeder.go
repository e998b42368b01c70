package ports

import "github.com/otcdex/otc-daemon/internal/core/domain"

// RateFeeder streams the external KRW/USDT market rate. Implementations
// keep a live connection to the venue and flush the latest quote on a fixed
// cadence, so consumers see at most one quote per interval regardless of
// how fast the venue pushes. Start blocks until Stop is called or the
// connection cannot be re-established, and closes the rate channel on the
// way out.
type RateFeeder interface {
	Start() error
	Stop()
	RateChannel() chan domain.RateQuote
}

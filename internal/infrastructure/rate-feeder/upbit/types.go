package upbitfeeder

import "github.com/shopspring/decimal"

type tickerMessage struct {
	Type       string          `json:"type"`
	Code       string          `json:"code"`
	TradePrice decimal.Decimal `json:"trade_price"`
	Timestamp  int64           `json:"timestamp"`
}

package upbitfeeder

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"

	"github.com/otcdex/otc-daemon/internal/core/domain"
	"github.com/otcdex/otc-daemon/internal/core/ports"
)

const (
	// UpbitWebSocketURL is the base url to open a connection with upbit.
	// This can be tweaked if in the future it might change, even if unlikely.
	UpbitWebSocketURL = "api.upbit.com"

	// Ticker is the market the platform quotes against.
	Ticker = "KRW-USDT"
)

type service struct {
	conn        *websocket.Conn
	writeTicker *time.Ticker

	latestQuoteMtx *sync.RWMutex
	latestQuote    *domain.RateQuote

	chLock   *sync.Mutex
	chClosed bool
	rateChan chan domain.RateQuote
	quitChan chan struct{}
}

// NewService returns a ports.RateFeeder streaming the KRW/USDT rate from
// upbit. The latest received quote is flushed to the rate channel every
// interval milliseconds, so consumers see a fixed cadence regardless of how
// fast the venue pushes.
func NewService(interval int) (ports.RateFeeder, error) {
	writeTicker := time.NewTicker(time.Duration(interval) * time.Millisecond)

	conn, err := connectAndSubscribe()
	if err != nil {
		return nil, err
	}

	return &service{
		conn:           conn,
		writeTicker:    writeTicker,
		latestQuoteMtx: &sync.RWMutex{},
		chLock:         &sync.Mutex{},
		rateChan:       make(chan domain.RateQuote),
		quitChan:       make(chan struct{}, 1),
	}, nil
}

// Start blocks reading ticker messages until Stop is called. A dropped
// connection is re-established and re-subscribed; Start returns only when
// stopped or when reconnecting fails.
func (s *service) Start() error {
	go s.flushLoop()

	mustReconnect, err := s.readLoop()
	for mustReconnect {
		log.WithError(err).Warn("upbit: connection dropped unexpectedly, reconnecting")

		var conn *websocket.Conn
		conn, err = connectAndSubscribe()
		if err != nil {
			// Closing the channel tells consumers the feed is gone for
			// good; flushing the stale quote forever would hide it.
			s.writeTicker.Stop()
			s.closeChannels()
			return err
		}
		s.conn = conn

		log.Debug("upbit: connection and subscription re-established")
		mustReconnect, err = s.readLoop()
	}
	return err
}

func (s *service) Stop() {
	s.quitChan <- struct{}{}
}

func (s *service) RateChannel() chan domain.RateQuote {
	return s.rateChan
}

func connectAndSubscribe() (*websocket.Conn, error) {
	wsURL := url.URL{Scheme: "wss", Host: UpbitWebSocketURL, Path: "/websocket/v1"}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect to upbit: %w", err)
	}

	msg := []interface{}{
		map[string]string{"ticket": randstr.Hex(16)},
		map[string]interface{}{
			"type":  "ticker",
			"codes": []string{Ticker},
		},
	}
	if err := conn.WriteJSON(msg); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", Ticker, err)
	}
	return conn, nil
}

func (s *service) readLoop() (mustReconnect bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mustReconnect = true
			if recErr, ok := rec.(error); ok {
				err = recErr
			}
		}
	}()

	for {
		select {
		case <-s.quitChan:
			s.writeTicker.Stop()
			s.closeChannels()
			err = s.conn.Close()
			return false, err
		default:
			// A read error of any kind leaves the connection unusable, so
			// it is raised as a panic and the recover above turns it into
			// a reconnect signal.
			_, raw, err := s.conn.ReadMessage()
			if err != nil {
				panic(err)
			}

			quote := parseQuote(raw)
			if quote == nil {
				continue
			}
			s.writeQuote(quote)
		}
	}
}

func (s *service) flushLoop() {
	for range s.writeTicker.C {
		s.writeToRateChan()
	}
}

func (s *service) writeQuote(quote *domain.RateQuote) {
	s.latestQuoteMtx.Lock()
	defer s.latestQuoteMtx.Unlock()
	s.latestQuote = quote
}

func (s *service) readQuote() *domain.RateQuote {
	s.latestQuoteMtx.RLock()
	defer s.latestQuoteMtx.RUnlock()
	return s.latestQuote
}

func (s *service) writeToRateChan() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	if s.chClosed {
		return
	}
	quote := s.readQuote()
	if quote == nil {
		return
	}
	s.rateChan <- *quote
}

func (s *service) closeChannels() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	s.chClosed = true
	close(s.rateChan)
	close(s.quitChan)
}

func parseQuote(msg []byte) *domain.RateQuote {
	var tick tickerMessage
	if err := json.Unmarshal(msg, &tick); err != nil {
		return nil
	}
	if tick.Type != "ticker" || tick.Code != Ticker {
		return nil
	}
	return &domain.RateQuote{
		Ticker:    tick.Code,
		Price:     tick.TradePrice,
		Timestamp: time.UnixMilli(tick.Timestamp),
	}
}

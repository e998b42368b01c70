package poller

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	New       Status = "NEW"
	Waiting   Status = "WAITING"
	Processed Status = "PROCESSED"
)

type Status string

type observableStatus struct {
	sync.RWMutex
	status Status
}

func newObservableStatus() *observableStatus {
	return &observableStatus{
		status: New,
	}
}

func (o *observableStatus) Get() Status {
	o.RLock()
	defer o.RUnlock()
	return o.status
}

func (o *observableStatus) Set(status Status) {
	o.Lock()
	defer o.Unlock()
	o.status = status
}

// observableHandler drives one observable on its own ticker. A tick is
// skipped while a previous observation is still in flight, so a slow
// request is never overlapped by the next one for the same resource.
type observableHandler struct {
	observable  Observable
	wg          *sync.WaitGroup
	ticker      *time.Ticker
	eventChan   chan Event
	errChan     chan error
	stopChan    chan int
	status      *observableStatus
	rateLimiter *rate.Limiter
}

func newObservableHandler(
	observable Observable,
	wg *sync.WaitGroup,
	interval int,
	eventChan chan Event,
	errChan chan error,
	rateLimiter *rate.Limiter,
) *observableHandler {
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	stopChan := make(chan int, 1)

	return &observableHandler{
		observable,
		wg,
		ticker,
		eventChan,
		errChan,
		stopChan,
		newObservableStatus(),
		rateLimiter,
	}
}

func (oh *observableHandler) start() {
	log.Debugf("start observing %s", oh.observable.Key())
	oh.wg.Add(1)
	for {
		select {
		case <-oh.ticker.C:
			if oh.status.Get() != Waiting {
				oh.observe()
			}
		case <-oh.stopChan:
			oh.ticker.Stop()
			close(oh.stopChan)
			return
		}
	}
}

func (oh *observableHandler) stop() {
	log.Debugf("stop observing %s", oh.observable.Key())
	oh.stopChan <- 1
	oh.wg.Done()
}

func (oh *observableHandler) observe() {
	oh.status.Set(Waiting)
	defer oh.status.Set(Processed)

	if err := oh.rateLimiter.Wait(context.Background()); err != nil {
		oh.errChan <- &ObservationError{ObservableKey: oh.observable.Key(), Err: err}
		return
	}

	event, err := oh.observable.Observe()
	if err != nil {
		oh.errChan <- &ObservationError{ObservableKey: oh.observable.Key(), Err: err}
		return
	}
	if event != nil {
		oh.eventChan <- event
	}
}

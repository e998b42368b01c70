package poller

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Event is emitted through a channel during observation.
type Event interface {
	Key() string
}

// ObservationError is what the error handler receives when an observation
// fails; it carries the key of the observable that failed.
type ObservationError struct {
	ObservableKey string
	Err           error
}

func (e *ObservationError) Error() string {
	return fmt.Sprintf("observable %s: %v", e.ObservableKey, e.Err)
}

func (e *ObservationError) Unwrap() error { return e.Err }

// Observable represents a remote resource observed on a fixed interval.
// Observe performs one fetch and returns the resulting event, or an error.
type Observable interface {
	Key() string
	Interval() int
	Observe() (Event, error)
}

// Service is the interface for the poller.
type Service interface {
	Start()
	Stop()
	AddObservable(observable Observable)
	RemoveObservable(key string)
	IsObservingKey(key string) bool
	GetEventChannel() chan Event
}

type pollerService struct {
	interval           int
	eventChan          chan Event
	errChan            chan error
	observableHandlers map[string]*observableHandler
	errorHandler       func(err error)
	mutex              *sync.RWMutex
	wg                 *sync.WaitGroup
	rateLimiter        *rate.Limiter
	started            bool
}

// Opts holds the options to customize the poller service.
type Opts struct {
	// DefaultInterval is the polling interval in milliseconds applied to
	// observables that do not declare their own.
	DefaultInterval int
	// RequestsPerSecond caps the overall outgoing request rate across all
	// observables.
	RequestsPerSecond int
	ErrorHandler      func(err error)
}

// NewService returns a poller Service with the given options.
func NewService(opts Opts) Service {
	errorHandler := opts.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(err error) {
			log.WithError(err).Warn("poller: observation failed")
		}
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	return &pollerService{
		interval:           opts.DefaultInterval,
		eventChan:          make(chan Event),
		errChan:            make(chan error),
		observableHandlers: map[string]*observableHandler{},
		errorHandler:       errorHandler,
		mutex:              &sync.RWMutex{},
		wg:                 &sync.WaitGroup{},
		rateLimiter:        rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Start runs one handler goroutine per registered observable and the error
// dispatch loop.
func (p *pollerService) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started {
		return
	}

	log.Debug("poller: start observing")
	for _, handler := range p.observableHandlers {
		go handler.start()
	}
	go p.handleErrors()
	p.started = true
}

// Stop stops all handlers and closes the event channel once they returned.
func (p *pollerService) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		return
	}

	log.Debug("poller: stop observing")
	for _, handler := range p.observableHandlers {
		handler.stop()
	}
	p.wg.Wait()
	p.started = false
	close(p.errChan)
	close(p.eventChan)
}

// AddObservable adds a new Observable to those watched over. Adding an
// observable with an already watched key is a no-op.
func (p *pollerService) AddObservable(observable Observable) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.observableHandlers[observable.Key()]; ok {
		return
	}

	interval := observable.Interval()
	if interval <= 0 {
		interval = p.interval
	}

	handler := newObservableHandler(
		observable, p.wg, interval, p.eventChan, p.errChan, p.rateLimiter,
	)
	p.observableHandlers[observable.Key()] = handler

	if p.started {
		go handler.start()
	}
}

// RemoveObservable stops watching the observable with the given key.
func (p *pollerService) RemoveObservable(key string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	handler, ok := p.observableHandlers[key]
	if !ok {
		return
	}
	if p.started {
		handler.stop()
	}
	delete(p.observableHandlers, key)
}

func (p *pollerService) IsObservingKey(key string) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	_, ok := p.observableHandlers[key]
	return ok
}

// GetEventChannel returns the channel events are emitted on.
func (p *pollerService) GetEventChannel() chan Event {
	return p.eventChan
}

func (p *pollerService) handleErrors() {
	for err := range p.errChan {
		p.errorHandler(err)
	}
}

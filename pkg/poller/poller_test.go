package poller_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/pkg/poller"
)

type testEvent struct {
	key string
}

func (e testEvent) Key() string { return e.key }

type testObservable struct {
	key        string
	intervalMs int
	delay      time.Duration
	err        error
	inFlight   int32
	overlapped int32
	observed   int32
}

func (o *testObservable) Key() string   { return o.key }
func (o *testObservable) Interval() int { return o.intervalMs }

func (o *testObservable) Observe() (poller.Event, error) {
	if atomic.AddInt32(&o.inFlight, 1) > 1 {
		atomic.AddInt32(&o.overlapped, 1)
	}
	defer atomic.AddInt32(&o.inFlight, -1)

	if o.delay > 0 {
		time.Sleep(o.delay)
	}
	atomic.AddInt32(&o.observed, 1)
	if o.err != nil {
		return nil, o.err
	}
	return testEvent{key: o.key}, nil
}

func drain(svc poller.Service) {
	go func() {
		for range svc.GetEventChannel() {
		}
	}()
}

func TestPollerEmitsEvents(t *testing.T) {
	svc := poller.NewService(poller.Opts{
		DefaultInterval:   10,
		RequestsPerSecond: 1000,
	})
	svc.AddObservable(&testObservable{key: "feed", intervalMs: 10})
	require.True(t, svc.IsObservingKey("feed"))

	svc.Start()

	select {
	case event := <-svc.GetEventChannel():
		require.Equal(t, "feed", event.Key())
	case <-time.After(2 * time.Second):
		t.Fatal("no event within deadline")
	}

	drain(svc)
	svc.RemoveObservable("feed")
	time.Sleep(50 * time.Millisecond)
	svc.Stop()
}

func TestPollerSkipsTickWhileObserving(t *testing.T) {
	observable := &testObservable{
		key:        "slow",
		intervalMs: 10,
		delay:      80 * time.Millisecond,
	}

	svc := poller.NewService(poller.Opts{
		DefaultInterval:   10,
		RequestsPerSecond: 1000,
	})
	svc.AddObservable(observable)
	drain(svc)
	svc.Start()

	time.Sleep(300 * time.Millisecond)
	svc.RemoveObservable("slow")
	// let an in-flight observation drain before closing the channels
	time.Sleep(100 * time.Millisecond)
	svc.Stop()

	require.Zero(t, atomic.LoadInt32(&observable.overlapped))
	require.Greater(t, atomic.LoadInt32(&observable.observed), int32(0))
}

func TestPollerKeysObservationErrors(t *testing.T) {
	var mtx sync.Mutex
	keys := []string{}

	svc := poller.NewService(poller.Opts{
		DefaultInterval:   10,
		RequestsPerSecond: 1000,
		ErrorHandler: func(err error) {
			key := "unkeyed"
			var obsErr *poller.ObservationError
			if errors.As(err, &obsErr) {
				key = obsErr.ObservableKey
			}
			mtx.Lock()
			keys = append(keys, key)
			mtx.Unlock()
		},
	})
	svc.AddObservable(&testObservable{
		key:        "broken",
		intervalMs: 10,
		err:        errors.New("backend down"),
	})
	drain(svc)
	svc.Start()

	time.Sleep(100 * time.Millisecond)
	svc.RemoveObservable("broken")
	time.Sleep(50 * time.Millisecond)
	svc.Stop()

	mtx.Lock()
	defer mtx.Unlock()
	require.NotEmpty(t, keys)
	for _, key := range keys {
		require.Equal(t, "broken", key)
	}
}

func TestPollerAddAndRemoveObservables(t *testing.T) {
	svc := poller.NewService(poller.Opts{
		DefaultInterval:   10,
		RequestsPerSecond: 1000,
	})

	first := &testObservable{key: "one", intervalMs: 10}
	svc.AddObservable(first)
	// adding the same key again is a no-op
	svc.AddObservable(&testObservable{key: "one", intervalMs: 1000})
	require.True(t, svc.IsObservingKey("one"))

	svc.RemoveObservable("one")
	require.False(t, svc.IsObservingKey("one"))

	// removing an unknown key is harmless
	svc.RemoveObservable("missing")
}

package geocode

import (
	"sync"
	"time"
)

// DebounceInterval is how long a location must stay still before the address
// lookup fires.
const DebounceInterval = 500 * time.Millisecond

// Debouncer coalesces rapid location updates. Each Update restarts the wait;
// when the interval elapses without a newer update, the lookup runs and its
// result is delivered. A result belonging to a superseded update is dropped,
// so only the most recent location's address is ever applied.
type Debouncer struct {
	Interval time.Duration
	Lookup   func(latitude, longitude float64) (string, error)
	Deliver  func(address string, err error)

	mu      sync.Mutex
	version uint64
	timer   *time.Timer
}

// Update schedules a lookup for the given coordinates, superseding any
// pending one.
func (d *Debouncer) Update(latitude, longitude float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.version++
	v := d.version
	if d.timer != nil {
		d.timer.Stop()
	}
	interval := d.Interval
	if interval == 0 {
		interval = DebounceInterval
	}
	d.timer = time.AfterFunc(interval, func() {
		d.fire(v, latitude, longitude)
	})
}

// Stop cancels any pending lookup and invalidates in-flight results.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(v uint64, latitude, longitude float64) {
	d.mu.Lock()
	stale := v != d.version
	d.mu.Unlock()
	if stale {
		return
	}

	address, err := d.Lookup(latitude, longitude)

	d.mu.Lock()
	stale = v != d.version
	d.mu.Unlock()
	if stale {
		return
	}
	d.Deliver(address, err)
}

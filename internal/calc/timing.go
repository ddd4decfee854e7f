package calc

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid repeated calls from a single logical caller.
// Trailing edge: the wrapped function runs once the wait has elapsed with no
// new call, and every caller that queued during the wait receives that final
// call's result. A new call supersedes the pending one; there is no explicit
// cancel.
type Debouncer[T any] struct {
	mu      sync.Mutex
	wait    time.Duration
	timer   *time.Timer
	waiters []chan T
}

func NewDebouncer[T any](wait time.Duration) *Debouncer[T] {
	return &Debouncer[T]{wait: wait}
}

// Call schedules fn and returns a channel that will receive the result of
// whichever call ends up winning the debounce window.
func (d *Debouncer[T]) Call(fn func() T) <-chan T {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan T, 1)
	d.waiters = append(d.waiters, ch)

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() {
		result := fn()
		d.mu.Lock()
		waiters := d.waiters
		d.waiters = nil
		d.timer = nil
		d.mu.Unlock()
		for _, w := range waiters {
			w <- result
		}
	})
	return ch
}

// Throttler rate-limits repeated calls. Leading edge: the first call in a
// window runs immediately; calls inside the window are dropped and report
// ok=false rather than queuing.
type Throttler[T any] struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
	now    func() time.Time
}

func NewThrottler[T any](window time.Duration) *Throttler[T] {
	return &Throttler[T]{window: window, now: time.Now}
}

// Call runs fn if the window has elapsed since the last accepted call.
func (t *Throttler[T]) Call(fn func() T) (T, bool) {
	t.mu.Lock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.window {
		t.mu.Unlock()
		var zero T
		return zero, false
	}
	t.last = now
	t.mu.Unlock()
	return fn(), true
}

// Memoize wraps fn with TTL caching in the given Cache, keyed by the
// caller-supplied key generator.
func Memoize[A any, R any](cache *Cache, ttl time.Duration, key func(A) string, fn func(A) R) func(A) R {
	return func(arg A) R {
		k := key(arg)
		if v, ok := cache.Get(k); ok {
			if typed, ok := v.(R); ok {
				return typed
			}
		}
		v := fn(arg)
		cache.Set(k, v, ttl)
		return v
	}
}

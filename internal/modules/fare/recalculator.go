// README: Debounced per-key recalculation; only the latest scheduled request may publish a result.
package fare

import (
	"context"
	"sync"
	"time"

	"taxifare/internal/logger"
)

type Estimator interface {
	Estimate(ctx context.Context, req Request) (Result, error)
}

// Outcome is the settled answer for a key. Pending is true when a newer
// request has been scheduled and has not settled yet.
type Outcome struct {
	Seq     uint64  `json:"seq"`
	Result  *Result `json:"result,omitempty"`
	Err     error   `json:"-"`
	Pending bool    `json:"pending"`
}

// DefaultSessionTTL is how long an idle key keeps its outcome before eviction.
const DefaultSessionTTL = 30 * time.Minute

type Recalculator struct {
	estimator Estimator
	delay     time.Duration
	timeout   time.Duration
	ttl       time.Duration
	now       func() time.Time
	log       logger.Logger

	mu sync.Mutex
	// next is shared by all keys so a sequence number is never reused,
	// not even after Forget or eviction.
	next      uint64
	seq       map[string]uint64
	timers    map[string]*time.Timer
	latest    map[string]Outcome
	touched   map[string]time.Time
	lastSweep time.Time
	closed    bool
}

func NewRecalculator(estimator Estimator, delay, timeout time.Duration, log logger.Logger) *Recalculator {
	if log == nil {
		log = logger.Nop()
	}
	return &Recalculator{
		estimator: estimator,
		delay:     delay,
		timeout:   timeout,
		ttl:       DefaultSessionTTL,
		now:       time.Now,
		log:       log,
		seq:       make(map[string]uint64),
		timers:    make(map[string]*time.Timer),
		latest:    make(map[string]Outcome),
		touched:   make(map[string]time.Time),
	}
}

// WithSessionTTL overrides DefaultSessionTTL. A non-positive ttl keeps the default.
func (r *Recalculator) WithSessionTTL(ttl time.Duration) *Recalculator {
	if ttl > 0 {
		r.ttl = ttl
	}
	return r
}

// Schedule supersedes any earlier request for key. The returned sequence
// number identifies this request in later Outcomes.
func (r *Recalculator) Schedule(key string, req Request) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	r.next++
	seq := r.next
	r.seq[key] = seq
	r.touched[key] = now
	if r.closed {
		return seq
	}
	if t, ok := r.timers[key]; ok {
		t.Stop()
	}
	r.timers[key] = time.AfterFunc(r.delay, func() { r.run(key, seq, req) })
	return seq
}

func (r *Recalculator) run(key string, seq uint64, req Request) {
	if !r.current(key, seq) {
		return
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	res, err := r.estimator.Estimate(ctx, req)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.seq[key] != seq {
		r.log.Debug(ctx, "dropping stale estimate", "key", key, "seq", seq, "latest", r.seq[key])
		return
	}
	delete(r.timers, key)
	out := Outcome{Seq: seq, Err: err}
	if err == nil {
		out.Result = &res
	}
	r.latest[key] = out
}

func (r *Recalculator) current(key string, seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed && r.seq[key] == seq
}

// Latest returns the last settled outcome for key.
func (r *Recalculator) Latest(key string) (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seq[key]; ok {
		r.touched[key] = r.now()
	}
	out, ok := r.latest[key]
	if !ok {
		_, scheduled := r.seq[key]
		return Outcome{Pending: scheduled}, scheduled
	}
	out.Pending = r.seq[key] != out.Seq
	return out, true
}

// Forget drops all state for key and cancels its pending timer.
func (r *Recalculator) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[key]; ok {
		t.Stop()
	}
	r.forgetLocked(key)
}

func (r *Recalculator) forgetLocked(key string) {
	delete(r.timers, key)
	delete(r.seq, key)
	delete(r.latest, key)
	delete(r.touched, key)
}

// Len reports how many keys currently hold state.
func (r *Recalculator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seq)
}

// sweepLocked evicts keys idle for longer than ttl that have nothing pending.
// It runs at most once per quarter ttl.
func (r *Recalculator) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.ttl/4 {
		return
	}
	r.lastSweep = now
	for key, at := range r.touched {
		if now.Sub(at) < r.ttl {
			continue
		}
		if _, pending := r.timers[key]; pending {
			continue
		}
		r.forgetLocked(key)
	}
}

// Stop cancels every pending timer; running estimates finish but do not publish.
func (r *Recalculator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for k, t := range r.timers {
		t.Stop()
		delete(r.timers, k)
	}
}

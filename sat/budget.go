package sat

import "time"

// CancelToken is a cooperative cancellation flag shared with a running
// solve. It is the core's only concession to external control: the search
// loop polls it at each conflict and before each decision (spec.md §5) and
// never starts or waits on any I/O of its own.
//
// The zero value is a token that is never cancelled.
type CancelToken struct {
	cancelled bool
}

// Cancel marks the token as cancelled. Safe to call at most once from the
// owning goroutine; this type makes no concurrency-safety claim beyond that,
// matching the single-threaded-per-solve model of spec.md §5.
func (t *CancelToken) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled
}

// Budget bundles the stop conditions a solve honors: a cancellation token, a
// wall-clock deadline, and an optional conflict count ceiling. A zero Budget
// never stops the search on its own.
type Budget struct {
	Cancel      *CancelToken
	Deadline    time.Time // zero means no deadline
	MaxConflict int64     // <= 0 means unbounded
}

// Exhausted reports whether the budget's conditions have been reached given
// the number of conflicts observed so far. Exhausted is polled at each
// conflict and before each decision, so a cancelled or timed-out solve
// returns within O(one BCP pass) of the condition becoming true.
func (b Budget) Exhausted(conflicts int64) bool {
	if b.Cancel.Cancelled() {
		return true
	}
	if b.MaxConflict > 0 && conflicts >= b.MaxConflict {
		return true
	}
	if !b.Deadline.IsZero() && !time.Now().Before(b.Deadline) {
		return true
	}
	return false
}

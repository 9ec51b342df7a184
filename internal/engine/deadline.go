package engine

import (
	"context"
	"time"

	"github.com/leonfyr/jisho/internal/ir"
)

// Deadline bounds one search by wall-clock time and by the caller's
// context.
//
// Cancellation is cooperative: the scan and the solver call Check at the
// top of every candidate iteration, so a single pathological iteration
// (a huge partition enumeration) can still overrun the budget.
//
// A nil *Deadline never expires.
type Deadline struct {
	ctx    context.Context
	now    func() time.Time
	at     time.Time // zero: no wall-clock limit
	checks int
}

// NewDeadline starts a deadline budget from now(). A budget <= 0
// disables the wall-clock limit; ctx is still honoured. A nil now uses
// time.Now.
func NewDeadline(ctx context.Context, budget time.Duration, now func() time.Time) *Deadline {
	if now == nil {
		now = time.Now
	}
	d := &Deadline{ctx: ctx, now: now}
	if budget > 0 {
		d.at = now().Add(budget)
	}
	return d
}

// Check counts one iteration and returns a KindTimeout error once the
// budget is spent or the context is done.
func (d *Deadline) Check() error {
	if d == nil {
		return nil
	}
	d.checks++
	if err := d.ctx.Err(); err != nil {
		return ir.WrapError(ir.KindTimeout, "", err)
	}
	if !d.at.IsZero() && d.now().After(d.at) {
		return ir.NewError(ir.KindTimeout, "")
	}
	return nil
}

// Checks returns how many iterations have been checked.
// Used for logging and metrics.
func (d *Deadline) Checks() int {
	if d == nil {
		return 0
	}
	return d.checks
}

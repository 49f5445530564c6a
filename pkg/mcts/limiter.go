package mcts

import (
	"context"
	"strings"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopNodes     StopReason = 4 // Tree size limit reached
	StopCycles    StopReason = 8 // Cycle limit reached
)

var _stopReasonNames = [...]string{"Interrupt", "Movetime", "Nodes", "Cycles"}

// Names of the set flags joined with '|', e.g. "Nodes|Cycles"
func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}
	names := make([]string, 0, len(_stopReasonNames))
	for bit, name := range _stopReasonNames {
		if sr&(1<<bit) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

func (sr StopReason) MarshalText() ([]byte, error) {
	return []byte(sr.String()), nil
}

// Decides when the search loop ends. It is consulted only between
// iterations, an iteration is never cut in half.
type LimiterLike interface {
	SetContext(ctx context.Context)
	SetLimits(*Limits)
	Limits() *Limits
	// Milliseconds since the last Reset
	Elapsed() uint32
	// Raise or clear the interrupt flag, safe from other goroutines
	SetStop(bool)
	Stop() bool
	// Restart the clock and clear the stop reason, called before every search.
	// A pending stop request is kept.
	Reset()
	// Whether another iteration may run, given the tree size and cycles done
	Ok(size, cycles uint32) bool
	// Why the last search ended, valid after EvaluateStopReason
	StopReason() StopReason
	EvaluateStopReason(size, cycles uint32)
}

type Limiter struct {
	limits *Limits
	clock  searchClock
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		ctx:    context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.clock.restart(l.limits.Movetime)
	l.reason = StopNone
}

func (l *Limiter) EvaluateStopReason(size, cycles uint32) {
	l.reason = l.LimitMask(size, cycles)
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	if limits == nil {
		limits = DefaultLimits()
	}
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return l.clock.elapsedMs()
}

func toMask(val bool, flag StopReason) StopReason {
	if val {
		return flag
	}
	return StopNone
}

// Bitmask of every limit reached so far
func (l *Limiter) LimitMask(size, cycles uint32) StopReason {
	stop := toMask(l.Stop(), StopInterrupt)
	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return stop
	}

	return stop |
		toMask(l.clock.expired(), StopMovetime) |
		toMask(l.limits.Nodes <= size, StopNodes) |
		toMask(l.limits.Cycles <= cycles, StopCycles)
}

func (l *Limiter) Ok(size, cycles uint32) bool {
	return l.LimitMask(size, cycles) == StopNone
}

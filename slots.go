package publigo

import (
	"context"
	"runtime"
)

// Slot sizing constants.
const (
	// MinSlots ensures at least one converter process can run.
	MinSlots = 1

	// MaxSlots caps concurrent LibreOffice processes to limit memory
	// (~150MB each).
	MaxSlots = 8

	// cpuDivisor leaves headroom for LibreOffice child processes.
	cpuDivisor = 2
)

// ConvertSlots bounds the number of LibreOffice processes running at
// once across concurrent requests. Each conversion acquires a slot for
// the duration of the external invocation.
type ConvertSlots struct {
	sem chan struct{}
}

// NewConvertSlots creates a limiter with n slots.
func NewConvertSlots(n int) *ConvertSlots {
	if n < 1 {
		n = 1
	}
	return &ConvertSlots{sem: make(chan struct{}, n)}
}

// Acquire takes a slot, blocking until one frees up or ctx ends.
func (s *ConvertSlots) Acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot.
func (s *ConvertSlots) Release() {
	<-s.sem
}

// Size returns the slot capacity.
func (s *ConvertSlots) Size() int {
	return cap(s.sem)
}

// ResolveSlotCount determines how many converter processes may run
// concurrently. Priority: explicit value > GOMAXPROCS-based calculation.
func ResolveSlotCount(slots int) int {
	// Explicit value takes priority
	if slots > 0 {
		return slots
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs in containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinSlots {
		return MinSlots
	}
	if n > MaxSlots {
		return MaxSlots
	}
	return n
}

// Package button classifies raw mechanical-switch transitions into
// debounced gestures for buttons sampled on a shared periodic clock.
// Each button runs a small time-guarded state machine; classified
// gestures are handed to a dispatcher that runs user callbacks outside
// the sampling context.
package button

import (
	"errors"

	"github.com/mauriciobarroso/button/gpio"
)

var (
	ErrNotInitialized = errors.New("button is not initialized")
	ErrNoCapacity     = errors.New("button registry is full")
	ErrInvalidParam   = errors.New("invalid parameter")
	ErrNoMemory       = errors.New("cannot allocate shared resources")
	ErrFailure        = errors.New("gpio failure")
)

// Gesture is a classified semantic button event.
type Gesture uint8

const (
	Single Gesture = iota
	Double
	Pressed
	Hold
	Long
	gestureCount
)

func (g Gesture) String() string {
	switch g {
	case Single:
		return "single"
	case Double:
		return "double"
	case Pressed:
		return "pressed"
	case Hold:
		return "hold"
	case Long:
		return "long"
	}
	return "unknown"
}

// TimingKind selects which duration SetTiming adjusts.
type TimingKind uint8

const (
	TimingDebounce TimingKind = iota
	TimingHold
	TimingLong
	TimingWaitDouble
)

// Button is a single registered push button. It is created by
// Registry.Add and stays valid until passed to Registry.Remove.
type Button struct {
	reg    *Registry
	drv    gpio.Driver
	pin    int
	active gpio.Level

	// Written only inside the sampling tick, under the registry lock.
	id      int
	level   gpio.Level
	fsm     fsm
	actions [gestureCount]func()
}

// ID returns the button's registry slot index. Slots are compacted on
// removal, so the id of a button may change when another one is removed.
func (b *Button) ID() (int, error) {
	r := b.reg
	if r == nil {
		return 0, ErrNotInitialized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return b.id, nil
}

// Pin returns the GPIO pin the button was registered with.
func (b *Button) Pin() int {
	return b.pin
}

// State returns the current classification state, mainly for inspection.
func (b *Button) State() State {
	r := b.reg
	if r == nil {
		return StateIdle
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return b.fsm.state
}

// RegisterAction binds fn to a gesture kind, replacing any previous
// binding. The callback runs on the dispatcher worker; callbacks never
// run concurrently with each other.
func (b *Button) RegisterAction(g Gesture, fn func()) error {
	r := b.reg
	if r == nil {
		return ErrNotInitialized
	}
	if g >= gestureCount || fn == nil {
		return ErrInvalidParam
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b.actions[g] = fn
	return nil
}

// UnregisterAction clears the binding for a gesture kind.
func (b *Button) UnregisterAction(g Gesture) error {
	r := b.reg
	if r == nil {
		return ErrNotInitialized
	}
	if g >= gestureCount {
		return ErrInvalidParam
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b.actions[g] = nil
	return nil
}

// SetTiming adjusts one of the classification durations, in
// milliseconds. Call it before the button sees its first press; changing
// timings while a gesture is in flight gives unspecified classification
// for that gesture.
//
// Accepted ranges: debounce [2×tick, 100], hold [100, 1000], wait-double
// [50, 500]. TimingLong is the total long-press duration measured from
// the press itself, accepted in [1000, 10000]; it is stored relative to
// the hold threshold in effect when it is set.
func (b *Button) SetTiming(kind TimingKind, ms uint32) error {
	r := b.reg
	if r == nil {
		return ErrNotInitialized
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &b.fsm.timing
	switch kind {
	case TimingDebounce:
		if ms < 2*b.fsm.tickMs || ms > maxDebounceMs {
			return ErrInvalidParam
		}
		t.debounceFw = ms
		t.debounceBw = ms
	case TimingHold:
		if ms < minHoldMs || ms > maxHoldMs {
			return ErrInvalidParam
		}
		t.hold = ms
	case TimingLong:
		if ms < minLongMs || ms > maxLongMs {
			return ErrInvalidParam
		}
		t.long = ms - t.hold
	case TimingWaitDouble:
		if ms < minWaitDoubleMs || ms > maxWaitDoubleMs {
			return ErrInvalidParam
		}
		t.waitDouble = ms
	default:
		return ErrInvalidParam
	}
	return nil
}

package button

// State is one of the classification states a button moves through
// between a raw level change and a classified gesture.
type State uint8

const (
	StateIdle State = iota
	StateDebounce
	StatePressed
	StateHold
	StateWait
	StateSingle
	StateDouble
	StateLong
	stateCount
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebounce:
		return "debounce"
	case StatePressed:
		return "pressed"
	case StateHold:
		return "hold"
	case StateWait:
		return "wait"
	case StateSingle:
		return "single"
	case StateDouble:
		return "double"
	case StateLong:
		return "long"
	}
	return "unknown"
}

// Timing bounds, in milliseconds. The debounce lower bound is dynamic:
// two sampling periods.
const (
	maxDebounceMs    = 100
	minHoldMs        = 100
	maxHoldMs        = 1000
	minWaitDoubleMs  = 50
	maxWaitDoubleMs  = 500
	minLongMs        = 1000
	maxLongMs        = 10000
	defaultDebounce  = 40
	defaultHold      = 500
	defaultWait      = 100
	defaultLongTotal = 1000
)

type timing struct {
	debounceFw uint32
	debounceBw uint32
	hold       uint32
	waitDouble uint32
	long       uint32 // from Hold entry, i.e. total long press minus hold
}

type levelCond uint8

const (
	condAny levelCond = iota
	condActive
	condInactive
)

// transition guards combine a level condition and a minimum time spent
// in the source state, both must hold. A gesture attached to a
// transition is emitted exactly once, on the tick the transition fires.
type transition struct {
	to    State
	level levelCond
	after func(*timing) uint32
	emit  Gesture
	emits bool
}

// Per-state transitions in priority order; the first satisfied one wins
// and at most one fires per tick. An unmatched tick leaves the state
// unchanged.
//
// A button stays in Hold for as long as it is in contact; the release
// edge resolves it to Long or Single depending on how long the contact
// lasted. Resolving Long on the release edge also keeps a still-held
// button from being re-armed through Idle, which would fabricate a
// second press. Pressed is reported on the release edge towards Wait so
// that hold-style presses produce no stray press-start event, while
// Hold is reported on entry, before the button is let go.
var transitions = [stateCount][]transition{
	StateIdle: {
		{to: StateDebounce, level: condActive},
	},
	StateDebounce: {
		{to: StatePressed, level: condActive, after: func(t *timing) uint32 { return t.debounceFw }},
		{to: StateIdle, level: condInactive, after: func(t *timing) uint32 { return t.debounceBw }},
	},
	StatePressed: {
		{to: StateHold, after: func(t *timing) uint32 { return t.hold }, emit: Hold, emits: true},
		{to: StateWait, level: condInactive, emit: Pressed, emits: true},
	},
	StateHold: {
		{to: StateLong, level: condInactive, after: func(t *timing) uint32 { return t.long }, emit: Long, emits: true},
		{to: StateSingle, level: condInactive, emit: Single, emits: true},
	},
	StateWait: {
		{to: StateDouble, level: condActive, emit: Double, emits: true},
		{to: StateSingle, after: func(t *timing) uint32 { return t.waitDouble }, emit: Single, emits: true},
	},
	StateLong: {
		{to: StateIdle},
	},
	StateSingle: {
		{to: StateIdle},
	},
	StateDouble: {
		{to: StateIdle, level: condInactive},
	},
}

// fsm tracks one button's state. Time is counted in sampling ticks, the
// same clock that feeds it levels.
type fsm struct {
	state  State
	ticks  uint32
	tickMs uint32
	timing timing
}

func newFSM(tickMs uint32) fsm {
	debounce := uint32(defaultDebounce)
	if 2*tickMs > debounce {
		debounce = 2 * tickMs
	}
	return fsm{
		tickMs: tickMs,
		timing: timing{
			debounceFw: debounce,
			debounceBw: debounce,
			hold:       defaultHold,
			waitDouble: defaultWait,
			long:       defaultLongTotal - defaultHold,
		},
	}
}

// step consumes one sampled level and advances at most one transition.
// It reports the gesture classified by that transition, if any.
func (f *fsm) step(active bool) (Gesture, bool) {
	f.ticks++
	elapsed := f.ticks * f.tickMs
	for _, tr := range transitions[f.state] {
		if tr.level == condActive && !active {
			continue
		}
		if tr.level == condInactive && active {
			continue
		}
		if tr.after != nil && elapsed < tr.after(&f.timing) {
			continue
		}
		f.state = tr.to
		f.ticks = 0
		return tr.emit, tr.emits
	}
	return 0, false
}

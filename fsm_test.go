package button

import (
	"slices"
	"testing"
)

type segment struct {
	ms     uint32
	active bool
}

// play feeds f one sample per tick across the level segments and
// collects every classified gesture.
func play(f *fsm, segments ...segment) []Gesture {
	var out []Gesture
	for _, seg := range segments {
		for t := uint32(0); t < seg.ms; t += f.tickMs {
			if g, ok := f.step(seg.active); ok {
				out = append(out, g)
			}
		}
	}
	return out
}

func TestBounceIsRejected(t *testing.T) {
	f := newFSM(20)

	got := play(&f,
		segment{20, true},
		segment{200, false},
	)
	if len(got) != 0 {
		t.Fatalf("Expected no gestures, got %v", got)
	}
	if f.state != StateIdle {
		t.Fatalf("Expected idle, got %s", f.state)
	}
}

func TestShortPressIsSingle(t *testing.T) {
	f := newFSM(20)

	got := play(&f,
		segment{120, true},
		segment{600, false},
	)
	want := []Gesture{Pressed, Single}
	if !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if f.state != StateIdle {
		t.Fatalf("Expected idle, got %s", f.state)
	}
}

func TestTwoQuickPressesAreDouble(t *testing.T) {
	f := newFSM(20)

	got := play(&f,
		segment{120, true},
		segment{50, false},
		segment{60, true},
		segment{100, false},
	)
	want := []Gesture{Pressed, Double}
	if !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if f.state != StateIdle {
		t.Fatalf("Expected idle, got %s", f.state)
	}
}

func TestHoldThenReleaseIsSingle(t *testing.T) {
	f := newFSM(20)

	got := play(&f,
		segment{700, true},
		segment{100, false},
	)
	want := []Gesture{Hold, Single}
	if !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
}

func TestHoldPastLongThresholdIsLong(t *testing.T) {
	f := newFSM(20)

	got := play(&f,
		segment{1200, true},
		segment{200, false},
	)
	want := []Gesture{Hold, Long}
	if !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if f.state != StateIdle {
		t.Fatalf("Expected idle, got %s", f.state)
	}
}

func TestSecondPressWindowExpires(t *testing.T) {
	f := newFSM(20)

	// The second press starts after the wait-double window closed, so it
	// is classified as a press of its own.
	got := play(&f,
		segment{120, true},
		segment{200, false},
		segment{120, true},
		segment{200, false},
	)
	want := []Gesture{Pressed, Single, Pressed, Single}
	if !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
}

func TestReleaseDuringDebounceBacksOff(t *testing.T) {
	f := newFSM(20)

	// Contact shorter than the forward debounce window, then a clean
	// bounce-free release window.
	got := play(&f,
		segment{20, true},
		segment{40, false},
	)
	if len(got) != 0 {
		t.Fatalf("Expected no gestures, got %v", got)
	}
	if f.state != StateIdle {
		t.Fatalf("Expected idle, got %s", f.state)
	}
}

func TestTimingsScaleWithTickPeriod(t *testing.T) {
	f := newFSM(10)

	got := play(&f,
		segment{120, true},
		segment{600, false},
	)
	want := []Gesture{Pressed, Single}
	if !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
}

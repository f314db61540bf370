package button

import (
	"testing"
	"time"
)

func TestDispatchPriorityAndOrder(t *testing.T) {
	d := newDispatcher(8)

	var got []Gesture
	record := func(g Gesture) func() {
		return func() { got = append(got, g) }
	}

	// Two holds produced early, then two resolved clicks: the clicks
	// must come out first, each class in production order.
	d.pushBack(message{gesture: Hold, fn: record(Hold)})
	d.pushBack(message{gesture: Hold, fn: record(Hold)})
	d.pushFront(message{gesture: Pressed, fn: record(Pressed)})
	d.pushFront(message{gesture: Single, fn: record(Single)})

	want := []Gesture{Pressed, Single, Hold, Hold}
	for i, w := range want {
		m, ok := d.pop()
		if !ok {
			t.Fatalf("Expected message %d, queue is done", i)
		}
		if m.gesture != w {
			t.Fatalf("Expected %s at %d, got %s", w, i, m.gesture)
		}
	}
}

func TestDispatchDropsWhenFull(t *testing.T) {
	d := newDispatcher(2)

	if !d.pushFront(message{gesture: Single, fn: func() {}}) {
		t.Fatal("Expected first push to succeed")
	}
	if !d.pushBack(message{gesture: Hold, fn: func() {}}) {
		t.Fatal("Expected second push to succeed")
	}
	if d.pushFront(message{gesture: Double, fn: func() {}}) {
		t.Fatal("Expected push beyond capacity to fail")
	}
	if d.pushBack(message{gesture: Hold, fn: func() {}}) {
		t.Fatal("Expected push beyond capacity to fail")
	}
}

func TestDispatchWorkerRunsSerially(t *testing.T) {
	d := newDispatcher(8)
	go d.run()

	running := make(chan struct{}, 2)
	done := make(chan struct{}, 2)
	fn := func() {
		running <- struct{}{}
		time.Sleep(10 * time.Millisecond)
		<-running
		done <- struct{}{}
	}

	d.pushFront(message{gesture: Single, fn: fn})
	d.pushFront(message{gesture: Double, fn: fn})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Expected callback to run")
		}
	}
	if len(running) != 0 {
		t.Fatal("Expected callbacks to never overlap")
	}

	d.close()
}

func TestDispatchDrainsOnClose(t *testing.T) {
	d := newDispatcher(8)

	ran := make(chan Gesture, 4)
	for _, g := range []Gesture{Pressed, Single} {
		g := g
		d.pushFront(message{gesture: g, fn: func() { ran <- g }})
	}
	d.pushBack(message{gesture: Hold, fn: func() { ran <- Hold }})

	go d.run()
	d.close()

	want := []Gesture{Pressed, Single, Hold}
	for i, w := range want {
		select {
		case g := <-ran:
			if g != w {
				t.Fatalf("Expected %s at %d, got %s", w, i, g)
			}
		default:
			t.Fatalf("Expected %d callbacks to have run, got %d", len(want), i)
		}
	}

	if d.pushFront(message{gesture: Single, fn: func() {}}) {
		t.Fatal("Expected push after close to fail")
	}
}

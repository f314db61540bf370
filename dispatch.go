package button

import "sync"

// message is the snapshot queued when a gesture is classified. It
// carries a copy of the bound callback, not a reference into the live
// button, so later re-registration does not affect queued events.
type message struct {
	id      int
	gesture Gesture
	fn      func()
}

// dispatcher is a bounded two-class queue plus a single worker that
// runs user callbacks one at a time. Pushes never block: when the queue
// is full the event is dropped, keeping the sampling tick real-time.
//
// Hold notifications queue behind everything else; resolved clicks are
// delivered ahead of pending holds. Within a class, messages keep the
// tick order they were produced in.
type dispatcher struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	front    []message
	back     []message
	max      int
	closed   bool
	done     chan struct{}
}

func newDispatcher(max int) *dispatcher {
	d := &dispatcher{
		max:  max,
		done: make(chan struct{}),
	}
	d.nonEmpty = sync.NewCond(&d.mu)
	return d
}

// pushFront queues m in the urgent class, ahead of every pending Hold.
func (d *dispatcher) pushFront(m message) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || len(d.front)+len(d.back) >= d.max {
		return false
	}
	d.front = append(d.front, m)
	d.nonEmpty.Signal()
	return true
}

// pushBack queues m behind everything already pending.
func (d *dispatcher) pushBack(m message) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || len(d.front)+len(d.back) >= d.max {
		return false
	}
	d.back = append(d.back, m)
	d.nonEmpty.Signal()
	return true
}

// pop blocks until a message is available. After close it keeps
// draining what is queued and then reports false.
func (d *dispatcher) pop() (message, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.front) == 0 && len(d.back) == 0 && !d.closed {
		d.nonEmpty.Wait()
	}
	if len(d.front) > 0 {
		m := d.front[0]
		d.front = d.front[1:]
		return m, true
	}
	if len(d.back) > 0 {
		m := d.back[0]
		d.back = d.back[1:]
		return m, true
	}
	return message{}, false
}

func (d *dispatcher) run() {
	defer close(d.done)
	for {
		m, ok := d.pop()
		if !ok {
			return
		}
		l.Verbose().Printf("dispatching %s for button %d", m.gesture, m.id)
		m.fn()
	}
}

// close stops accepting new messages and waits for the worker to drain
// what is already queued and exit.
func (d *dispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.nonEmpty.Broadcast()
	<-d.done
}

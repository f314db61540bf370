package button

import (
	"fmt"
	"sync"
	"time"

	"github.com/allape/gogger"
	"github.com/mauriciobarroso/button/gpio"
)

var l = gogger.New("button")

const (
	DefaultTickPeriod = 20 * time.Millisecond
	DefaultCapacity   = 8
	DefaultQueueDepth = 4

	// minTickPeriod / maxTickPeriod keep the debounce bounds satisfiable.
	minTickPeriod = time.Millisecond
	maxTickPeriod = 50 * time.Millisecond

	maxQueueCap = 1 << 12
)

// Options configure the shared sampling clock and dispatcher. Zero
// values select the defaults.
type Options struct {
	// TickPeriod is the sampling period, a whole number of milliseconds
	// between 1ms and 50ms.
	TickPeriod time.Duration
	// Capacity bounds the number of simultaneously registered buttons.
	Capacity int
	// QueueDepth is the number of queued gestures allowed per button
	// slot; the dispatcher queue holds QueueDepth × Capacity messages.
	QueueDepth int
}

// Registry owns the registered buttons and the resources they share:
// the sampling clock, the dispatch queue and its worker. The shared
// resources exist exactly while at least one button is registered.
type Registry struct {
	mu   sync.Mutex
	opts Options

	buttons []*Button
	disp    *dispatcher
	clock   *sampler

	// manual suppresses the sampling clock so tests can drive
	// sampleAll themselves.
	manual bool
}

// New validates opts and returns an empty registry. No goroutines or
// timers are created until the first button is added.
func New(opts Options) (*Registry, error) {
	if opts.TickPeriod == 0 {
		opts.TickPeriod = DefaultTickPeriod
	}
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.QueueDepth == 0 {
		opts.QueueDepth = DefaultQueueDepth
	}
	if opts.TickPeriod < minTickPeriod || opts.TickPeriod > maxTickPeriod ||
		opts.TickPeriod%time.Millisecond != 0 {
		return nil, fmt.Errorf("%w: tick period %s", ErrInvalidParam, opts.TickPeriod)
	}
	if opts.Capacity < 0 || opts.QueueDepth < 0 {
		return nil, fmt.Errorf("%w: negative capacity", ErrInvalidParam)
	}
	if opts.Capacity*opts.QueueDepth > maxQueueCap {
		return nil, fmt.Errorf("%w: dispatch queue of %d messages", ErrNoMemory, opts.Capacity*opts.QueueDepth)
	}
	return &Registry{opts: opts}, nil
}

// Add configures pin on drv and registers it as a button whose pressed
// level is active. On the first registration the sampling clock and the
// dispatcher are started. A failed Add leaves the registry untouched.
func (r *Registry) Add(drv gpio.Driver, pin int, active gpio.Level) (*Button, error) {
	if drv == nil {
		return nil, ErrInvalidParam
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buttons) >= r.opts.Capacity {
		return nil, ErrNoCapacity
	}
	if err := drv.Configure(pin); err != nil {
		return nil, fmt.Errorf("%w: configure pin %d: %s", ErrFailure, pin, err)
	}
	b := &Button{
		reg:    r,
		drv:    drv,
		pin:    pin,
		active: active,
		id:     len(r.buttons),
		fsm:    newFSM(uint32(r.opts.TickPeriod / time.Millisecond)),
	}
	r.buttons = append(r.buttons, b)
	if len(r.buttons) == 1 {
		r.disp = newDispatcher(r.opts.Capacity * r.opts.QueueDepth)
		go r.disp.run()
		if !r.manual {
			r.clock = newSampler(r.opts.TickPeriod, r.sampleAll)
		}
		l.Info().Println("sampling started, tick period", r.opts.TickPeriod)
	}
	l.Info().Printf("button %d registered on pin %d", b.id, pin)
	return b, nil
}

// Remove unregisters b, compacting the slots after it and renumbering
// their ids. When the last button is removed the sampling clock is
// stopped first, then the dispatcher drains its queue and exits.
func (r *Registry) Remove(b *Button) error {
	if b == nil || b.reg != r {
		return ErrInvalidParam
	}
	r.mu.Lock()
	if b.id >= len(r.buttons) || r.buttons[b.id] != b {
		r.mu.Unlock()
		return ErrInvalidParam
	}
	i := b.id
	copy(r.buttons[i:], r.buttons[i+1:])
	r.buttons = r.buttons[:len(r.buttons)-1]
	for j := i; j < len(r.buttons); j++ {
		r.buttons[j].id = j
	}
	b.reg = nil
	var clock *sampler
	var disp *dispatcher
	if len(r.buttons) == 0 {
		clock, disp = r.clock, r.disp
		r.clock, r.disp = nil, nil
	}
	r.mu.Unlock()

	if clock != nil {
		clock.stop()
	}
	if disp != nil {
		disp.close()
		l.Info().Println("sampling stopped")
	}
	return nil
}

// Len reports the number of registered buttons.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buttons)
}

// Buttons returns a snapshot of the registered buttons in slot order.
func (r *Registry) Buttons() []*Button {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Button, len(r.buttons))
	copy(out, r.buttons)
	return out
}

// sampleAll is the sampling clock callback: one GPIO read and one FSM
// step per button, then a non-blocking enqueue of whatever was
// classified. It must stay short, it runs every tick.
func (r *Registry) sampleAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.buttons {
		b.level = b.drv.Read(b.pin)
		g, ok := b.fsm.step(b.level == b.active)
		if !ok {
			continue
		}
		fn := b.actions[g]
		if fn == nil {
			l.Verbose().Printf("button %d: no action for %s", b.id, g)
			continue
		}
		m := message{id: b.id, gesture: g, fn: fn}
		var queued bool
		if g == Hold {
			queued = r.disp.pushBack(m)
		} else {
			queued = r.disp.pushFront(m)
		}
		if !queued {
			l.Verbose().Printf("button %d: queue full, dropped %s", b.id, g)
		}
	}
}

// sampler runs fn on a fixed period until stopped.
type sampler struct {
	ticker  *time.Ticker
	done    chan struct{}
	stopped chan struct{}
}

func newSampler(period time.Duration, fn func()) *sampler {
	s := &sampler{
		ticker:  time.NewTicker(period),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run(fn)
	return s
}

func (s *sampler) run(fn func()) {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			fn()
		}
	}
}

func (s *sampler) stop() {
	s.ticker.Stop()
	close(s.done)
	<-s.stopped
}

// Package periphgpio reads buttons through the portable periph.io host
// drivers, covering boards beyond the Raspberry Pi.
package periphgpio

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/allape/gogger"
	"github.com/mauriciobarroso/button/gpio"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var l = gogger.New("gpio.periph")

type Driver struct {
	// PullUp selects the pull resistor applied by Configure.
	PullUp bool

	mu   sync.Mutex
	pins map[int]pgpio.PinIO
}

func New(pullUp bool) *Driver {
	return &Driver{
		PullUp: pullUp,
		pins:   map[int]pgpio.PinIO{},
	}
}

func (d *Driver) Open() error {
	state, err := host.Init()
	if err != nil {
		return err
	}
	l.Verbose().Printf("%d periph drivers loaded", len(state.Loaded))
	return nil
}

func (d *Driver) Close() error {
	return nil
}

func (d *Driver) Configure(pin int) error {
	p := gpioreg.ByName(strconv.Itoa(pin))
	if p == nil {
		p = gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	}
	if p == nil {
		return fmt.Errorf("pin %d not found", pin)
	}
	pull := pgpio.PullDown
	if d.PullUp {
		pull = pgpio.PullUp
	}
	if err := p.In(pull, pgpio.NoEdge); err != nil {
		return err
	}
	d.mu.Lock()
	d.pins[pin] = p
	d.mu.Unlock()
	return nil
}

func (d *Driver) Read(pin int) gpio.Level {
	d.mu.Lock()
	p := d.pins[pin]
	d.mu.Unlock()
	if p == nil || p.Read() == pgpio.Low {
		return gpio.Low
	}
	return gpio.High
}

// Package memory is an in-process gpio.Driver for tests, examples and
// the monitor's simulate endpoint: pin levels are plain values set by
// the caller instead of hardware reads.
package memory

import (
	"sync"

	"github.com/mauriciobarroso/button/gpio"
)

type Driver struct {
	mu sync.Mutex
	// Idle is the level unconfigured and released pins rest at.
	Idle gpio.Level

	levels map[int]gpio.Level
}

func New(idle gpio.Level) *Driver {
	return &Driver{
		Idle:   idle,
		levels: map[int]gpio.Level{},
	}
}

func (d *Driver) Open() error {
	return nil
}

func (d *Driver) Close() error {
	return nil
}

func (d *Driver) Configure(pin int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.levels[pin]; !ok {
		d.levels[pin] = d.Idle
	}
	return nil
}

func (d *Driver) Read(pin int) gpio.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	if lv, ok := d.levels[pin]; ok {
		return lv
	}
	return d.Idle
}

// Set drives pin to lv, as if the physical line changed.
func (d *Driver) Set(pin int, lv gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.levels[pin] = lv
}

// Release returns pin to the idle level.
func (d *Driver) Release(pin int) {
	d.Set(pin, d.Idle)
}

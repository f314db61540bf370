// Package rpio reads buttons through the Raspberry Pi BCM283x memory
// mapped GPIO, via github.com/stianeikeland/go-rpio.
package rpio

import (
	"github.com/allape/gogger"
	"github.com/mauriciobarroso/button/gpio"
	"github.com/stianeikeland/go-rpio/v4"
)

var l = gogger.New("gpio.rpio")

type Driver struct {
	// PullUp selects the internal pull resistor applied by Configure.
	// Up for active-low wiring to ground, down for active-high to VCC.
	PullUp bool
}

func New(pullUp bool) *Driver {
	return &Driver{PullUp: pullUp}
}

func (d *Driver) Open() error {
	return rpio.Open()
}

func (d *Driver) Close() error {
	return rpio.Close()
}

func (d *Driver) Configure(pin int) error {
	p := rpio.Pin(pin)
	p.Input()
	if d.PullUp {
		p.PullUp()
	} else {
		p.PullDown()
	}
	l.Verbose().Printf("pin %d configured as input, pull-up=%t", pin, d.PullUp)
	return nil
}

func (d *Driver) Read(pin int) gpio.Level {
	if rpio.Pin(pin).Read() == rpio.High {
		return gpio.High
	}
	return gpio.Low
}

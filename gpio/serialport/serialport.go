// Package serialport reads button levels reported by an external MCU
// over a serial line. The MCU streams three-byte frames, 0xFF followed
// by the pin number and its level; a background reader keeps the last
// reported level per pin so Read never blocks the sampling tick.
package serialport

import (
	"errors"
	"sync"

	"github.com/allape/gogger"
	"github.com/mauriciobarroso/button/gpio"
	"go.bug.st/serial"
)

var l = gogger.New("gpio.serialport")

const frameStart = 0xFF

type Driver struct {
	Name string
	Baud int
	// Idle is the level assumed for a pin until the MCU first reports it.
	Idle gpio.Level

	mu     sync.Mutex
	port   serial.Port
	frame  []byte
	levels map[int]gpio.Level
}

func New(name string, baud int, idle gpio.Level) *Driver {
	return &Driver{
		Name:   name,
		Baud:   baud,
		Idle:   idle,
		levels: map[int]gpio.Level{},
	}
}

func (d *Driver) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port != nil {
		return errors.New("port already open")
	}

	mode := &serial.Mode{
		BaudRate: d.Baud,
	}
	port, err := serial.Open(d.Name, mode)
	if err != nil {
		return err
	}
	d.port = port

	go d.read(port)

	return nil
}

func (d *Driver) read(port serial.Port) {
	buf := make([]byte, 64)
	for {
		n, err := port.Read(buf)
		if err != nil {
			l.Error().Println("read error:", err)
			return
		}
		if n == 0 {
			l.Warn().Println("EOF")
			return
		}
		d.consume(buf[:n])
	}
}

// consume folds a chunk of the serial stream into the level cache,
// keeping any trailing partial frame for the next chunk. Bytes outside
// a frame are discarded.
func (d *Driver) consume(data []byte) {
	for _, c := range data {
		if len(d.frame) == 0 && c != frameStart {
			continue
		}
		d.frame = append(d.frame, c)
		if len(d.frame) < 3 {
			continue
		}
		pin, level := int(d.frame[1]), d.frame[2]
		d.frame = d.frame[:0]

		lv := gpio.Low
		if level != 0 {
			lv = gpio.High
		}
		l.Verbose().Printf("pin %d = %s", pin, lv)

		d.mu.Lock()
		d.levels[pin] = lv
		d.mu.Unlock()
	}
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.port == nil {
		return nil
	}

	err := d.port.Close()
	d.port = nil
	return err
}

func (d *Driver) Configure(pin int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.port == nil {
		return errors.New("port not open")
	}
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

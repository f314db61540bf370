package gpio

import "io"

// Level is the logic level of a digital input pin.
type Level uint8

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Driver reads two-level digital inputs.
// Configure and Open may block; Read runs inside the sampling tick and must not.
type Driver interface {
	io.Closer
	Open() error
	Configure(pin int) error
	Read(pin int) Level
}

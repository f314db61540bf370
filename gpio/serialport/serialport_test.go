package serialport

import (
	"testing"

	"github.com/mauriciobarroso/button/gpio"
)

func TestConsumeFrames(t *testing.T) {
	d := New("/dev/null", 115200, gpio.High)

	d.consume([]byte{0xFF, 4, 0, 0xFF, 7, 1})
	if lv := d.Read(4); lv != gpio.Low {
		t.Fatalf("Expected pin 4 low, got %s", lv)
	}
	if lv := d.Read(7); lv != gpio.High {
		t.Fatalf("Expected pin 7 high, got %s", lv)
	}
}

func TestConsumeSplitFrame(t *testing.T) {
	d := New("/dev/null", 115200, gpio.High)

	d.consume([]byte{0xFF})
	d.consume([]byte{4})
	if lv := d.Read(4); lv != gpio.High {
		t.Fatalf("Expected idle level before frame completes, got %s", lv)
	}
	d.consume([]byte{0})
	if lv := d.Read(4); lv != gpio.Low {
		t.Fatalf("Expected pin 4 low, got %s", lv)
	}
}

func TestConsumeDiscardsGarbage(t *testing.T) {
	d := New("/dev/null", 115200, gpio.High)

	d.consume([]byte{'h', 'i', 0xFF, 4, 1})
	if lv := d.Read(4); lv != gpio.High {
		t.Fatalf("Expected pin 4 high, got %s", lv)
	}
	if lv := d.Read(9); lv != gpio.High {
		t.Fatalf("Expected unknown pin at idle level, got %s", lv)
	}
}

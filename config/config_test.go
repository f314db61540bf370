package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestTagString(t *testing.T) {
	ext := TagString(`baud:"115200" flavor:"mcu"`)

	baud, err := ext.GetInt("baud", 9600)
	if err != nil {
		t.Fatal(err)
	}
	if baud != 115200 {
		t.Fatalf("Expected 115200, got %d", baud)
	}

	baud, err = TagString("").GetInt("baud", 9600)
	if err != nil {
		t.Fatal(err)
	}
	if baud != 9600 {
		t.Fatalf("Expected default 9600, got %d", baud)
	}

	if flavor := ext.Get("flavor"); flavor != "mcu" {
		t.Fatalf("Expected mcu, got %s", flavor)
	}
}

func TestUnmarshal(t *testing.T) {
	data := `
[driver]
type = "serialport"
src = "/dev/ttyACM0"
ext = 'baud:"9600"'

[sampler]
period_ms = 10
capacity = 4

[[buttons]]
name = "power"
pin = 4
hold_ms = 300

[[buttons]]
name = "reset"
pin = 5
active_high = true
`

	var conf Config
	if err := toml.Unmarshal([]byte(data), &conf); err != nil {
		t.Fatal(err)
	}

	if conf.Driver.Type != DriverSerialPort {
		t.Fatalf("Expected serialport driver, got %s", conf.Driver.Type)
	}
	baud, err := conf.Driver.Ext.GetInt("baud", 115200)
	if err != nil {
		t.Fatal(err)
	}
	if baud != 9600 {
		t.Fatalf("Expected 9600, got %d", baud)
	}
	if conf.Sampler.PeriodMs != 10 || conf.Sampler.Capacity != 4 {
		t.Fatalf("Expected sampler 10/4, got %+v", conf.Sampler)
	}
	if len(conf.Buttons) != 2 {
		t.Fatalf("Expected 2 buttons, got %d", len(conf.Buttons))
	}
	if conf.Buttons[0].HoldMs != 300 {
		t.Fatalf("Expected hold 300, got %d", conf.Buttons[0].HoldMs)
	}
	if !conf.Buttons[1].ActiveHigh {
		t.Fatal("Expected reset button to be active high")
	}
}

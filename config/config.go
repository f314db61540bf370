package config

import (
	"os"

	"github.com/allape/gogger"
	"github.com/mauriciobarroso/button/envar"
	"github.com/pelletier/go-toml/v2"
)

var l = gogger.New("config")

const DefaultConfigPath = "button.toml"

type DriverType string

const (
	DriverMemory     DriverType = "memory"
	DriverRPIO       DriverType = "rpio"
	DriverPeriph     DriverType = "periph"
	DriverSerialPort DriverType = "serialport"
)

type Driver struct {
	Type DriverType `toml:"type"`
	// Src is the serial device for the serialport driver, unused by the
	// others.
	Src string `toml:"src"`
	// Ext holds driver options in struct-tag syntax, e.g. `baud:"115200"`.
	Ext TagString `toml:"ext"`
	// PullUp applies the internal pull-up resistor where the hardware
	// offers one; implies active-low wiring unless a button overrides it.
	PullUp bool `toml:"pull_up"`
}

type Sampler struct {
	PeriodMs   int `toml:"period_ms"`
	Capacity   int `toml:"capacity"`
	QueueDepth int `toml:"queue_depth"`
}

type Button struct {
	Name       string `toml:"name"`
	Pin        int    `toml:"pin"`
	ActiveHigh bool   `toml:"active_high"`

	// Timing overrides in milliseconds; zero keeps the default.
	DebounceMs   uint32 `toml:"debounce_ms"`
	HoldMs       uint32 `toml:"hold_ms"`
	LongMs       uint32 `toml:"long_ms"`
	WaitDoubleMs uint32 `toml:"wait_double_ms"`
}

type Server struct {
	Addr string `toml:"addr"`
	Cors bool   `toml:"cors"`
}

type MQTT struct {
	// Broker like "tcp://localhost:1883"; empty disables publishing.
	Broker      string `toml:"broker"`
	ClientID    string `toml:"client_id"`
	TopicPrefix string `toml:"topic_prefix"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
}

type Config struct {
	Driver  Driver   `toml:"driver"`
	Sampler Sampler  `toml:"sampler"`
	Buttons []Button `toml:"buttons"`
	Server  Server   `toml:"server"`
	MQTT    MQTT     `toml:"mqtt"`
}

func GetConfig() (Config, error) {
	configFile := envar.Getenv(envar.ButtonConfig, DefaultConfigPath)
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	l.Info().Println("reading config file:", configFile)

	config := Config{
		Driver: Driver{
			Type:   DriverMemory,
			PullUp: true,
		},
		Sampler: Sampler{
			PeriodMs: 20,
		},
		Server: Server{
			Addr: envar.Getenv(envar.ButtonAddr, ":8080"),
		},
		MQTT: MQTT{
			ClientID:    "btnmon",
			TopicPrefix: "button",
		},
	}

	_, err := os.Stat(configFile)
	if err != nil {
		return config, err
	}

	configData, err := os.ReadFile(configFile)
	if err != nil {
		return config, err
	}

	err = toml.Unmarshal(configData, &config)
	if err != nil {
		return config, err
	}

	l.Verbose().Println("use config:", config)

	return config, nil
}

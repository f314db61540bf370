package factory

import (
	"fmt"

	"github.com/mauriciobarroso/button/config"
	"github.com/mauriciobarroso/button/gpio"
	"github.com/mauriciobarroso/button/gpio/memory"
	"github.com/mauriciobarroso/button/gpio/periphgpio"
	"github.com/mauriciobarroso/button/gpio/rpio"
	"github.com/mauriciobarroso/button/gpio/serialport"
)

// DriverFromConfig builds and opens the configured gpio.Driver.
func DriverFromConfig(conf config.Config) (gpio.Driver, error) {
	idle := gpio.Low
	if conf.Driver.PullUp {
		idle = gpio.High
	}

	var drv gpio.Driver

	switch conf.Driver.Type {
	case config.DriverMemory:
		l.Warn().Println("gpio driver is memory, no hardware input")
		drv = memory.New(idle)
	case config.DriverRPIO:
		l.Info().Println("gpio driver is rpio")
		drv = rpio.New(conf.Driver.PullUp)
	case config.DriverPeriph:
		l.Info().Println("gpio driver is periph")
		drv = periphgpio.New(conf.Driver.PullUp)
	case config.DriverSerialPort:
		l.Info().Println("gpio driver is serial port:", conf.Driver.Src)
		baud, err := conf.Driver.Ext.GetInt("baud", 115200)
		if err != nil {
			return nil, err
		}
		drv = serialport.New(conf.Driver.Src, baud, idle)
	default:
		return nil, fmt.Errorf("unknown gpio driver: %s", conf.Driver.Type)
	}

	err := drv.Open()
	if err != nil {
		return nil, err
	}

	return drv, nil
}

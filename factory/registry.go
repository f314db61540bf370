package factory

import (
	"fmt"
	"time"

	"github.com/mauriciobarroso/button"
	"github.com/mauriciobarroso/button/config"
	"github.com/mauriciobarroso/button/gpio"
)

// RegistryFromConfig builds a registry on drv and registers every
// configured button, applying its timing overrides. On any failure the
// buttons registered so far are removed again.
func RegistryFromConfig(conf config.Config, drv gpio.Driver) (*button.Registry, []*button.Button, error) {
	reg, err := button.New(button.Options{
		TickPeriod: time.Duration(conf.Sampler.PeriodMs) * time.Millisecond,
		Capacity:   conf.Sampler.Capacity,
		QueueDepth: conf.Sampler.QueueDepth,
	})
	if err != nil {
		return nil, nil, err
	}

	var buttons []*button.Button
	rollback := func() {
		for _, b := range buttons {
			_ = reg.Remove(b)
		}
	}

	for _, bc := range conf.Buttons {
		active := gpio.Low
		if bc.ActiveHigh {
			active = gpio.High
		}

		b, err := reg.Add(drv, bc.Pin, active)
		if err != nil {
			rollback()
			return nil, nil, fmt.Errorf("add button %q: %w", bc.Name, err)
		}
		buttons = append(buttons, b)

		timings := []struct {
			kind button.TimingKind
			ms   uint32
		}{
			{button.TimingDebounce, bc.DebounceMs},
			{button.TimingHold, bc.HoldMs},
			{button.TimingLong, bc.LongMs},
			{button.TimingWaitDouble, bc.WaitDoubleMs},
		}
		for _, tm := range timings {
			if tm.ms == 0 {
				continue
			}
			if err = b.SetTiming(tm.kind, tm.ms); err != nil {
				rollback()
				return nil, nil, fmt.Errorf("timing of button %q: %w", bc.Name, err)
			}
		}

		l.Info().Printf("button %q registered on pin %d", bc.Name, bc.Pin)
	}

	return reg, buttons, nil
}

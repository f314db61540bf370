// btnmon wires the button registry to a small monitoring surface: a
// REST view of the registered buttons, a websocket stream of classified
// gestures, an optional MQTT publisher, and a simulate endpoint for the
// memory driver.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/allape/gogger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mauriciobarroso/button"
	"github.com/mauriciobarroso/button/config"
	"github.com/mauriciobarroso/button/factory"
	"github.com/mauriciobarroso/button/gpio"
	"github.com/mauriciobarroso/button/gpio/memory"
)

var l = gogger.New("btnmon")

var gestures = []button.Gesture{
	button.Single,
	button.Double,
	button.Pressed,
	button.Hold,
	button.Long,
}

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		l.Error().Println("get config:", err)
		os.Exit(1)
	}

	drv, err := factory.DriverFromConfig(conf)
	if err != nil {
		l.Error().Println("driver from config:", err)
		os.Exit(1)
	}
	defer func() {
		_ = drv.Close()
	}()

	reg, buttons, err := factory.RegistryFromConfig(conf, drv)
	if err != nil {
		l.Error().Println("registry from config:", err)
		os.Exit(1)
	}
	defer func() {
		for _, b := range buttons {
			_ = reg.Remove(b)
		}
	}()

	broadcaster := NewBroadcaster()

	var publisher mqtt.Client
	if conf.MQTT.Broker != "" {
		opts := mqtt.NewClientOptions().
			AddBroker(conf.MQTT.Broker).
			SetClientID(conf.MQTT.ClientID)
		if conf.MQTT.Username != "" {
			opts.SetUsername(conf.MQTT.Username)
			opts.SetPassword(conf.MQTT.Password)
		}
		publisher = mqtt.NewClient(opts)
		if token := publisher.Connect(); token.Wait() && token.Error() != nil {
			l.Error().Println("connect mqtt:", token.Error())
			os.Exit(1)
		}
		l.Info().Println("publishing gestures to", conf.MQTT.Broker)
	}

	for i, b := range buttons {
		bc := conf.Buttons[i]
		id := i
		for _, g := range gestures {
			g := g
			err = b.RegisterAction(g, func() {
				e := NewEvent(id, bc.Name, g)
				l.Info().Printf("button %q: %s", bc.Name, g)
				broadcaster.Publish(e)
				if publisher != nil {
					publisher.Publish(conf.MQTT.TopicPrefix+"/"+bc.Name, 0, false, g.String())
				}
			})
			if err != nil {
				l.Error().Println("register action:", err)
				os.Exit(1)
			}
		}
	}

	router := gin.Default()
	if conf.Server.Cors {
		router.Use(cors.Default())
	}

	router.GET("/buttons", func(c *gin.Context) {
		type info struct {
			ID    int    `json:"id"`
			Name  string `json:"name"`
			Pin   int    `json:"pin"`
			State string `json:"state"`
		}
		list := make([]info, 0, len(buttons))
		for i, b := range buttons {
			list = append(list, info{
				ID:    i,
				Name:  conf.Buttons[i].Name,
				Pin:   b.Pin(),
				State: b.State().String(),
			})
		}
		c.JSON(http.StatusOK, list)
	})

	upgrader := websocket.Upgrader{}
	if conf.Server.Cors {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	router.GET("/events", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			l.Warn().Println("upgrade:", err)
			return
		}
		broadcaster.Add(conn)
		defer func() {
			broadcaster.Remove(conn)
			_ = conn.Close()
		}()
		for {
			if _, _, err = conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	// Hold a simulated pin active for ?ms= then release it. Only the
	// memory driver supports this.
	router.POST("/press", func(c *gin.Context) {
		mem, ok := drv.(*memory.Driver)
		if !ok {
			c.String(http.StatusNotImplemented, "press is only supported by the memory driver")
			return
		}

		id, err := strconv.Atoi(c.Query("id"))
		if err != nil || id < 0 || id >= len(buttons) {
			c.String(http.StatusBadRequest, "unknown button id")
			return
		}
		ms, err := strconv.Atoi(c.Query("ms"))
		if err != nil || ms <= 0 {
			c.String(http.StatusBadRequest, "invalid duration")
			return
		}

		bc := conf.Buttons[id]
		active := gpio.Low
		if bc.ActiveHigh {
			active = gpio.High
		}

		mem.Set(bc.Pin, active)
		time.Sleep(time.Duration(ms) * time.Millisecond)
		mem.Release(bc.Pin)

		c.String(http.StatusOK, "ok")
	})

	go func() {
		if err := router.Run(conf.Server.Addr); err != nil {
			l.Error().Println("serve:", err)
			os.Exit(1)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	l.Info().Println("started on", conf.Server.Addr)
	sig := <-sigs
	l.Info().Println("exiting with", sig)
}

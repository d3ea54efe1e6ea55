// Command sdi12sensor runs a simulated SDI-12 sensor on a real serial
// port, loading its identification and parameter table from an INI
// profile file.
package main

import (
	"flag"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"gosdi12/profile"
	"gosdi12/sensor"
	"gosdi12/serialio"
)

const defaultProfilePath = "sensor.ini"
const defaultPort = "/dev/ttyUSB0"

// demoHooks wraps a serialio.Port for transport and fakes out parameter
// acquisition with small random values, so the command runs without any
// real sensing hardware attached.
type demoHooks struct {
	sensor.NopHooks
	*serialio.Port
}

func (h *demoHooks) ReadParam(index int) (sensor.Value, error) {
	return sensor.Value{Value: float32(rand.Intn(1000)) / 10, Decimals: 1}, nil
}

func main() {
	log.SetLevel(log.InfoLevel)

	profilePath := flag.String("profile", defaultProfilePath, "path to the sensor's INI profile")
	port := flag.String("port", defaultPort, "serial device to listen on")
	flag.Parse()

	prof, err := profile.Load(*profilePath)
	if err != nil {
		log.WithError(err).Fatal("failed to load sensor profile")
	}

	line, err := serialio.Open(*port)
	if err != nil {
		log.WithError(err).Fatal("failed to open serial port")
	}
	defer line.Close()

	hooks := &demoHooks{Port: line}
	ctx, err := sensor.Init(hooks, prof.Address, prof.Ident)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize sensor context")
	}
	for _, p := range prof.Params {
		if _, err := ctx.RegisterParam(p); err != nil {
			log.WithError(err).Fatal("failed to register parameter")
		}
	}

	log.WithField("address", string(prof.Address)).Info("sensor ready")

	buf := make([]byte, 128)
	for {
		n, err := line.Recv(buf, 0)
		if err != nil {
			log.WithError(err).Warn("read error")
			continue
		}
		if n == 0 {
			continue
		}
		if err := ctx.Process(buf[:n]); err != nil {
			log.WithError(err).Debug("command not processed")
		}
	}
}

// Command sdi12master is a minimal data-recorder CLI: it sends a break,
// identifies one sensor, starts a standard measurement, waits for it to
// finish, and prints the resulting data page.
package main

import (
	"flag"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"gosdi12/master"
	"gosdi12/serialio"
)

const defaultPort = "/dev/ttyUSB0"

func main() {
	log.SetLevel(log.InfoLevel)

	port := flag.String("port", defaultPort, "serial device the sensor bus is attached to")
	addr := flag.String("addr", "0", "sensor address to query")
	flag.Parse()
	if len(*addr) != 1 {
		log.Fatal("-addr must be a single character")
	}
	address := (*addr)[0]

	line, err := serialio.Open(*port)
	if err != nil {
		log.WithError(err).Fatal("failed to open serial port")
	}
	defer line.Close()

	m, err := master.Init(line)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize master context")
	}

	m.SendBreak()

	ident, err := m.Identify(address, master.ResponseTimeoutMS)
	if err != nil {
		log.WithError(err).Fatal("identify failed")
	}
	fmt.Printf("vendor=%q model=%q firmware=%q serial=%q\n",
		ident.Ident.Vendor, ident.Ident.Model, ident.Ident.Firmware, ident.Ident.Serial)

	meas, err := m.StartMeasurement(address, master.Standard, 0, false, master.ResponseTimeoutMS)
	if err != nil {
		log.WithError(err).Fatal("start_measurement failed")
	}
	fmt.Printf("measurement started: ttt=%ds count=%d\n", meas.TTT, meas.Count)

	if meas.TTT > 0 {
		if _, err := m.WaitServiceRequest(address, time.Duration(meas.TTT)*time.Second); err != nil {
			log.WithError(err).Fatal("wait_service_request failed")
		}
	}

	data, err := m.GetData(address, 0, false, master.ResponseTimeoutMS)
	if err != nil {
		log.WithError(err).Fatal("get_data failed")
	}
	fmt.Printf("values: %v\n", data.Values)
}

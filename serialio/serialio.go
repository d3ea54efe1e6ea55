//go:build !windows

// Package serialio implements the I/O capability both engines consume —
// gosdi12/master.Hooks directly, and the transport half of
// gosdi12/sensor.Hooks (SendResponse) for hosts that embed a Port — on top
// of a real RS-232 line. github.com/tarm/serial handles the ordinary
// open/configure/read/write path, while golang.org/x/sys/unix drives the
// TIOCSBRK/TIOCCBRK ioctls tarm/serial has no API for.
//
// SDI-12's inverted line logic (marking = idle-high) is a job for the
// transceiver hardware between this host and the bus, not something a
// termios-level driver can express; Port assumes that inversion already
// happened before bytes reach the UART.
package serialio

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"
	"golang.org/x/sys/unix"

	"gosdi12/master"
)

// BaudRate is the fixed SDI-12 line speed (spec.md §6, "1200 baud").
const BaudRate = 1200

// breakHoldMS is how long SendBreak asserts TIOCSBRK, spec.md §6's
// BREAK_MS.
const breakHoldMS = 12 * time.Millisecond

// Port is a half-duplex SDI-12 line: one tarm/serial.Port for framed
// read/write, and a second raw file descriptor opened against the same
// device purely to issue break ioctls (tarm/serial exposes no file
// descriptor of its own).
type Port struct {
	device string
	sp     *serial.Port
	brkFd  int
	logger *logrus.Entry
}

// Open configures path at 1200 baud, 7 data bits, even parity, 1 stop bit
// (spec.md §6) and prepares it for break generation.
func Open(path string) (*Port, error) {
	cfg := &serial.Config{
		Name:        path,
		Baud:        BaudRate,
		Size:        7,
		Parity:      serial.ParityEven,
		StopBits:    serial.Stop1,
		ReadTimeout: 50 * time.Millisecond,
	}
	sp, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("serialio: open %s: %w", path, err)
	}

	brkFd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		sp.Close()
		return nil, fmt.Errorf("serialio: open %s for break control: %w", path, err)
	}

	return &Port{
		device: path,
		sp:     sp,
		brkFd:  brkFd,
		logger: logrus.WithField("component", "serialio").WithField("device", path),
	}, nil
}

// Close releases both file descriptors.
func (p *Port) Close() error {
	unix.Close(p.brkFd)
	return p.sp.Close()
}

// Send writes data to the line (gosdi12/master.Hooks).
func (p *Port) Send(data []byte) error {
	_, err := p.sp.Write(data)
	return err
}

// SendResponse writes data to the line (the transport half of
// gosdi12/sensor.Hooks); hosts implementing the full sensor.Hooks
// interface embed *Port and get this for free.
func (p *Port) SendResponse(data []byte) error {
	return p.Send(data)
}

// Recv reads until buf fills, a line-ending LF is seen, or timeout
// elapses. It polls in small slices so the caller-supplied timeout can be
// honored independent of the port's own fixed ReadTimeout.
func (p *Port) Recv(buf []byte, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	total := 0
	for total < len(buf) {
		n, err := p.sp.Read(buf[total:])
		if err != nil {
			return total, err
		}
		total += n
		if total > 0 && buf[total-1] == '\n' {
			return total, nil
		}
		if time.Now().After(deadline) {
			return total, nil
		}
	}
	return total, nil
}

// SetDirection is a no-op: the transceivers this driver targets arbitrate
// the half-duplex line themselves. Adapters with an explicit DE/RE pin
// should wrap Port rather than modify it.
func (p *Port) SetDirection(d master.Direction) {
	p.logger.WithField("direction", d).Trace("set_direction (no hardware action)")
}

// SendBreak asserts TIOCSBRK for breakHoldMS then clears it with
// TIOCCBRK, the sequence SDI-12 v1.4 calls a "break".
func (p *Port) SendBreak() {
	if err := unix.IoctlSetInt(p.brkFd, unix.TIOCSBRK, 0); err != nil {
		p.logger.WithError(err).Warn("TIOCSBRK failed")
		return
	}
	time.Sleep(breakHoldMS)
	if err := unix.IoctlSetInt(p.brkFd, unix.TIOCCBRK, 0); err != nil {
		p.logger.WithError(err).Warn("TIOCCBRK failed")
	}
}

// Delay blocks the calling goroutine for d.
func (p *Port) Delay(d time.Duration) {
	time.Sleep(d)
}

// Package master implements the data-recorder side of the protocol: a
// sans-I/O transaction engine that composes command strings, drives the
// break/marking sequence, and parses sensor responses. All blocking lives
// behind the Hooks capability; the engine itself never sleeps or spins.
package master

import "time"

// Direction selects which half of the half-duplex line is active.
type Direction uint8

const (
	DirectionTX Direction = iota
	DirectionRX
)

// Hooks is the I/O capability a host supplies to drive a transaction
// engine (spec.md §6, "Master: send, recv, set_direction, send_break,
// delay").
type Hooks interface {
	// Send writes bytes to the bus. The engine always calls SetDirection
	// to TX before Send.
	Send(data []byte) error

	// Recv reads until a line terminated by LF is seen or timeout
	// elapses, returning the bytes read (terminator included, if seen).
	// A timeout with zero bytes read is reported by returning n == 0,
	// nil.
	Recv(buf []byte, timeout time.Duration) (n int, err error)

	// SetDirection switches the line driver between transmit and
	// receive.
	SetDirection(d Direction)

	// SendBreak asserts a spacing break for at least BreakMS.
	SendBreak()

	// Delay blocks the calling goroutine for d, used for the
	// post-break marking hold.
	Delay(d time.Duration)
}

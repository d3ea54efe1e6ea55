package master

import (
	"strings"
	"time"

	"gosdi12/command"
	"gosdi12/errs"
)

// SendBreak asserts the break line then holds marking for MarkingMS before
// returning, the sequence every transaction that doesn't already know the
// bus is idle must perform first (spec.md §4.E, "Break sequence").
func (c *Context) SendBreak() {
	c.hooks.SendBreak()
	c.hooks.Delay(MarkingMS)
}

// Transact sends cmd (without its trailing '!', which is appended here),
// switches to receive, and waits up to timeout for a line ending in LF.
// The returned string has its trailing CR LF trimmed. Timeout surfaces as
// errs.ErrTimeout.
func (c *Context) Transact(cmd string, timeout time.Duration) (string, error) {
	n := copy(c.cmdBuf[:], cmd)
	if n < len(c.cmdBuf) {
		c.cmdBuf[n] = '!'
		n++
	} else {
		return "", errs.ErrBufferOverflow
	}

	c.hooks.SetDirection(DirectionTX)
	if err := c.hooks.Send(c.cmdBuf[:n]); err != nil {
		return "", err
	}

	c.hooks.SetDirection(DirectionRX)
	read, err := c.hooks.Recv(c.respBuf[:], timeout)
	if err != nil {
		return "", err
	}
	if read == 0 {
		c.logger.WithField("cmd", cmd).Debug("no response before timeout")
		return "", errs.ErrTimeout
	}

	line := string(c.respBuf[:read])
	if !strings.HasSuffix(line, "\n") {
		c.logger.WithField("cmd", cmd).Debug("response not newline-terminated before timeout")
		return "", errs.ErrTimeout
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// QueryAddress sends the bus-wide "?!" query and returns the responding
// sensor's address.
func (c *Context) QueryAddress(timeout time.Duration) (byte, error) {
	resp, err := c.Transact("?", timeout)
	if err != nil {
		return 0, err
	}
	if len(resp) < 1 {
		return 0, errs.ErrParseFailed
	}
	return resp[0], nil
}

// Acknowledge sends "a!" and reports whether the sensor answered before
// timeout. Per spec.md §4.E, "Failure semantics", a timeout here is not
// surfaced as an error: it just means present = false.
func (c *Context) Acknowledge(addr byte, timeout time.Duration) (present bool, err error) {
	resp, err := c.Transact(string(addr), timeout)
	if err != nil {
		if err == errs.ErrTimeout {
			return false, nil
		}
		return false, err
	}
	return len(resp) > 0 && resp[0] == addr, nil
}

// ChangeAddress sends "aAb!" and returns the new address echoed back.
func (c *Context) ChangeAddress(addr, newAddr byte, timeout time.Duration) (byte, error) {
	if !command.IsValidAddress(newAddr) {
		return 0, errs.ErrInvalidAddress
	}
	resp, err := c.Transact(string(addr)+"A"+string(newAddr), timeout)
	if err != nil {
		return 0, err
	}
	if len(resp) < 1 {
		return 0, errs.ErrParseFailed
	}
	return resp[0], nil
}

package master

import (
	"strconv"
	"strings"
	"time"

	"gosdi12/errs"
)

// Extended sends "a<xcmd>!" and returns the single trimmed response line.
func (c *Context) Extended(addr byte, xcmd string, timeout time.Duration) (string, error) {
	return c.Transact(string(addr)+xcmd, timeout)
}

// ExtendedMultiline sends "a<xcmd>!" then keeps reading additional lines
// as long as each arrives within gap of the previous one (spec.md §4.E,
// "extended_multiline"). The first line is read with timeout; every
// subsequent line is read with gap.
func (c *Context) ExtendedMultiline(addr byte, xcmd string, timeout, gap time.Duration) ([]string, error) {
	first, err := c.Extended(addr, xcmd, timeout)
	if err != nil {
		return nil, err
	}
	lines := []string{first}

	for {
		c.hooks.SetDirection(DirectionRX)
		n, err := c.hooks.Recv(c.respBuf[:], gap)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return lines, nil
		}
		lines = append(lines, strings.TrimRight(string(c.respBuf[:n]), "\r\n"))
	}
}

// GetHVData sends the high-volume ASCII data-page request "aDn!" and
// returns the unparsed tail (everything after the address), for callers
// that want the raw text rather than parsed values.
func (c *Context) GetHVData(addr byte, page uint8, timeout time.Duration) (string, error) {
	resp, err := c.Transact(string(addr)+"D"+padDigits(uint16(page), 1), timeout)
	if err != nil {
		return "", err
	}
	if len(resp) < 1 || resp[0] != addr {
		return "", errs.ErrParseFailed
	}
	return resp[1:], nil
}

// maxBinaryPayload is the largest binary payload Binary packet intake
// accepts before raising BufferOverflow (spec.md §4.E, "Binary packet
// intake").
const maxBinaryPayload = 1000

// GetHVBinary sends "aDBn!" and reads one binary high-volume packet for page off the wire:
// address(1) || len_lsb || len_msb || type(1) || payload(N) || crc(2),
// with N read in a second pass once the length header is known.
func (c *Context) GetHVBinary(addr byte, page uint16, timeout time.Duration) (BinaryPacket, error) {
	cmd := string(addr) + "DB" + strconv.FormatUint(uint64(page), 10)
	n := copy(c.cmdBuf[:], cmd)
	if n < len(c.cmdBuf) {
		c.cmdBuf[n] = '!'
		n++
	} else {
		return BinaryPacket{}, errs.ErrBufferOverflow
	}

	c.hooks.SetDirection(DirectionTX)
	if err := c.hooks.Send(c.cmdBuf[:n]); err != nil {
		return BinaryPacket{}, err
	}
	c.hooks.SetDirection(DirectionRX)

	read, err := c.hooks.Recv(c.respBuf[:4], timeout)
	if err != nil {
		return BinaryPacket{}, err
	}
	if read < 4 {
		return BinaryPacket{}, errs.ErrTimeout
	}
	if c.respBuf[0] != addr {
		return BinaryPacket{}, errs.ErrParseFailed
	}
	payloadLen := int(c.respBuf[1]) | int(c.respBuf[2])<<8
	if payloadLen > maxBinaryPayload {
		return BinaryPacket{}, errs.ErrBufferOverflow
	}
	ptype := c.respBuf[3]

	tail := c.respBuf[4 : 4+payloadLen+2]
	read, err = c.hooks.Recv(tail, timeout)
	if err != nil {
		return BinaryPacket{}, err
	}
	if read < payloadLen+2 {
		return BinaryPacket{}, errs.ErrTimeout
	}

	frameLen := 4 + payloadLen
	valid, verr := verifyBinaryFrame(c.respBuf[:frameLen+2])
	if verr != nil {
		return BinaryPacket{}, verr
	}
	if !valid {
		return BinaryPacket{}, errs.ErrCRCMismatch
	}

	payload := make([]byte, payloadLen)
	copy(payload, c.respBuf[4:4+payloadLen])
	return BinaryPacket{Address: addr, Type: ptype, Payload: payload, CRCValid: true}, nil
}

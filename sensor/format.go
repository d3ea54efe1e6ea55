package sensor

import (
	"gosdi12/crc"
	"gosdi12/errs"
	"gosdi12/value"
)

// writeDigits writes n as exactly width zero-padded decimal digits into
// dst, returning false if it doesn't fit (n must be < 10^width).
func writeDigits(dst []byte, n, width int) bool {
	if len(dst) < width {
		return false
	}
	for i := width - 1; i >= 0; i-- {
		dst[i] = byte('0' + n%10)
		n /= 10
	}
	return n == 0
}

// writeMeasurementHeader appends "ttt" (always 3 digits) and the
// type-appropriate count field to resp, with no CRC and no terminator;
// callers append CRC/CRLF themselves.
func (c *Context) writeMeasurementHeader(ttt uint16, count int, mtype MeasurementType) bool {
	if ttt > 999 {
		ttt = 999
	}
	sat := mtype.CountSaturation()
	if count > sat {
		count = sat
	}
	var buf [6]byte
	if !writeDigits(buf[:3], int(ttt), 3) {
		return false
	}
	digits := mtype.CountDigits()
	if !writeDigits(buf[3:3+digits], count, digits) {
		return false
	}
	return c.resp.Write(buf[:3+digits], nil)
}

// sendMeasurementReply builds and transmits "a ttt n... CR LF" for a
// newly-started measurement.
func (c *Context) sendMeasurementReply(ttt uint16, count int, mtype MeasurementType) error {
	c.resp.Reset()
	if !c.resp.WriteByte(c.address, nil) {
		return errOverflow()
	}
	if !c.writeMeasurementHeader(ttt, count, mtype) {
		return errOverflow()
	}
	if !c.resp.AppendCRLF() {
		return errOverflow()
	}
	return c.send()
}

// sendIdentify builds and transmits the full identification response.
func (c *Context) sendIdentify() error {
	c.resp.Reset()
	ok := c.resp.WriteByte(c.address, nil) &&
		c.resp.Write([]byte("14"), nil) &&
		c.resp.Write([]byte(padTrunc(c.ident.Vendor, 8)), nil) &&
		c.resp.Write([]byte(padTrunc(c.ident.Model, 6)), nil) &&
		c.resp.Write([]byte(padTrunc(c.ident.Firmware, 3)), nil) &&
		c.resp.Write([]byte(truncOnly(c.ident.Serial, 13)), nil) &&
		c.resp.AppendCRLF()
	if !ok {
		return errOverflow()
	}
	return c.send()
}

// padTrunc space-pads s to width if shorter, or truncates if longer.
func padTrunc(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	padded := make([]byte, width)
	copy(padded, s)
	for i := len(s); i < width; i++ {
		padded[i] = ' '
	}
	return string(padded)
}

// truncOnly truncates s to width without padding shorter strings.
func truncOnly(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s
}

// sendDataPage formats and transmits one ASCII data page for the cached
// values belonging to mtype, selecting the requested page by walking the
// cache and splitting on the type's per-page byte budget (spec.md §4.D,
// "ASCII data pagination").
func (c *Context) sendDataPage(page uint8, mtype MeasurementType, crcRequested bool) error {
	c.resp.Reset()
	if !c.resp.WriteByte(c.address, nil) {
		return errOverflow()
	}

	budget := mtype.PageBudget()
	curPage := 0
	used := 0

	for i := 0; i < c.cacheLen; i++ {
		tok := value.Format(c.cache[i])
		if used+len(tok) > budget {
			curPage++
			used = 0
		}
		if curPage == int(page) {
			if !c.resp.Write([]byte(tok), nil) {
				return errOverflow()
			}
		}
		used += len(tok)
	}

	if crcRequested {
		acc := crc.Of(c.resp.Bytes())
		if !c.resp.AppendCRCAndCRLF(acc) {
			return errOverflow()
		}
	} else if !c.resp.AppendCRLF() {
		return errOverflow()
	}
	return c.send()
}

// sendBinaryPacket formats and transmits the high-volume binary packet
// for the given page (spec.md §4.D, "Binary high-volume"). If no binary
// format hook is installed it falls back to ASCII framing with identical
// values, per the spec's degrade rule.
func (c *Context) sendBinaryPacket(page uint16) error {
	if c.pend.mtype != HighVolBinary {
		return c.sendDataPage(uint8(page), c.pend.mtype, c.pend.crcRequested)
	}

	c.resp.Reset()
	// Reserve byte 0 for address; format hook writes type+payload from
	// byte 1 onward into the context's preallocated scratch area.
	raw := c.binScratch[:]
	n, ok := c.hooks.FormatBinaryPage(page, c.cache[:c.cacheLen], raw[1:])
	if !ok {
		return c.sendDataPage(uint8(page), HighVolAscii, c.pend.crcRequested)
	}
	origN := n
	payloadLen := n - 1
	if payloadLen < 0 {
		payloadLen = 0
		n = 1
	}

	header := make([]byte, 4)
	header[0] = c.address
	header[1] = byte(payloadLen & 0xFF)
	header[2] = byte((payloadLen >> 8) & 0xFF)
	if origN >= 1 {
		header[3] = raw[1]
	} else {
		header[3] = 0
	}

	if !c.resp.Write(header, nil) {
		return errOverflow()
	}
	if payloadLen > 0 {
		if !c.resp.Write(raw[2:1+n], nil) {
			return errOverflow()
		}
	}
	acc := crc.Of(c.resp.Bytes())
	// Binary packets are not CR/LF terminated: two raw little-endian CRC
	// bytes close the frame instead of the printable 3-char encoding text
	// responses use.
	if !c.resp.Write([]byte{byte(acc), byte(acc >> 8)}, nil) {
		return errOverflow()
	}
	return c.send()
}

// respBinaryScratch bounds the scratch area passed to FormatBinaryPage:
// type byte + up to 999 payload bytes, per spec.md §6.
const respBinaryScratch = 1 + 1 + 999

func errOverflow() error { return errs.ErrBufferOverflow }

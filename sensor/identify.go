package sensor

import (
	"gosdi12/command"
	"gosdi12/crc"
)

// measKindToType maps the identify-measurement MeasKind onto the
// MeasurementType whose header shape (ttt/count field widths, page
// budget) it borrows.
func measKindToType(k command.MeasKind) MeasurementType {
	switch k {
	case command.MeasKindConcurrent:
		return Concurrent
	case command.MeasKindVerify:
		return Verification
	case command.MeasKindHighVolAscii:
		return HighVolAscii
	case command.MeasKindHighVolBinary:
		return HighVolBinary
	case command.MeasKindContinuous:
		return Continuous
	default:
		return Standard
	}
}

// sendIdentifyMeasHeader answers aI{M,C,V,HA,HB,R}[g]! with a shape-only
// measurement header: ttt is always 000 (spec.md §9 Open Questions: the
// source reports 0 unless a capability estimate is known, which this
// engine never has at registration time), count is the number of
// registered parameters in the group, saturated per the type's field
// width.
func (c *Context) sendIdentifyMeasHeader(cmd command.Command) error {
	mtype := measKindToType(cmd.MeasKind)
	count := len(c.groupParams(cmd.Group))
	return c.sendMeasurementReply(0, count, mtype)
}

// sendIdentifyMeasParam answers aI...{g}_nnn! by locating the 1-based
// nnn-th parameter registered in the group and reporting its SHEF code
// and units.
func (c *Context) sendIdentifyMeasParam(cmd command.Command) error {
	group := c.groupParams(cmd.Group)
	c.resp.Reset()
	if !c.resp.WriteByte(c.address, nil) {
		return errOverflow()
	}

	n := int(cmd.ParamIndex)
	if n < 1 || n > len(group) {
		// Out of range: address (+CRC) + CRLF only.
		return c.finishIdentifyMeasParam(cmd.CRC)
	}
	p := c.params[group[n-1]]

	ok := c.resp.Write([]byte(","), nil) &&
		c.resp.Write([]byte(p.SHEF), nil) &&
		c.resp.Write([]byte(","), nil) &&
		c.resp.Write([]byte(p.Units), nil) &&
		c.resp.Write([]byte(";"), nil)
	if !ok {
		return errOverflow()
	}
	return c.finishIdentifyMeasParam(cmd.CRC)
}

func (c *Context) finishIdentifyMeasParam(crcRequested bool) error {
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

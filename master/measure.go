package master

import (
	"time"

	"gosdi12/command"
	"gosdi12/errs"
)

// measureTag maps a MeasurementType plus the CRC-requested flag onto the
// command-grammar prefix the master sends to start it.
func measureTag(mtype MeasurementType, crcRequested bool) (string, error) {
	switch mtype {
	case Standard:
		if crcRequested {
			return "MC", nil
		}
		return "M", nil
	case Concurrent:
		if crcRequested {
			return "CC", nil
		}
		return "C", nil
	case HighVolAscii:
		if crcRequested {
			return "HAC", nil
		}
		return "HA", nil
	case HighVolBinary:
		if crcRequested {
			return "HBC", nil
		}
		return "HB", nil
	case Verification:
		if crcRequested {
			return "VC", nil
		}
		return "V", nil
	default:
		return "", errs.ErrInvalidCommand
	}
}

// StartMeasurement sends "aMg!" (or the C/HA/HB/V/concurrent variant) and
// parses the returned "ttt n..." header.
func (c *Context) StartMeasurement(addr byte, mtype MeasurementType, group uint8, crcRequested bool, timeout time.Duration) (MeasResponse, error) {
	tag, err := measureTag(mtype, crcRequested)
	if err != nil {
		return MeasResponse{}, err
	}
	groupStr := ""
	if group != 0 && mtype != Verification && mtype != HighVolAscii && mtype != HighVolBinary {
		groupStr = string('0' + group)
	}
	resp, err := c.Transact(string(addr)+tag+groupStr, timeout)
	if err != nil {
		return MeasResponse{}, err
	}
	if len(resp) < 1 || resp[0] != addr {
		return MeasResponse{}, errs.ErrParseFailed
	}
	ttt, count, err := parseMeasurementHeader(resp[1:], mtype)
	if err != nil {
		return MeasResponse{}, err
	}
	return MeasResponse{Address: addr, TTT: ttt, Count: count}, nil
}

// WaitServiceRequest waits up to timeout for the unsolicited "a<CR><LF>"
// service request that follows a deferred standard measurement.
func (c *Context) WaitServiceRequest(addr byte, timeout time.Duration) (bool, error) {
	c.hooks.SetDirection(DirectionRX)
	n, err := c.hooks.Recv(c.respBuf[:], timeout)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	line := string(c.respBuf[:n])
	return len(line) > 0 && line[0] == addr, nil
}

// GetData sends "aDn!" and parses the returned data page.
func (c *Context) GetData(addr byte, page uint8, crcRequested bool, timeout time.Duration) (DataResponse, error) {
	resp, err := c.Transact(string(addr)+"D"+string('0'+page), timeout)
	if err != nil {
		return DataResponse{}, err
	}
	if len(resp) < 1 || resp[0] != addr {
		return DataResponse{}, errs.ErrParseFailed
	}
	vals, crcValid := parseDataValues(resp, crcRequested)
	return DataResponse{Address: addr, Values: vals, CRCValid: crcValid}, nil
}

// Continuous sends "aRidx!" (or "aRCidx!") and parses the single
// unpaginated response.
func (c *Context) Continuous(addr byte, idx uint8, crcRequested bool, timeout time.Duration) (DataResponse, error) {
	tag := "R"
	if crcRequested {
		tag = "RC"
	}
	resp, err := c.Transact(string(addr)+tag+string('0'+idx), timeout)
	if err != nil {
		return DataResponse{}, err
	}
	if len(resp) < 1 || resp[0] != addr {
		return DataResponse{}, errs.ErrParseFailed
	}
	vals, crcValid := parseDataValues(resp, crcRequested)
	return DataResponse{Address: addr, Values: vals, CRCValid: crcValid}, nil
}

// Verify sends "aV!" and parses the returned header exactly like a
// standard measurement, using the Verification count-field width.
func (c *Context) Verify(addr byte, timeout time.Duration) (MeasResponse, error) {
	return c.StartMeasurement(addr, Verification, 0, false, timeout)
}

// Identify sends "aI!" and parses the identification response.
func (c *Context) Identify(addr byte, timeout time.Duration) (IdentResponse, error) {
	resp, err := c.Transact(string(addr)+"I", timeout)
	if err != nil {
		return IdentResponse{}, err
	}
	if len(resp) < 1 || resp[0] != addr {
		return IdentResponse{}, errs.ErrParseFailed
	}
	ident, err := parseIdentify(resp[1:])
	if err != nil {
		return IdentResponse{}, err
	}
	return IdentResponse{Address: addr, Version: [2]byte{'1', '4'}, Ident: ident}, nil
}

// identMeasTag maps a MeasKind onto the aI{...} grammar's measurement-kind
// infix (spec.md §4.C command grammar).
func identMeasTag(kind command.MeasKind) string {
	switch kind {
	case command.MeasKindConcurrent:
		return "C"
	case command.MeasKindVerify:
		return "V"
	case command.MeasKindHighVolAscii:
		return "HA"
	case command.MeasKindHighVolBinary:
		return "HB"
	case command.MeasKindContinuous:
		return "R"
	default:
		return "M"
	}
}

// IdentifyMeasurement sends "aI{M,C,V,HA,HB,R}[g]!" and parses the
// ttt/count header the sensor reports for that measurement shape.
func (c *Context) IdentifyMeasurement(addr byte, kind command.MeasKind, group uint8, timeout time.Duration) (MeasResponse, error) {
	groupStr := ""
	if group != 0 {
		groupStr = string('0' + group)
	}
	resp, err := c.Transact(string(addr)+"I"+identMeasTag(kind)+groupStr, timeout)
	if err != nil {
		return MeasResponse{}, err
	}
	if len(resp) < 1 || resp[0] != addr {
		return MeasResponse{}, errs.ErrParseFailed
	}
	mtype := measKindToType(kind)
	ttt, count, err := parseMeasurementHeader(resp[1:], mtype)
	if err != nil {
		return MeasResponse{}, err
	}
	return MeasResponse{Address: addr, TTT: ttt, Count: count}, nil
}

// measKindToType mirrors the sensor engine's header-shape mapping (see
// gosdi12/sensor's identical table) without importing the sensor package.
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

// IdentifyParam sends "aI{...}{g}_nnn!" and parses the returned
// "addr,shef,units;" metadata.
func (c *Context) IdentifyParam(addr byte, kind command.MeasKind, group uint8, nnn uint16, timeout time.Duration) (ParamMetaResponse, error) {
	groupStr := ""
	if group != 0 {
		groupStr = string('0' + group)
	}
	nnnStr := padDigits(nnn, 3)
	resp, err := c.Transact(string(addr)+"I"+identMeasTag(kind)+groupStr+"_"+nnnStr, timeout)
	if err != nil {
		return ParamMetaResponse{}, err
	}
	if len(resp) < 1 || resp[0] != addr {
		return ParamMetaResponse{}, errs.ErrParseFailed
	}
	shef, units, err := parseParamMeta(resp[1:])
	if err != nil {
		return ParamMetaResponse{}, err
	}
	return ParamMetaResponse{Address: addr, SHEF: shef, Units: units}, nil
}

// padDigits zero-pads n to width decimal digits.
func padDigits(n uint16, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf)
}

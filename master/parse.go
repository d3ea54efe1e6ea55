package master

import (
	"strconv"

	"gosdi12/crc"
	"gosdi12/errs"
	"gosdi12/value"
)

// parseMeasurementHeader consumes "ttt" (always 3 digits) followed by the
// type-appropriate count field (spec.md §4.E, "Measurement-header
// parsing"). resp has already had the leading address byte stripped.
func parseMeasurementHeader(resp string, mtype MeasurementType) (ttt uint16, count uint16, err error) {
	if len(resp) < 3 {
		return 0, 0, errs.ErrParseFailed
	}
	t, convErr := strconv.ParseUint(resp[:3], 10, 16)
	if convErr != nil {
		return 0, 0, errs.ErrParseFailed
	}

	digits := mtype.CountDigits()
	if len(resp) < 3+digits {
		return 0, 0, errs.ErrParseFailed
	}
	n, convErr := strconv.ParseUint(resp[3:3+digits], 10, 16)
	if convErr != nil {
		return 0, 0, errs.ErrParseFailed
	}
	return uint16(t), uint16(n), nil
}

// Fixed widths of the vendor/model/firmware fields an identification
// response packs after the address and version tag (spec.md §4.E,
// "Identify parsing").
const (
	identVendorWidth   = 8
	identModelWidth    = 6
	identFirmwareWidth = 3
	identMinLen        = 3 + identVendorWidth + identModelWidth + identFirmwareWidth
)

// parseIdentify parses an "a14vvvvvvvvmmmmmmfffsss..." identification
// response. resp has already had the leading address byte stripped.
func parseIdentify(resp string) (Identification, error) {
	if len(resp) < identMinLen {
		return Identification{}, errs.ErrParseFailed
	}
	i := 3 // skip "14" protocol version tag (2 digits already past address)
	vendor := resp[i : i+identVendorWidth]
	i += identVendorWidth
	model := resp[i : i+identModelWidth]
	i += identModelWidth
	firmware := resp[i : i+identFirmwareWidth]
	i += identFirmwareWidth
	serial := resp[i:]
	if len(serial) > 13 {
		serial = serial[:13]
	}
	return Identification{Vendor: vendor, Model: model, Firmware: firmware, Serial: serial}, nil
}

// parseParamMeta parses a "shef,units;"-shaped identify-measurement
// parameter response (spec.md §4.E, "Parameter metadata parsing"). resp
// has already had the leading address byte stripped.
func parseParamMeta(resp string) (shef, units string, err error) {
	if len(resp) < 2 || resp[0] != ',' {
		return "", "", errs.ErrParseFailed
	}
	rest := resp[1:]
	comma := -1
	for i := 0; i < len(rest); i++ {
		if rest[i] == ',' {
			comma = i
			break
		}
	}
	if comma < 0 {
		return "", "", errs.ErrParseFailed
	}
	shef = rest[:comma]
	tail := rest[comma+1:]
	semi := -1
	for i := 0; i < len(tail); i++ {
		if tail[i] == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return "", "", errs.ErrParseFailed
	}
	return shef, tail[:semi], nil
}

// parseDataValues parses an "a+v1+v2..." data page. resp still carries its
// leading address byte and has already had its trailing CR LF trimmed by
// Transact. When crcRequested, the last 3 bytes are the printable CRC over
// everything before them, address included; crcValid reports whether they
// match.
func parseDataValues(resp string, crcRequested bool) (vals []value.Value, crcValid bool) {
	if !crcRequested {
		return value.Parse(resp[1:], 99), true
	}
	if len(resp) < 4 {
		return nil, false
	}
	dataLen := len(resp) - 3
	want := crc.Of([]byte(resp[:dataLen])).Encode3()
	got := [3]byte{resp[dataLen], resp[dataLen+1], resp[dataLen+2]}
	return value.Parse(resp[1:dataLen], 99), got == want
}

// verifyBinaryFrame checks a high-volume binary packet's trailing 2
// little-endian CRC bytes against the CRC of everything before them
// (spec.md §4.E, "Binary packet intake").
func verifyBinaryFrame(frame []byte) (bool, error) {
	if len(frame) < 2 {
		return false, errs.ErrParseFailed
	}
	dataLen := len(frame) - 2
	acc := crc.Of(frame[:dataLen])
	want := uint16(frame[dataLen]) | uint16(frame[dataLen+1])<<8
	return uint16(acc) == want, nil
}

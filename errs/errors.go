// Package errs defines the closed error taxonomy shared by the sensor and
// master engines (SPEC_FULL §1, spec.md §7). Errors are plain sentinel
// values, checked with errors.Is, the same convention the teacher uses for
// its CANopen error set.
package errs

import "errors"

var (
	ErrInvalidAddress = errors.New("sdi12: invalid address")
	ErrInvalidCommand = errors.New("sdi12: invalid command")
	ErrBufferOverflow = errors.New("sdi12: buffer overflow")
	ErrNotAddressed   = errors.New("sdi12: command not addressed to this sensor")
	ErrNoData         = errors.New("sdi12: no data available")
	ErrParamLimit     = errors.New("sdi12: parameter or extended command table full")
	ErrCallbackMissing = errors.New("sdi12: required hook not installed")
	ErrTimeout        = errors.New("sdi12: timeout waiting for response")
	ErrCRCMismatch    = errors.New("sdi12: crc mismatch")
	ErrParseFailed    = errors.New("sdi12: failed to parse response")
	ErrAborted        = errors.New("sdi12: measurement aborted")
)

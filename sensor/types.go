package sensor

import (
	"gosdi12/proto"
	"gosdi12/value"
)

// MaxParams is the largest number of parameters a sensor can register,
// the implementation floor the spec sets at MAX_PARAMS >= 20.
const MaxParams = 32

// MaxXCmds is the largest number of extended-command handlers a sensor
// can register (MAX_XCMDS >= 8).
const MaxXCmds = 12

// MeasurementType and its variants are shared with the master engine; see
// proto.MeasurementType.
type MeasurementType = proto.MeasurementType

const (
	Standard      = proto.Standard
	Concurrent    = proto.Concurrent
	HighVolAscii  = proto.HighVolAscii
	HighVolBinary = proto.HighVolBinary
	Verification  = proto.Verification
	Continuous    = proto.Continuous
)

// Identification is the fixed-width identity a sensor reports to aI!.
type Identification = proto.Identification

// Param is one registered measurement parameter.
type Param struct {
	SHEF     string // <=3 chars
	Units    string // <=20 chars
	Group    uint8  // 0-9
	Decimals uint8  // 0-7
}

// XCmd is one registered manufacturer extended-command handler.
type XCmd struct {
	Prefix  string
	Handler func(ctx *Context, body string, resp *responseWriter) error
}

// State is a sensor's position in the measurement-lifecycle state machine
// (spec.md §4.D).
type State uint8

const (
	StateStandby State = iota
	StateReady
	StateMeasuring
	StateMeasuringConcurrent
	StateDataReady
)

// pending describes an outstanding or just-completed measurement.
type pending struct {
	active       bool
	mtype        MeasurementType
	group        uint8
	crcRequested bool
}

// Value re-exports value.Value so callers of this package's hooks don't
// need to import the value package directly for the common case.
type Value = value.Value

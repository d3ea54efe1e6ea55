package master

import (
	"time"

	"github.com/sirupsen/logrus"

	"gosdi12/errs"
	"gosdi12/proto"
	"gosdi12/value"
)

// Timing constants canonical to SDI-12 v1.4 (spec.md §6).
const (
	BreakMS           = 12 * time.Millisecond
	MarkingMS         = 9 * time.Millisecond
	ResponseTimeoutMS = 15 * time.Millisecond
	InterCharMaxMS    = 2 * time.Millisecond
	MarkingTimeoutMS  = 87 * time.Millisecond
	StandbyMS         = 100 * time.Millisecond
	RetryMinMS        = 17 * time.Millisecond
	MultilineGapMS    = 150 * time.Millisecond
	AddressChangeMS   = 1000 * time.Millisecond
)

// respBufSize is the master's response buffer: address + length(2) +
// type + up to 1000 binary payload bytes + 2 CRC bytes (spec.md §3,
// "Master context").
const respBufSize = 1006

// cmdBufSize bounds a composed outgoing command; the longest grammar the
// master ever sends (an extended command body) fits well inside it.
const cmdBufSize = 64

// Identification, MeasurementType and its variants are the same shared
// types the sensor engine formats (gosdi12/proto).
type MeasurementType = proto.MeasurementType

const (
	Standard      = proto.Standard
	Concurrent    = proto.Concurrent
	HighVolAscii  = proto.HighVolAscii
	HighVolBinary = proto.HighVolBinary
	Verification  = proto.Verification
	Continuous    = proto.Continuous
)

type Identification = proto.Identification

// MeasResponse reports the outcome of starting a measurement.
type MeasResponse struct {
	Address byte
	TTT     uint16
	Count   uint16
}

// DataResponse reports one ASCII data page.
type DataResponse struct {
	Address  byte
	Values   []Value
	CRCValid bool
}

// ParamMetaResponse reports one parameter's metadata.
type ParamMetaResponse struct {
	Address byte
	SHEF    string
	Units   string
}

// BinaryPacket reports one high-volume binary page, already
// CRC-validated by the time it's returned.
type BinaryPacket struct {
	Address  byte
	Type     byte
	Payload  []byte
	CRCValid bool
}

// IdentResponse reports a parsed aI! response.
type IdentResponse struct {
	Address byte
	Version [2]byte
	Ident   Identification
}

// Value aliases the shared value type so callers don't need a second
// import for the common case.
type Value = value.Value

// Context is a master/data-recorder transaction engine. It owns no bus
// state beyond its buffers and a logger; every transaction is a
// self-contained send/recv round trip driven through Hooks.
type Context struct {
	hooks  Hooks
	logger *logrus.Entry

	cmdBuf  [cmdBufSize]byte
	respBuf [respBufSize]byte
}

// Option configures a Context at Init time.
type Option func(*Context)

// WithLogger overrides the default logger, the same functional-option
// pattern the sensor engine uses.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Context) { c.logger = l }
}

// Init constructs a master context bound to hooks.
func Init(hooks Hooks, opts ...Option) (*Context, error) {
	if hooks == nil {
		return nil, errs.ErrCallbackMissing
	}
	c := &Context{
		hooks:  hooks,
		logger: logrus.WithField("component", "sdi12-master"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

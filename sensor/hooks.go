package sensor

// Hooks is the capability interface the sensor engine invokes; it is the
// host's entire surface for UART framing, measurement acquisition and
// non-volatile storage (spec.md §6, "Deliberately out of scope"). The
// engine never touches hardware directly.
//
// Only SendResponse and ReadParam are mandatory. Every other method may
// be a no-op/zero-value implementation; the engine degrades gracefully
// per spec.md §4.D (e.g. no async hook means synchronous measurement, no
// binary-format hook means ASCII fallback).
type Hooks interface {
	// SendResponse transmits a complete response on the bus. The engine
	// calls this at most once per Process call.
	SendResponse(data []byte) error

	// ReadParam returns the current value of the parameter at the given
	// registration index. Used for synchronous measurement (no
	// StartMeasurement hook installed) and must complete within the
	// sensor's response-time budget.
	ReadParam(index int) (Value, error)

	// SaveAddress persists a newly assigned address. Optional: if not
	// overridden by an embedding type, NopHooks' implementation is a
	// no-op and the address only lives in memory.
	SaveAddress(addr byte) error

	// LoadAddress returns a previously persisted address and whether one
	// was found. Called once, from Init.
	LoadAddress() (addr byte, ok bool)

	// StartMeasurement requests that an asynchronous acquisition for the
	// given group/type begin. It returns the number of seconds (0-999)
	// the sensor should report in the measurement header. Returning
	// ok=false means "no async hook installed": the engine measures
	// synchronously via ReadParam instead.
	StartMeasurement(group uint8, mtype MeasurementType) (tttSeconds uint16, ok bool)

	// ServiceRequest is invoked when a deferred (non-concurrent) Measure
	// finishes, to emit the "a CR LF" service request independently of
	// the normal response path. If it returns ok=false the engine falls
	// back to SendResponse.
	ServiceRequest(addr byte) (ok bool)

	// FormatBinaryPage writes "type_byte || payload" for the given page
	// of a high-volume binary measurement into buf. The engine keeps the
	// address byte in its own slot ahead of buf, so buf[0] receives the
	// type byte and the payload follows from buf[1]. It returns the
	// number of bytes written including the type byte, and whether the
	// hook is installed at all.
	FormatBinaryPage(page uint16, values []Value, buf []byte) (n int, ok bool)

	// OnReset is called once, from Init, after the address has been
	// resolved.
	OnReset()
}

// NopHooks is an embeddable base that implements every optional Hooks
// method as a no-op / "not installed" response, so a host only needs to
// override ReadParam and SendResponse to get a minimal, fully synchronous
// sensor.
type NopHooks struct{}

func (NopHooks) SaveAddress(byte) error                { return nil }
func (NopHooks) LoadAddress() (byte, bool)             { return 0, false }
func (NopHooks) StartMeasurement(uint8, MeasurementType) (uint16, bool) { return 0, false }
func (NopHooks) ServiceRequest(byte) bool               { return false }
func (NopHooks) FormatBinaryPage(uint16, []Value, []byte) (int, bool) { return 0, false }
func (NopHooks) OnReset()                               {}

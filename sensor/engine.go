package sensor

import (
	"gosdi12/command"
	"gosdi12/errs"
)

// send transmits the built response via the Hooks and resets the buffer.
func (c *Context) send() error {
	err := c.hooks.SendResponse(c.resp.Bytes())
	c.resp.Reset()
	return err
}

// BreakSignal resets the sensor to StateReady, clearing any pending
// measurement and the data cache, while preserving the address and
// registrations (spec.md §3, "A break event resets state to Ready...").
func (c *Context) BreakSignal() {
	c.state = StateReady
	c.pend = pending{}
	c.cacheLen = 0
	c.logger.Debug("break received, state reset")
}

// abortConcurrent implements the "addressed command received while
// MeasuringConcurrent" transition: abort the in-flight measurement and
// fall through to Ready so the new command can be processed normally.
func (c *Context) abortConcurrent() {
	c.state = StateReady
	c.pend = pending{}
	c.cacheLen = 0
}

// Process handles one complete command string (with or without its
// trailing '!') addressed somewhere on the bus. It calls hooks.SendResponse
// at most once. A non-nil error means no bytes were sent: either the
// command was malformed (ErrInvalidCommand) or not addressed to this
// sensor (ErrNotAddressed, the universal-silence case) — both are routine
// and most callers ignore them.
func (c *Context) Process(raw []byte) error {
	cmd, err := command.Parse(raw)
	if err != nil {
		return errs.ErrInvalidCommand
	}

	addressed := cmd.Tag == command.TagQueryAddr || cmd.Address == c.address
	if !addressed {
		return errs.ErrNotAddressed
	}

	if c.state == StateMeasuringConcurrent && cmd.Tag != command.TagQueryAddr {
		c.abortConcurrent()
	}

	switch cmd.Tag {
	case command.TagAck, command.TagQueryAddr:
		return c.replyAddressOnly()

	case command.TagIdentify:
		return c.sendIdentify()

	case command.TagMeasure:
		return c.startMeasurement(Standard, cmd.Group, cmd.CRC)

	case command.TagVerify:
		return c.startMeasurement(Verification, 0, false)

	case command.TagConcurrent:
		return c.startMeasurement(Concurrent, cmd.Group, cmd.CRC)

	case command.TagHighVol:
		if cmd.Binary {
			return c.startMeasurement(HighVolBinary, 0, cmd.CRC)
		}
		return c.startMeasurement(HighVolAscii, 0, cmd.CRC)

	case command.TagHighVolStub:
		return c.sendHighVolStub()

	case command.TagSendData:
		return c.sendDataPage(cmd.Page, c.pend.mtype, c.pend.crcRequested)

	case command.TagSendBinary:
		return c.sendBinaryPacket(cmd.BinPage)

	case command.TagContinuous:
		return c.continuousRead(cmd.Group, cmd.CRC)

	case command.TagChangeAddr:
		return c.changeAddress(cmd.NewAddress)

	case command.TagIdentifyMeas:
		if cmd.HasParam {
			return c.sendIdentifyMeasParam(cmd)
		}
		return c.sendIdentifyMeasHeader(cmd)

	case command.TagExtended:
		return c.dispatchExtended(cmd.Body)
	}

	return errs.ErrInvalidCommand
}

// replyAddressOnly answers a!/?! with just the address.
func (c *Context) replyAddressOnly() error {
	c.resp.Reset()
	if !c.resp.WriteByte(c.address, nil) || !c.resp.AppendCRLF() {
		return errOverflow()
	}
	return c.send()
}

// sendHighVolStub answers the bare aH! with the fixed zero-value stub
// response.
func (c *Context) sendHighVolStub() error {
	c.resp.Reset()
	ok := c.resp.WriteByte(c.address, nil) &&
		c.resp.Write([]byte("000000"), nil) &&
		c.resp.AppendCRLF()
	if !ok {
		return errOverflow()
	}
	return c.send()
}

// startMeasurement begins the measurement lifecycle for mtype/group: it
// reads synchronously via ReadParam when no async hook is installed,
// otherwise defers to StartMeasurement and waits for MeasurementDone.
// Concurrent and high-volume measurements never emit a service request on
// completion; standard measurements do (spec.md §4.D state table).
func (c *Context) startMeasurement(mtype MeasurementType, group uint8, crcRequested bool) error {
	params := c.groupParams(group)
	c.pend = pending{active: true, mtype: mtype, group: group, crcRequested: crcRequested}

	ttt, ok := c.hooks.StartMeasurement(group, mtype)
	concurrent := mtype != Standard && mtype != Verification

	if !ok {
		// Synchronous path: acquire now, reply with ttt=0 and the real
		// count, and land directly in DataReady.
		if err := c.readGroupSync(params); err != nil {
			return err
		}
		c.state = StateDataReady
		return c.sendMeasurementReply(0, len(params), mtype)
	}

	if ttt > 999 {
		ttt = 999
	}
	if ttt == 0 {
		// Acquisition hook reports it is already done; still land in
		// DataReady synchronously, matching the Ready->DataReady row for
		// "ttt==0" starts.
		if err := c.readGroupSync(params); err != nil {
			return err
		}
		c.state = StateDataReady
	} else if concurrent {
		c.state = StateMeasuringConcurrent
	} else {
		c.state = StateMeasuring
	}
	return c.sendMeasurementReply(ttt, len(params), mtype)
}

// readGroupSync fills the data cache by calling ReadParam for every index
// in params, in order.
func (c *Context) readGroupSync(params []int) error {
	c.cacheLen = 0
	for _, idx := range params {
		v, err := c.hooks.ReadParam(idx)
		if err != nil {
			return err
		}
		c.cache[c.cacheLen] = v
		c.cacheLen++
	}
	return nil
}

// MeasurementDone is called by the host once a deferred measurement
// started via the StartMeasurement hook has finished. It is ignored
// unless the sensor is currently Measuring or MeasuringConcurrent
// (spec.md §5, "ignores it if state is not one of Measuring /
// MeasuringConcurrent").
func (c *Context) MeasurementDone(values []Value) error {
	if c.state != StateMeasuring && c.state != StateMeasuringConcurrent {
		return errs.ErrAborted
	}
	n := len(values)
	if n > MaxParams {
		n = MaxParams
	}
	copy(c.cache[:n], values[:n])
	c.cacheLen = n

	wasDeferredStandard := c.state == StateMeasuring
	c.state = StateDataReady

	if wasDeferredStandard {
		if ok := c.hooks.ServiceRequest(c.address); ok {
			return nil
		}
		c.resp.Reset()
		if !c.resp.WriteByte(c.address, nil) || !c.resp.AppendCRLF() {
			return errOverflow()
		}
		return c.send()
	}
	return nil
}

// continuousRead answers aR<g>!/aRC<g>! by reading the group
// synchronously and formatting its values as a single ASCII response
// (spec.md §4.C, "Continuous read of group idx"). Only the values that fit
// the first page of the Continuous 75-byte budget are sent; later values
// are not reported.
func (c *Context) continuousRead(group uint8, crcRequested bool) error {
	params := c.groupParams(group)
	if err := c.readGroupSync(params); err != nil {
		return err
	}
	c.state = StateDataReady
	return c.sendDataPage(0, Continuous, crcRequested)
}

// changeAddress validates and applies a new address, persisting it via
// the SaveAddress hook if one is installed.
func (c *Context) changeAddress(newAddr byte) error {
	if !command.IsValidAddress(newAddr) {
		return errs.ErrInvalidAddress
	}
	c.address = newAddr
	if err := c.hooks.SaveAddress(newAddr); err != nil {
		c.logger.WithError(err).Warn("failed to persist new address")
	}
	c.resp.Reset()
	if !c.resp.WriteByte(c.address, nil) || !c.resp.AppendCRLF() {
		return errOverflow()
	}
	return c.send()
}

// dispatchExtended scans the registered extended-command table in order
// and invokes the first handler whose prefix matches body. If none
// match, the fail-safe reply is just the address (no error on the wire).
func (c *Context) dispatchExtended(body string) error {
	c.resp.Reset()
	if !c.resp.WriteByte(c.address, nil) {
		return errOverflow()
	}

	for _, x := range c.xcmds {
		if len(body) >= len(x.Prefix) && body[:len(x.Prefix)] == x.Prefix {
			w := &responseWriter{ctx: c}
			if err := x.Handler(c, body, w); err != nil {
				c.logger.WithError(err).Debug("extended command handler failed")
			}
			if !c.resp.AppendCRLF() {
				return errOverflow()
			}
			return c.send()
		}
	}

	if !c.resp.AppendCRLF() {
		return errOverflow()
	}
	return c.send()
}

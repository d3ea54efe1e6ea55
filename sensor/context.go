package sensor

import (
	"github.com/sirupsen/logrus"

	"gosdi12/command"
	"gosdi12/errs"
	"gosdi12/internal/respbuf"
)

// Context is a single SDI-12 sensor's mutable state: address, identity,
// parameter/extended-command tables, measurement state machine, data
// cache and response buffer (spec.md §3, "Sensor context"). A host embeds
// or owns exactly one Context per physical sensor instance.
type Context struct {
	hooks  Hooks
	logger *logrus.Entry

	address byte
	ident   Identification

	params []Param
	xcmds  []XCmd

	state State
	pend  pending

	cache    [MaxParams]Value
	cacheLen int

	resp      *respbuf.Buffer
	binScratch [respBinaryScratch]byte
}

// Option configures optional aspects of a Context at Init time.
type Option func(*Context)

// WithLogger overrides the default logrus.Entry used for engine
// diagnostics. By default the engine logs nothing below Warn level.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Context) { c.logger = l }
}

// WithResponseBufferSize overrides the response buffer capacity (default
// respbuf.MinCapacity).
func WithResponseBufferSize(n int) Option {
	return func(c *Context) { c.resp = respbuf.New(n) }
}

// Init creates a sensor Context. If hooks.LoadAddress reports a valid
// persisted address it is used, otherwise defaultAddress must itself be
// valid. hooks and a valid resulting address are both required; either
// failure is fatal to this call only, per spec.md §7.
func Init(hooks Hooks, defaultAddress byte, ident Identification, opts ...Option) (*Context, error) {
	if hooks == nil {
		return nil, errs.ErrCallbackMissing
	}

	c := &Context{
		hooks:  hooks,
		logger: logrus.NewEntry(logrus.StandardLogger()).WithField("component", "sdi12-sensor"),
		ident:  ident,
		state:  StateReady,
		resp:   respbuf.New(respbuf.MinCapacity),
	}
	for _, opt := range opts {
		opt(c)
	}

	addr := defaultAddress
	if loaded, ok := hooks.LoadAddress(); ok && command.IsValidAddress(loaded) {
		addr = loaded
	}
	if !command.IsValidAddress(addr) {
		return nil, errs.ErrInvalidAddress
	}
	c.address = addr

	hooks.OnReset()
	c.logger.WithField("address", string(addr)).Debug("sensor initialized")
	return c, nil
}

// Address returns the sensor's current address.
func (c *Context) Address() byte { return c.address }

// State returns the sensor's current lifecycle state.
func (c *Context) State() State { return c.state }

// RegisterParam appends a measurement parameter to the registration
// table, returning its 0-based registration index (the order parameters
// are registered in is their index, per spec.md §3).
func (c *Context) RegisterParam(p Param) (int, error) {
	if len(c.params) >= MaxParams {
		return 0, errs.ErrParamLimit
	}
	if p.Group > 9 {
		return 0, errs.ErrInvalidCommand
	}
	if p.Decimals > 7 {
		return 0, errs.ErrInvalidCommand
	}
	c.params = append(c.params, p)
	return len(c.params) - 1, nil
}

// RegisterXCmd appends a manufacturer extended-command handler. Handlers
// are tried in registration order; the first whose prefix matches the aX
// body wins (spec.md §4.D).
func (c *Context) RegisterXCmd(prefix string, handler func(ctx *Context, body string, resp *responseWriter) error) error {
	if len(c.xcmds) >= MaxXCmds {
		return errs.ErrParamLimit
	}
	if len(prefix) > 15 {
		return errs.ErrInvalidCommand
	}
	c.xcmds = append(c.xcmds, XCmd{Prefix: prefix, Handler: handler})
	return nil
}

// groupParams returns the registration indices of every parameter in the
// given group, in registration order.
func (c *Context) groupParams(group uint8) []int {
	idx := make([]int, 0, len(c.params))
	for i, p := range c.params {
		if p.Group == group {
			idx = append(idx, i)
		}
	}
	return idx
}

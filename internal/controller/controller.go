// Package controller runs the scan loop of the BLE-MIDI key matrix controller
// and handles the packets written by the central.
package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/blemidi/internal/blemidi"
	"github.com/leandrodaf/blemidi/internal/knob"
	"github.com/leandrodaf/blemidi/internal/matrix"
	"github.com/leandrodaf/blemidi/sdk/contracts"
	"go.uber.org/multierr"
)

// Error definitions for controller setup and startup.
var (
	ErrNoTransport  = errors.New("no transport configured")
	ErrNoLogger     = errors.New("no logger configured")
	ErrScanInterval = errors.New("scan interval must be positive")
	ErrAdvertise    = errors.New("error starting advertising")
)

// Controller scans the key matrix, the function buttons and the knobs in a
// single loop and streams the resulting MIDI events to the transport.
type Controller struct {
	logger      contracts.Logger
	transport   contracts.Transport
	sender      *Sender
	keys        *matrix.KeyMatrix
	functions   *matrix.FunctionMatrix
	knobs       []*knob.Knob
	octave      *matrix.Octave
	latched     [][]int // note sent on press, per key
	channel     uint8
	velocity    uint8
	baseNote    uint8
	interval    time.Duration
	heartbeat   contracts.OutputLine
	beat        bool
	sink        contracts.EventSink
	filter      *contracts.MIDIEventFilter
	diagnostics func(contracts.Diagnostic)
	closeOnce   sync.Once
	closeErr    error
}

var _ contracts.Controller = (*Controller)(nil)

// New builds a controller from fully defaulted options and registers its
// write handler on the transport.
func New(opts *contracts.ControllerOptions) (*Controller, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}
	if opts.Logger == nil {
		return nil, ErrNoLogger
	}
	if opts.ScanInterval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrScanInterval, opts.ScanInterval)
	}

	c := &Controller{
		logger:      opts.Logger,
		transport:   opts.Transport,
		sender:      NewSender(opts.Transport, opts.Logger, opts.Diagnostics),
		keys:        matrix.NewKeyMatrix(opts.Keys.Rows, opts.Keys.Cols),
		octave:      &matrix.Octave{},
		channel:     opts.Channel,
		velocity:    opts.Velocity,
		baseNote:    opts.BaseNote,
		interval:    opts.ScanInterval,
		heartbeat:   opts.Heartbeat,
		sink:        opts.EventSink,
		filter:      opts.MIDIEventFilter,
		diagnostics: opts.Diagnostics,
	}

	c.latched = make([][]int, len(opts.Keys.Rows))
	for r := range c.latched {
		c.latched[r] = make([]int, len(opts.Keys.Cols))
	}

	if len(opts.Functions.Cols) > 0 {
		c.functions = matrix.NewFunctionMatrix(opts.Functions.Row, opts.Functions.Cols, c.functionActions(opts.FunctionActions))
	}
	for _, k := range opts.Knobs {
		c.knobs = append(c.knobs, knob.New(k.Reader, k.Controller, 0))
	}

	if c.heartbeat != nil {
		c.heartbeat.Set(c.beat)
	}
	c.transport.OnWrite(c.HandleWrite)

	rows, cols := c.keys.Size()
	c.logger.Info("Controller ready",
		c.logger.Field().Int("rows", rows),
		c.logger.Field().Int("cols", cols),
		c.logger.Field().Int("functionButtons", len(opts.Functions.Cols)),
		c.logger.Field().Int("knobs", len(c.knobs)),
		c.logger.Field().Uint8("channel", c.channel))
	return c, nil
}

// functionActions builds the default table and applies the overrides.
func (c *Controller) functionActions(overrides map[int]func()) []matrix.Action {
	actions := matrix.DefaultActions(c.octave,
		func(index int) {
			c.logger.Info("Function button pressed", c.logger.Field().Int("index", index))
		},
		func(offset int) {
			c.logger.Info("Octave changed", c.logger.Field().Int("octave", offset))
		})
	for index, action := range overrides {
		if index < 0 {
			continue
		}
		for len(actions) <= index {
			actions = append(actions, nil)
		}
		actions[index] = action
	}
	return actions
}

// Run starts advertising and scans until ctx is cancelled. The idle delay
// between two cycles is the only debounce interval.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.transport.Advertise(); err != nil {
		return fmt.Errorf("%w: %v", ErrAdvertise, err)
	}
	c.logger.Info("Scan loop started", c.logger.Field().Int64("intervalMs", c.interval.Milliseconds()))

	timer := time.NewTimer(c.interval)
	defer timer.Stop()
	for {
		c.ScanOnce()
		timer.Reset(c.interval)
		select {
		case <-ctx.Done():
			c.logger.Info("Scan loop stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// ScanOnce performs one cycle: keys, function buttons, knobs, heartbeat.
func (c *Controller) ScanOnce() {
	c.keys.Scan(c.handleKey)
	if c.functions != nil {
		c.functions.Scan()
	}
	for _, k := range c.knobs {
		if value, changed := k.Poll(); changed {
			c.sender.ControlChange(c.channel, k.Controller(), value)
		}
	}
	if c.heartbeat != nil {
		c.beat = !c.beat
		c.heartbeat.Set(c.beat)
	}
}

func (c *Controller) handleKey(e matrix.Edge) {
	if e.Pressed {
		note := matrix.Note(c.baseNote, e.Row, e.Col, c.octave.Value())
		c.latched[e.Row][e.Col] = note
		c.logger.Debug("Key pressed",
			c.logger.Field().Int("row", e.Row),
			c.logger.Field().Int("col", e.Col),
			c.logger.Field().Int("note", note))
		c.sender.Note(c.channel, note, c.velocity)
		return
	}
	note := c.latched[e.Row][e.Col]
	c.logger.Debug("Key released",
		c.logger.Field().Int("row", e.Row),
		c.logger.Field().Int("col", e.Col),
		c.logger.Field().Int("note", note))
	c.sender.Note(c.channel, note, 0)
}

// HandleWrite decodes a packet written by the central. It runs in the BLE
// stack context: decode, log, forward, nothing else.
func (c *Controller) HandleWrite(packet []byte) {
	for event := range blemidi.DecodeReport(packet, c.reportDrop(packet)) {
		c.logger.Info("MIDI received",
			c.logger.Field().String("command", event.Command.String()),
			c.logger.Field().Uint8("channel", event.Channel),
			c.logger.Field().Uint8("data1", event.Data1),
			c.logger.Field().Uint8("data2", event.Data2))
		if c.sink == nil || !c.filter.Allows(event.Command) {
			continue
		}
		if err := c.sink.Send(event); err != nil {
			c.logger.Error("Failed to forward MIDI event",
				c.logger.Field().Error("error", err),
				c.logger.Field().String("event", event.String()))
		}
	}
}

// reportDrop returns the drop observer for packet. The observer gets its own
// copy: the BLE stack reuses its write buffer once HandleWrite returns.
func (c *Controller) reportDrop(packet []byte) func(blemidi.Drop) {
	var owned []byte
	return func(d blemidi.Drop) {
		c.logger.Debug("Inbound MIDI dropped",
			c.logger.Field().String("reason", d.Kind.String()),
			c.logger.Field().Int("offset", d.Offset),
			c.logger.Field().Binary("packet", packet))
		if c.diagnostics == nil {
			return
		}
		if owned == nil {
			owned = bytes.Clone(packet)
		}
		c.diagnostics(contracts.Diagnostic{Kind: d.Kind, Offset: d.Offset, Packet: owned})
	}
}

// Octave returns the current octave offset.
func (c *Controller) Octave() int {
	return c.octave.Value()
}

// Close stops the transport and closes the event sink. Only the first call
// does anything.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.logger.Info("Closing controller")
		var err error
		err = multierr.Append(err, c.transport.Close())
		if c.sink != nil {
			err = multierr.Append(err, c.sink.Close())
		}
		c.closeErr = err
	})
	return c.closeErr
}

package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leandrodaf/blemidi/internal/blemidi"
	"github.com/leandrodaf/blemidi/internal/gpio"
	"github.com/leandrodaf/blemidi/internal/logger"
	"github.com/leandrodaf/blemidi/internal/matrix"
	"github.com/leandrodaf/blemidi/internal/transport"
	"github.com/leandrodaf/blemidi/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	c       *Controller
	keys    *gpio.SimMatrix
	fn      []*gpio.Line
	rec     *transport.Recorder
	logs    *observer.ObservedLogs
	diags   []contracts.Diagnostic
	options *contracts.ControllerOptions
}

func newFixture(t *testing.T, connected bool, extra ...contracts.Option) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.Wrap(zap.New(core))
	log.SetLevel(contracts.DebugLevel)

	f := &fixture{keys: gpio.NewSimMatrix(2, 12), rec: transport.NewRecorder(connected), logs: logs}
	fnInputs := make([]contracts.InputLine, matrix.FunctionButtons)
	for i := range fnInputs {
		line := gpio.NewLine(true)
		f.fn = append(f.fn, line)
		fnInputs[i] = line
	}

	opts := &contracts.ControllerOptions{
		Channel:      0,
		Velocity:     100,
		BaseNote:     60,
		ScanInterval: time.Millisecond,
	}
	all := append([]contracts.Option{
		contracts.WithLogger(log),
		contracts.WithTransport(f.rec),
		contracts.WithKeyMatrix(f.keys.Rows(), f.keys.Cols()),
		contracts.WithFunctionMatrix(nil, fnInputs),
		contracts.WithDiagnostics(func(d contracts.Diagnostic) { f.diags = append(f.diags, d) }),
	}, extra...)
	for _, o := range all {
		o(opts)
	}
	f.options = opts

	c, err := New(opts)
	require.NoError(t, err)
	f.c = c
	return f
}

func (f *fixture) pressFunction(i int) {
	f.fn[i].Set(false)
	f.c.ScanOnce()
	f.fn[i].Set(true)
	f.c.ScanOnce()
}

func decodeOne(t *testing.T, packet []byte) contracts.Event {
	t.Helper()
	events := blemidi.DecodeAll(packet)
	require.Len(t, events, 1)
	return events[0]
}

func TestPressReleaseEndToEnd(t *testing.T) {
	f := newFixture(t, true)

	f.keys.Press(0, 0)
	f.c.ScanOnce()
	f.c.ScanOnce()
	f.keys.Release(0, 0)
	f.c.ScanOnce()
	f.c.ScanOnce()

	sent := f.rec.Sent()
	require.Len(t, sent, 2)

	on := decodeOne(t, sent[0])
	assert.Equal(t, contracts.Event{Command: contracts.NoteOn, Data1: 60, Data2: 100}, on)
	off := decodeOne(t, sent[1])
	assert.Equal(t, contracts.Event{Command: contracts.NoteOff, Data1: 60, Data2: 0}, off)

	t0, _ := blemidi.PacketTimestamp(sent[0])
	t1, _ := blemidi.PacketTimestamp(sent[1])
	assert.Equal(t, (t0+1)&blemidi.TimestampMask, t1)
}

func TestRowAndColumnMapping(t *testing.T) {
	f := newFixture(t, true)
	f.keys.Press(1, 11)
	f.c.ScanOnce()

	sent := f.rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, uint8(83), decodeOne(t, sent[0]).Note())
}

func TestDisconnectedSendsAreDropped(t *testing.T) {
	f := newFixture(t, false)

	f.keys.Press(0, 3)
	f.c.ScanOnce()
	f.keys.Release(0, 3)
	f.c.ScanOnce()

	assert.Empty(t, f.rec.Sent())
	assert.Zero(t, f.c.sender.Timestamp(), "timestamp only advances on send")
	require.Len(t, f.diags, 2)
	assert.Equal(t, contracts.SendWhileDisconnected, f.diags[0].Kind)
	assert.Nil(t, f.diags[0].Packet)

	// Reconnecting does not replay anything.
	f.rec.Connect("central")
	f.c.ScanOnce()
	assert.Empty(t, f.rec.Sent())

	f.keys.Press(0, 3)
	f.c.ScanOnce()
	require.Len(t, f.rec.Sent(), 1)
	ts, _ := blemidi.PacketTimestamp(f.rec.Sent()[0])
	assert.Zero(t, ts)
}

func TestOctaveButtonsShiftNotes(t *testing.T) {
	f := newFixture(t, true)

	f.pressFunction(matrix.OctaveDownButton)
	assert.Equal(t, -1, f.c.Octave())

	f.keys.Press(0, 0)
	f.c.ScanOnce()

	// Changing octave while the key is held still releases the sounding note.
	f.pressFunction(matrix.OctaveUpButton)
	f.pressFunction(matrix.OctaveUpButton)
	assert.Equal(t, 1, f.c.Octave())
	f.keys.Release(0, 0)
	f.c.ScanOnce()

	sent := f.rec.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, uint8(48), decodeOne(t, sent[0]).Note())
	off := decodeOne(t, sent[1])
	assert.Equal(t, contracts.NoteOff, off.Command)
	assert.Equal(t, uint8(48), off.Note())
}

func TestOctaveClampThroughController(t *testing.T) {
	f := newFixture(t, true)
	for i := 0; i < 15; i++ {
		f.pressFunction(matrix.OctaveUpButton)
	}
	assert.Equal(t, matrix.MaxOctave, f.c.Octave())

	f.keys.Press(1, 0)
	f.c.ScanOnce()
	require.Len(t, f.rec.Sent(), 1)
	// 60 + 11*12 = 192, masked into 7 bits.
	assert.Equal(t, uint8(192&0x7F), decodeOne(t, f.rec.Sent()[0]).Note())
	require.NotEmpty(t, f.diags)
	truncated := f.diags[len(f.diags)-1]
	assert.Equal(t, contracts.ValueTruncated, truncated.Kind)
	assert.Equal(t, f.rec.Sent()[0], truncated.Packet)

	for i := 0; i < 30; i++ {
		f.pressFunction(matrix.OctaveDownButton)
	}
	assert.Equal(t, matrix.MinOctave, f.c.Octave())
}

func TestPlaceholderButtonsOnlyLog(t *testing.T) {
	f := newFixture(t, true)
	f.pressFunction(2)
	assert.Empty(t, f.rec.Sent())
	assert.Zero(t, f.c.Octave())
	assert.Equal(t, 1, f.logs.FilterMessage("Function button pressed").Len())
}

func TestFunctionActionOverride(t *testing.T) {
	called := 0
	f := newFixture(t, true, contracts.WithFunctionAction(0, func() { called++ }))
	f.pressFunction(0)
	assert.Equal(t, 1, called)
	assert.Zero(t, f.logs.FilterMessage("Function button pressed").Len())
}

type recordingSink struct {
	events []contracts.Event
	err    error
	closed bool
}

func (s *recordingSink) Send(e contracts.Event) error {
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) Close() error {
	s.closed = true
	return s.err
}

func TestHandleWriteForwardsFilteredEvents(t *testing.T) {
	sink := &recordingSink{}
	f := newFixture(t, true,
		contracts.WithEventSink(sink),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.NoteOn}}))

	f.rec.Write([]byte{0x80, 0x80, 0x90, 60, 100, 0xB0, 7, 90, 0x80, 60, 0})

	assert.Equal(t, []contracts.Event{{Command: contracts.NoteOn, Data1: 60, Data2: 100}}, sink.events)
	assert.Equal(t, 3, f.logs.FilterMessage("MIDI received").Len())
}

func TestHandleWriteDropsMalformed(t *testing.T) {
	sink := &recordingSink{}
	f := newFixture(t, true, contracts.WithEventSink(sink))

	packet := []byte{0x10, 0x80, 0x90, 60, 100}
	assert.NotPanics(t, func() { f.rec.Write(packet) })
	assert.NotPanics(t, func() { f.rec.Write(nil) })
	assert.Empty(t, sink.events)
	require.Len(t, f.diags, 2)
	assert.Equal(t, contracts.MalformedPacket, f.diags[0].Kind)
	assert.Equal(t, packet, f.diags[0].Packet)
}

func TestHandleWriteDiagnosticsOwnPacket(t *testing.T) {
	f := newFixture(t, true)

	packet := []byte{0x80, 0x80, 0xF8, 0x90, 60, 100}
	f.rec.Write(packet)
	require.Len(t, f.diags, 1)
	assert.Equal(t, contracts.UnknownStatus, f.diags[0].Kind)

	// The driver reuses its buffer after the write callback returns.
	packet[2] = 0x00
	assert.Equal(t, byte(0xF8), f.diags[0].Packet[2])
}

func TestHandleWriteSinkErrorIsLogged(t *testing.T) {
	sink := &recordingSink{err: errors.New("port gone")}
	f := newFixture(t, true, contracts.WithEventSink(sink))
	f.rec.Write([]byte{0x80, 0x80, 0x90, 60, 100})
	assert.Len(t, sink.events, 1)
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to forward MIDI event").Len())
}

func TestNotifyErrorIsNotRetried(t *testing.T) {
	f := newFixture(t, true)
	f.rec.FailNotify(errors.New("link lost"))
	f.keys.Press(0, 0)
	f.c.ScanOnce()
	f.c.ScanOnce()
	assert.Empty(t, f.rec.Sent())
	assert.Equal(t, 1, f.logs.FilterMessage("Failed to send notification").Len())
}

type position struct{ value int }

func (p *position) Position() int { return p.value }

func TestKnobSendsControlChange(t *testing.T) {
	pos := &position{}
	f := newFixture(t, true, contracts.WithKnob(pos, 74))

	f.c.ScanOnce()
	assert.Empty(t, f.rec.Sent())

	pos.value = 5
	f.c.ScanOnce()
	sent := f.rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, contracts.Event{Command: contracts.ControlChange, Data1: 74, Data2: 5}, decodeOne(t, sent[0]))
}

func TestHeartbeatTogglesEveryCycle(t *testing.T) {
	led := gpio.NewLine(false)
	f := newFixture(t, true, contracts.WithHeartbeat(led))
	for i := 0; i < 4; i++ {
		f.c.ScanOnce()
	}
	assert.Equal(t, 4, led.Toggles())
}

func TestHeartbeatFirstCycleIsVisible(t *testing.T) {
	led := gpio.NewLine(true)
	f := newFixture(t, true, contracts.WithHeartbeat(led))
	assert.False(t, led.Get(), "LED is driven off at startup")

	f.c.ScanOnce()
	assert.True(t, led.Get())
	f.c.ScanOnce()
	assert.False(t, led.Get())
}

func TestRunAdvertisesAndStopsOnCancel(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.c.Run(ctx) }()

	f.keys.Press(0, 1)
	assert.Eventually(t, func() bool { return len(f.rec.Sent()) == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, f.rec.Advertised())
}

func TestCloseCombinesErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink close")}
	f := newFixture(t, true, contracts.WithEventSink(sink))

	err := f.c.Close()
	assert.ErrorIs(t, err, sink.err)
	assert.True(t, sink.closed)
	assert.True(t, f.rec.Closed())
	assert.Equal(t, err, f.c.Close(), "second close returns the same result")
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(&contracts.ControllerOptions{})
	assert.ErrorIs(t, err, ErrNoTransport)

	_, err = New(&contracts.ControllerOptions{Transport: transport.NewRecorder(false)})
	assert.ErrorIs(t, err, ErrNoLogger)

	_, err = New(&contracts.ControllerOptions{Transport: transport.NewRecorder(false), Logger: logger.Wrap(zap.NewNop())})
	assert.ErrorIs(t, err, ErrScanInterval)
}

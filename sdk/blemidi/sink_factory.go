package blemidi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/blemidi/internal/midi/mididarwin"
	"github.com/leandrodaf/blemidi/internal/midi/midiwindows"
	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no host MIDI sink.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sinkInitializers maps OS names to host MIDI sink initializers.
var sinkInitializers = map[string]func(*contracts.ControllerOptions) (contracts.EventSink, error){
	"darwin":  mididarwin.NewMIDISink,  // macOS virtual CoreMIDI source.
	"windows": midiwindows.NewMIDISink, // Windows winmm output device.
}

// NewEventSink opens the host MIDI port that decoded inbound events are
// forwarded to, for use with contracts.WithEventSink.
//
// Returns ErrUnsupportedOS on platforms without a host MIDI implementation.
func NewEventSink(opts ...contracts.Option) (contracts.EventSink, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	if initializer, exists := sinkInitializers[runtime.GOOS]; exists {
		return initializer(&options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

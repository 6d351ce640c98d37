//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/blemidi/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// deliverNow is the MIDITimeStamp meaning "now".
const deliverNow uint64 = 0

// Error definitions for CoreMIDI forwarding.
var (
	ErrCreateClient = errors.New("error creating CoreMIDI client")
	ErrCreateSource = errors.New("error creating virtual MIDI source")
	ErrSinkClosed   = errors.New("MIDI sink is closed")
)

// SinkMid publishes decoded BLE-MIDI events on a virtual CoreMIDI source, so
// that any macOS application can receive what the central writes to the
// controller.
type SinkMid struct {
	logger contracts.Logger
	client coremidi.Client // CoreMIDI client owning the source.
	source coremidi.Source // Virtual source events are published on.
	mu     sync.Mutex      // Serializes publishing and closing.
	closed bool            // Set once Close has run.
}

// NewMIDISink creates the CoreMIDI client and its virtual source.
func NewMIDISink(options *contracts.ControllerOptions) (contracts.EventSink, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateClient, err)
	}

	source, err := coremidi.NewSource(client, options.CoreMIDIConfig.SourceName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateSource, err)
	}
	options.Logger.Info("Virtual MIDI source created",
		options.Logger.Field().String("client", options.CoreMIDIConfig.ClientName),
		options.Logger.Field().String("source", options.CoreMIDIConfig.SourceName))

	return &SinkMid{
		logger: options.Logger,
		client: client,
		source: source,
	}, nil
}

// Send publishes one event on the virtual source.
func (m *SinkMid) Send(event contracts.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrSinkClosed
	}

	packet := packetFor(event)
	if err := packet.Received(&m.source); err != nil {
		m.logger.Error("Failed to publish MIDI event", m.logger.Field().Error("error", err))
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

// packetFor wraps event in a CoreMIDI packet. Timestamp 0 asks CoreMIDI to
// deliver the packet immediately.
func packetFor(event contracts.Event) coremidi.Packet {
	return coremidi.NewPacket([]byte(event.Message()), deliverNow)
}

// Close stops publishing. Further calls to Send return ErrSinkClosed.
func (m *SinkMid) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		m.logger.Info("Virtual MIDI source closed")
	}
	return nil
}

package contracts

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// MIDICommand is the high nibble of a MIDI channel voice status byte.
type MIDICommand byte

const (
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// ControlChange is the MIDI command for a Control Change event (0xB0).
	ControlChange MIDICommand = 0xB0
)

// String returns the command name.
func (c MIDICommand) String() string {
	switch c {
	case NoteOff:
		return "NoteOff"
	case NoteOn:
		return "NoteOn"
	case ControlChange:
		return "ControlChange"
	}
	return fmt.Sprintf("MIDICommand(0x%02X)", byte(c))
}

// Event is a channel voice message decoded from a BLE-MIDI packet.
//
// Data1 and Data2 are always 7-bit values. For NoteOn and NoteOff they hold
// the note and the velocity, for ControlChange the controller and the value.
type Event struct {
	Command MIDICommand
	Channel uint8
	Data1   uint8
	Data2   uint8
}

// Note returns the note number of a NoteOn or NoteOff event.
func (e Event) Note() uint8 { return e.Data1 }

// Velocity returns the velocity of a NoteOn or NoteOff event.
func (e Event) Velocity() uint8 { return e.Data2 }

// Controller returns the controller number of a ControlChange event.
func (e Event) Controller() uint8 { return e.Data1 }

// Value returns the value of a ControlChange event.
func (e Event) Value() uint8 { return e.Data2 }

// Message returns the event as a raw three byte MIDI message.
func (e Event) Message() midi.Message {
	return midi.Message([]byte{byte(e.Command) | e.Channel&0x0F, e.Data1 & 0x7F, e.Data2 & 0x7F})
}

// String renders the event the way gomidi renders a message.
func (e Event) String() string {
	return e.Message().String()
}

// MIDIEventFilter allows users to specify which MIDI commands are forwarded to an EventSink.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to forward.
}

// Allows reports whether the command passes the filter. A nil filter allows everything.
func (f *MIDIEventFilter) Allows(command MIDICommand) bool {
	if f == nil {
		return true
	}
	for _, allowed := range f.Commands {
		if allowed == command {
			return true
		}
	}
	return false
}

// EventSink receives the events decoded from packets written by the central.
type EventSink interface {
	Send(event Event) error // Forwards one decoded event.
	Close() error           // Releases the underlying MIDI port.
}

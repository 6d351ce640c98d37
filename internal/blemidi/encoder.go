// Package blemidi implements the BLE-MIDI packet framing used on the MIDI I/O
// characteristic: a header byte and a timestamp-low byte, both with bit 7 set,
// followed by channel voice messages.
package blemidi

import "github.com/leandrodaf/blemidi/sdk/contracts"

const (
	msbMask      = 1 << 7
	sevenBitMask = 0x7F
	channelMask  = 0x0F
	commandMask  = 0xF0

	// PacketSize is the size of a single-event packet.
	PacketSize = 5
)

// Encoder builds single-event BLE-MIDI packets. Out of range values are
// masked, never rejected.
type Encoder struct {
	ts Timestamp
}

// NewEncoder returns an encoder whose first packet carries timestamp 0.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeNote builds a Note On packet, or a Note Off packet when velocity is 0.
func (e *Encoder) EncodeNote(channel, note, velocity uint8) []byte {
	velocity &= sevenBitMask
	command := contracts.NoteOn
	if velocity == 0 {
		command = contracts.NoteOff
	}
	return e.encode(command, channel, note, velocity)
}

// EncodeControlChange builds a Control Change packet.
func (e *Encoder) EncodeControlChange(channel, controller, value uint8) []byte {
	return e.encode(contracts.ControlChange, channel, controller, value)
}

// Timestamp returns the timestamp the next packet will carry.
func (e *Encoder) Timestamp() uint16 {
	return e.ts.Peek()
}

func (e *Encoder) encode(command contracts.MIDICommand, channel, data1, data2 uint8) []byte {
	t := e.ts.Next()
	packet := make([]byte, PacketSize)
	packet[0] = msbMask | byte(t>>7)
	packet[1] = msbMask | byte(t&sevenBitMask)
	packet[2] = byte(command) | channel&channelMask
	packet[3] = data1 & sevenBitMask
	packet[4] = data2 & sevenBitMask
	return packet
}

// PacketTimestamp extracts the 13-bit timestamp of a packet. ok is false when
// the packet is too short or not framed.
func PacketTimestamp(packet []byte) (ts uint16, ok bool) {
	if !framed(packet) {
		return 0, false
	}
	return uint16(packet[0]&0x3F)<<7 | uint16(packet[1]&sevenBitMask), true
}

// Truncates reports whether encoding the given values masks any of them.
func Truncates(channel uint8, data ...uint8) bool {
	if channel > channelMask {
		return true
	}
	for _, d := range data {
		if d > sevenBitMask {
			return true
		}
	}
	return false
}

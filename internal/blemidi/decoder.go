package blemidi

import (
	"iter"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// groupSize is the size of a status, data1, data2 group.
const groupSize = 3

// Drop tells why part of an inbound packet produced no event.
type Drop struct {
	Kind   contracts.DiagnosticKind // MalformedPacket or UnknownStatus.
	Offset int                      // Offset of the rejected byte.
}

// Decode returns the channel voice events carried by one packet written by
// the central. Malformed packets and unsupported status bytes yield nothing;
// decoding never fails.
//
// Every message must carry its own status byte: running status is not
// supported, and neither are the per-message timestamp bytes of multi-event
// packets.
func Decode(packet []byte) iter.Seq[contracts.Event] {
	return DecodeReport(packet, nil)
}

// DecodeReport behaves like Decode and also calls onDrop, if non-nil, for
// every dropped packet or byte.
func DecodeReport(packet []byte, onDrop func(Drop)) iter.Seq[contracts.Event] {
	return func(yield func(contracts.Event) bool) {
		if !framed(packet) {
			if onDrop != nil {
				onDrop(Drop{Kind: contracts.MalformedPacket})
			}
			return
		}
		for n := 2; n+groupSize <= len(packet); {
			status := packet[n]
			command := contracts.MIDICommand(status & commandMask)
			switch command {
			case contracts.NoteOff, contracts.NoteOn, contracts.ControlChange:
			default:
				if onDrop != nil {
					onDrop(Drop{Kind: contracts.UnknownStatus, Offset: n})
				}
				n++
				continue
			}
			event := contracts.Event{
				Command: command,
				Channel: status & channelMask,
				Data1:   packet[n+1] & sevenBitMask,
				Data2:   packet[n+2] & sevenBitMask,
			}
			if !yield(event) {
				return
			}
			n += groupSize
		}
	}
}

// DecodeAll collects the events of Decode into a slice.
func DecodeAll(packet []byte) []contracts.Event {
	var events []contracts.Event
	for e := range Decode(packet) {
		events = append(events, e)
	}
	return events
}

// framed reports whether the header and timestamp bytes both carry bit 7.
func framed(packet []byte) bool {
	return len(packet) >= 2 && packet[0]&msbMask != 0 && packet[1]&msbMask != 0
}

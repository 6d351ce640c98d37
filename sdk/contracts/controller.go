package contracts

import "context"

// DiagnosticKind classifies a silently dropped input or output.
type DiagnosticKind int

const (
	// MalformedPacket is an inbound packet whose header or timestamp byte lacks bit 7.
	MalformedPacket DiagnosticKind = iota + 1
	// UnknownStatus is a byte group inside a well framed packet with an unsupported status.
	UnknownStatus
	// SendWhileDisconnected is an outbound event dropped because no central is connected.
	SendWhileDisconnected
	// ValueTruncated is an outbound value masked into its 4 or 7 bit range.
	ValueTruncated
)

func (k DiagnosticKind) String() string {
	switch k {
	case MalformedPacket:
		return "malformed packet"
	case UnknownStatus:
		return "unknown status"
	case SendWhileDisconnected:
		return "send while disconnected"
	case ValueTruncated:
		return "value truncated"
	}
	return "unknown"
}

// Diagnostic reports one dropped or altered MIDI datum. Reporting never
// changes what is sent or decoded.
type Diagnostic struct {
	Kind   DiagnosticKind
	Offset int    // Byte offset inside Packet, for inbound diagnostics.
	Packet []byte // Copy of the inbound packet, or the outbound payload; nil for SendWhileDisconnected.
}

// Controller runs the scan loop of a BLE-MIDI key matrix controller.
type Controller interface {
	Run(ctx context.Context) error // Advertises, then scans until ctx is cancelled.
	ScanOnce()                     // Performs a single scan cycle over every input.
	Octave() int                   // Returns the current octave offset.
	Close() error                  // Stops the transport and the event sink.
}

package contracts

// Transport is the BLE side of the controller: a single notify characteristic
// shared with at most one connected central.
//
// Implementations invoke write handlers and change the connection state from
// their own (interrupt or driver) context. Handlers must stay short.
type Transport interface {
	Connected() bool                // Reports whether a central is connected right now.
	Notify(payload []byte) error    // Sends one BLE-MIDI packet as a notification.
	OnWrite(handler func(p []byte)) // Registers the callback for packets written by the central.
	Advertise() error               // Starts (or restarts) advertising.
	Close() error                   // Stops advertising and releases the adapter.
}

// OutputLine is a digital output driven by the scanner (matrix row, status LED).
type OutputLine interface {
	Set(high bool)
}

// InputLine is a digital input with pull-up bias: Get returns true while the
// line is high, that is while the key wired to it is released.
type InputLine interface {
	Get() bool
}

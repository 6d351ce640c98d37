package transport

import (
	"sync"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// Recorder is an in-memory Transport. It keeps every notification and lets
// callers play the central: connect, disconnect and write packets.
type Recorder struct {
	ConnState

	mu         sync.Mutex
	sent       [][]byte
	handler    func([]byte)
	advertised int
	closed     bool
	notifyErr  error
}

var _ contracts.Transport = (*Recorder)(nil)

// NewRecorder returns a recorder, connected to a central named "recorder"
// when connected is true.
func NewRecorder(connected bool) *Recorder {
	r := &Recorder{}
	if connected {
		r.Connect("recorder")
	}
	return r
}

// Notify records a copy of payload.
func (r *Recorder) Notify(payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notifyErr != nil {
		return r.notifyErr
	}
	r.sent = append(r.sent, append([]byte(nil), payload...))
	return nil
}

// OnWrite registers the write handler.
func (r *Recorder) OnWrite(handler func(p []byte)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = handler
}

// Advertise counts advertising starts.
func (r *Recorder) Advertise() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advertised++
	return nil
}

// Close marks the recorder closed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Write delivers p to the registered handler as a central write would.
func (r *Recorder) Write(p []byte) {
	r.mu.Lock()
	handler := r.handler
	r.mu.Unlock()
	if handler != nil {
		handler(p)
	}
}

// Drop disconnects the central and restarts advertising, as the BLE
// peripheral does on disconnect.
func (r *Recorder) Drop() {
	r.Disconnect()
	_ = r.Advertise()
}

// FailNotify makes subsequent notifications return err.
func (r *Recorder) FailNotify(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifyErr = err
}

// Sent returns the recorded notifications.
func (r *Recorder) Sent() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.sent...)
}

// Advertised returns how many times advertising was started.
func (r *Recorder) Advertised() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advertised
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Package transport provides the BLE side of the controller: the connection
// state shared with the scan loop, the tinygo.org/x/bluetooth peripheral and
// an in-memory transport.
package transport

import (
	"sync/atomic"
)

// ConnState is the connection cell written by the BLE callbacks and read by
// the scan loop right before each notification. A stale read costs at most one
// dropped or one skipped notification.
type ConnState struct {
	connected atomic.Bool
	peer      atomic.Value // string
	sessions  atomic.Uint32
}

// Connect records a newly connected central.
func (s *ConnState) Connect(peer string) {
	s.peer.Store(peer)
	s.sessions.Add(1)
	s.connected.Store(true)
}

// Disconnect records the loss of the central.
func (s *ConnState) Disconnect() {
	s.connected.Store(false)
}

// Connected reports whether a central is connected.
func (s *ConnState) Connected() bool {
	return s.connected.Load()
}

// Peer returns the address of the last connected central.
func (s *ConnState) Peer() string {
	peer, _ := s.peer.Load().(string)
	return peer
}

// Sessions returns how many connections were accepted.
func (s *ConnState) Sessions() int {
	return int(s.sessions.Load())
}

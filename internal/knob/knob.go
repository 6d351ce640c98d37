// Package knob turns a relative position source, such as a quadrature rotary
// encoder, into an absolute 7-bit Control Change value.
package knob

import "github.com/leandrodaf/blemidi/sdk/contracts"

// MaxValue is the largest Control Change value.
const MaxValue = 127

// Knob tracks the value of one controller.
type Knob struct {
	reader     contracts.PositionReader
	controller uint8
	last       int
	value      int
}

// New returns a knob for controller starting at value initial. The current
// position of reader is taken as the reference.
func New(reader contracts.PositionReader, controller, initial uint8) *Knob {
	return &Knob{
		reader:     reader,
		controller: controller,
		last:       reader.Position(),
		value:      min(int(initial), MaxValue),
	}
}

// Poll reads the position and applies the movement since the last poll,
// clamped to [0, MaxValue]. changed is false when the value did not move.
func (k *Knob) Poll() (value uint8, changed bool) {
	pos := k.reader.Position()
	delta := pos - k.last
	k.last = pos
	if delta == 0 {
		return uint8(k.value), false
	}
	next := min(max(k.value+delta, 0), MaxValue)
	if next == k.value {
		return uint8(k.value), false
	}
	k.value = next
	return uint8(next), true
}

// Controller returns the controller number.
func (k *Knob) Controller() uint8 {
	return k.controller
}

// Value returns the current value.
func (k *Knob) Value() uint8 {
	return uint8(k.value)
}

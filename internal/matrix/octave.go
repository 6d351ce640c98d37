package matrix

import "sync/atomic"

// Octave offset bounds.
const (
	MinOctave = -5
	MaxOctave = 10
)

// Octave is the octave offset applied to every key. It is safe for
// concurrent use.
type Octave struct {
	value atomic.Int32
}

// Value returns the current offset.
func (o *Octave) Value() int {
	return int(o.value.Load())
}

// Shift moves the offset by delta, clamped to [MinOctave, MaxOctave], and
// returns the new offset.
func (o *Octave) Shift(delta int) int {
	for {
		old := o.value.Load()
		next := min(max(int(old)+delta, MinOctave), MaxOctave)
		if o.value.CompareAndSwap(old, int32(next)) {
			return next
		}
	}
}

// Up raises the offset by one octave.
func (o *Octave) Up() int { return o.Shift(1) }

// Down lowers the offset by one octave.
func (o *Octave) Down() int { return o.Shift(-1) }

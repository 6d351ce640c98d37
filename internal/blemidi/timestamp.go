package blemidi

// TimestampMask keeps a timestamp inside its 13 bits.
const TimestampMask = 0x1FFF

// Timestamp is the 13-bit rolling counter stamped on outgoing packets. It is
// advanced once per emitted event, not per clock tick. Not safe for
// concurrent use.
type Timestamp struct {
	value uint16
}

// Next returns the current value and advances the counter, wrapping at 8192.
func (t *Timestamp) Next() uint16 {
	v := t.value
	t.value = (t.value + 1) & TimestampMask
	return v
}

// Peek returns the value the next call to Next will return.
func (t *Timestamp) Peek() uint16 {
	return t.value
}

// Package matrix scans key matrices wired with pull-up columns: a row is
// active while driven low, and a column reads low while the key joining it to
// the active row is held down.
package matrix

import "github.com/leandrodaf/blemidi/sdk/contracts"

// SemitonesPerOctave is the note distance between two adjacent rows.
const SemitonesPerOctave = 12

// Edge is one key transition observed by a scan.
type Edge struct {
	Row     int
	Col     int
	Pressed bool
}

// KeyMatrix holds the last sampled level of every key. A key is reported
// exactly once per change: when a sample differs from the stored level the
// level is replaced and an Edge is emitted. There is no other debouncing.
type KeyMatrix struct {
	rows  []contracts.OutputLine
	cols  []contracts.InputLine
	state [][]bool // true while released
}

// NewKeyMatrix drives every row inactive and starts with every key released.
func NewKeyMatrix(rows []contracts.OutputLine, cols []contracts.InputLine) *KeyMatrix {
	state := make([][]bool, len(rows))
	for r := range state {
		state[r] = make([]bool, len(cols))
		for c := range state[r] {
			state[r][c] = true
		}
	}
	for _, row := range rows {
		row.Set(true)
	}
	return &KeyMatrix{rows: rows, cols: cols, state: state}
}

// Scan performs one scan cycle and calls fn for every transition, row by row
// then column by column. Only the row being sampled is driven low.
func (m *KeyMatrix) Scan(fn func(Edge)) {
	for r, row := range m.rows {
		row.Set(false)
		for c, col := range m.cols {
			released := col.Get()
			if released == m.state[r][c] {
				continue
			}
			m.state[r][c] = released
			fn(Edge{Row: r, Col: c, Pressed: !released})
		}
		row.Set(true)
	}
}

// Pressed reports the stored state of the key at row r, column c.
func (m *KeyMatrix) Pressed(r, c int) bool {
	return !m.state[r][c]
}

// Size returns the number of rows and columns.
func (m *KeyMatrix) Size() (rows, cols int) {
	return len(m.rows), len(m.cols)
}

// Note maps a key to a MIDI note: each row is one octave above the previous,
// each column one semitone above its left neighbour. The result is not
// clamped to the MIDI range.
func Note(base uint8, row, col, octave int) int {
	return int(base) + (row+octave)*SemitonesPerOctave + col
}

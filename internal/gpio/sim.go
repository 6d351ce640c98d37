// Package gpio adapts digital lines to the controller. The simulated lines in
// this file model a pull-up key matrix and are used by tests and host demos.
package gpio

import (
	"sync"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// Line is a simulated line usable both as an output and as a pull-up input.
// The zero value reads low; use NewLine for a released input.
type Line struct {
	mu      sync.Mutex
	high    bool
	toggles int
}

// NewLine returns a line at the given level.
func NewLine(high bool) *Line {
	return &Line{high: high}
}

// Set drives the line.
func (l *Line) Set(high bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.high != high {
		l.toggles++
	}
	l.high = high
}

// Get samples the line.
func (l *Line) Get() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.high
}

// Toggles returns how many times the level changed through Set.
func (l *Line) Toggles() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.toggles
}

// SimMatrix simulates a diode key matrix with pull-up columns: a column reads
// low while any row driven low has a pressed key on that column.
type SimMatrix struct {
	mu        sync.Mutex
	rowLow    []bool
	pressed   [][]bool
	maxActive int
	samples   int
}

// NewSimMatrix returns a matrix with every row inactive and every key released.
func NewSimMatrix(rows, cols int) *SimMatrix {
	pressed := make([][]bool, rows)
	for r := range pressed {
		pressed[r] = make([]bool, cols)
	}
	return &SimMatrix{rowLow: make([]bool, rows), pressed: pressed}
}

// Press holds the key at row r, column c down.
func (s *SimMatrix) Press(r, c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed[r][c] = true
}

// Release lets the key at row r, column c go.
func (s *SimMatrix) Release(r, c int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed[r][c] = false
}

// Rows returns one output line per row.
func (s *SimMatrix) Rows() []contracts.OutputLine {
	lines := make([]contracts.OutputLine, len(s.rowLow))
	for r := range lines {
		lines[r] = simRow{s, r}
	}
	return lines
}

// Cols returns one input line per column.
func (s *SimMatrix) Cols() []contracts.InputLine {
	lines := make([]contracts.InputLine, len(s.pressed[0]))
	for c := range lines {
		lines[c] = simCol{s, c}
	}
	return lines
}

// MaxActiveRows returns the largest number of rows seen driven low at once.
func (s *SimMatrix) MaxActiveRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxActive
}

// ActiveRows returns the number of rows currently driven low.
func (s *SimMatrix) ActiveRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

// Samples returns how many column reads were performed.
func (s *SimMatrix) Samples() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples
}

func (s *SimMatrix) activeLocked() int {
	n := 0
	for _, low := range s.rowLow {
		if low {
			n++
		}
	}
	return n
}

type simRow struct {
	m   *SimMatrix
	row int
}

func (r simRow) Set(high bool) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.rowLow[r.row] = !high
	r.m.maxActive = max(r.m.maxActive, r.m.activeLocked())
}

type simCol struct {
	m   *SimMatrix
	col int
}

func (c simCol) Get() bool {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.samples++
	for r, low := range c.m.rowLow {
		if low && c.m.pressed[r][c.col] {
			return false
		}
	}
	return true
}

package matrix

import "github.com/leandrodaf/blemidi/sdk/contracts"

// Function button indexes with a fixed binding.
const (
	OctaveDownButton = 6
	OctaveUpButton   = 7

	// FunctionButtons is the number of entries of the default action table.
	FunctionButtons = 8
)

// Action is the capability bound to a function button.
type Action func()

// FunctionMatrix is a single-row matrix whose presses dispatch actions by
// column index. Releases update the stored state and dispatch nothing.
type FunctionMatrix struct {
	row     contracts.OutputLine
	cols    []contracts.InputLine
	state   []bool // true while released
	actions []Action
}

// NewFunctionMatrix builds a function matrix. row may be nil when the buttons
// are wired straight to ground. actions[i] is dispatched when column i is
// pressed; missing or nil entries are inert.
func NewFunctionMatrix(row contracts.OutputLine, cols []contracts.InputLine, actions []Action) *FunctionMatrix {
	state := make([]bool, len(cols))
	for i := range state {
		state[i] = true
	}
	if row != nil {
		row.Set(true)
	}
	return &FunctionMatrix{row: row, cols: cols, state: state, actions: actions}
}

// Scan performs one scan cycle and dispatches the action of every newly
// pressed button.
func (m *FunctionMatrix) Scan() {
	if m.row != nil {
		m.row.Set(false)
		defer m.row.Set(true)
	}
	for i, col := range m.cols {
		released := col.Get()
		if released == m.state[i] {
			continue
		}
		m.state[i] = released
		if !released {
			m.dispatch(i)
		}
	}
}

// Pressed reports the stored state of button i.
func (m *FunctionMatrix) Pressed(i int) bool {
	return !m.state[i]
}

func (m *FunctionMatrix) dispatch(i int) {
	if i >= len(m.actions) || m.actions[i] == nil {
		return
	}
	m.actions[i]()
}

// DefaultActions returns the standard table: buttons 0 to 5 call placeholder
// with their index, button 6 lowers the octave and button 7 raises it.
func DefaultActions(octave *Octave, placeholder func(index int), onOctave func(offset int)) []Action {
	actions := make([]Action, FunctionButtons)
	for i := 0; i < OctaveDownButton; i++ {
		index := i
		actions[i] = func() {
			if placeholder != nil {
				placeholder(index)
			}
		}
	}
	actions[OctaveDownButton] = func() {
		offset := octave.Down()
		if onOctave != nil {
			onOctave(offset)
		}
	}
	actions[OctaveUpButton] = func() {
		offset := octave.Up()
		if onOctave != nil {
			onOctave(offset)
		}
	}
	return actions
}

package matrix

import (
	"testing"

	"github.com/leandrodaf/blemidi/internal/gpio"
	"github.com/leandrodaf/blemidi/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttons(n int) ([]*gpio.Line, []contracts.InputLine) {
	lines := make([]*gpio.Line, n)
	inputs := make([]contracts.InputLine, n)
	for i := range lines {
		lines[i] = gpio.NewLine(true)
		inputs[i] = lines[i]
	}
	return lines, inputs
}

func TestFunctionMatrixDispatchesOnPressOnly(t *testing.T) {
	sim := gpio.NewSimMatrix(1, 3)
	var fired []int
	actions := []Action{
		func() { fired = append(fired, 0) },
		func() { fired = append(fired, 1) },
		nil,
	}
	m := NewFunctionMatrix(sim.Rows()[0], sim.Cols(), actions)

	sim.Press(0, 1)
	m.Scan()
	m.Scan()
	assert.Equal(t, []int{1}, fired)
	assert.True(t, m.Pressed(1))

	sim.Release(0, 1)
	m.Scan()
	assert.Equal(t, []int{1}, fired, "release dispatches nothing")
	assert.False(t, m.Pressed(1))

	sim.Press(0, 2)
	assert.NotPanics(t, m.Scan)
	assert.Zero(t, sim.ActiveRows())
}

func TestFunctionMatrixWithoutRow(t *testing.T) {
	lines, inputs := buttons(10)
	octave := &Octave{}
	var placeholders []int
	m := NewFunctionMatrix(nil, inputs, DefaultActions(octave, func(i int) { placeholders = append(placeholders, i) }, nil))

	for i := 0; i < 6; i++ {
		lines[i].Set(false)
	}
	lines[9].Set(false) // beyond the action table
	m.Scan()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, placeholders)
	assert.Zero(t, octave.Value())
}

func TestOctaveButtonsClamp(t *testing.T) {
	lines, inputs := buttons(FunctionButtons)
	octave := &Octave{}
	var reported []int
	m := NewFunctionMatrix(nil, inputs, DefaultActions(octave, nil, func(o int) { reported = append(reported, o) }))

	press := func(i int) {
		lines[i].Set(false)
		m.Scan()
		lines[i].Set(true)
		m.Scan()
	}

	for i := 0; i < 20; i++ {
		press(OctaveUpButton)
		require.LessOrEqual(t, octave.Value(), MaxOctave)
	}
	assert.Equal(t, MaxOctave, octave.Value())

	for i := 0; i < 30; i++ {
		press(OctaveDownButton)
		require.GreaterOrEqual(t, octave.Value(), MinOctave)
	}
	assert.Equal(t, MinOctave, octave.Value())
	assert.Len(t, reported, 50)
	assert.Equal(t, 1, reported[0])
}

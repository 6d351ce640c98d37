package matrix

import (
	"testing"

	"github.com/leandrodaf/blemidi/internal/gpio"
	"github.com/stretchr/testify/assert"
)

func collect(m *KeyMatrix) []Edge {
	var edges []Edge
	m.Scan(func(e Edge) { edges = append(edges, e) })
	return edges
}

func TestKeyMatrixPressAndRelease(t *testing.T) {
	sim := gpio.NewSimMatrix(2, 12)
	m := NewKeyMatrix(sim.Rows(), sim.Cols())

	assert.Empty(t, collect(m))

	sim.Press(1, 4)
	assert.Equal(t, []Edge{{Row: 1, Col: 4, Pressed: true}}, collect(m))
	assert.True(t, m.Pressed(1, 4))

	sim.Release(1, 4)
	assert.Equal(t, []Edge{{Row: 1, Col: 4, Pressed: false}}, collect(m))
	assert.False(t, m.Pressed(1, 4))
}

func TestKeyMatrixStableLevelsFireOnce(t *testing.T) {
	sim := gpio.NewSimMatrix(2, 12)
	m := NewKeyMatrix(sim.Rows(), sim.Cols())

	sim.Press(0, 0)
	sim.Press(1, 11)
	assert.Len(t, collect(m), 2)
	for i := 0; i < 50; i++ {
		assert.Empty(t, collect(m))
	}
}

func TestKeyMatrixDrivesOneRowAtATime(t *testing.T) {
	sim := gpio.NewSimMatrix(3, 4)
	m := NewKeyMatrix(sim.Rows(), sim.Cols())
	sim.Press(0, 1)
	sim.Press(2, 1)

	edges := collect(m)
	assert.Equal(t, []Edge{{Row: 0, Col: 1, Pressed: true}, {Row: 2, Col: 1, Pressed: true}}, edges)
	assert.Equal(t, 1, sim.MaxActiveRows())
	assert.Zero(t, sim.ActiveRows(), "rows are restored high after the cycle")
	assert.Equal(t, 12, sim.Samples())
}

func TestKeyMatrixSize(t *testing.T) {
	sim := gpio.NewSimMatrix(2, 12)
	rows, cols := NewKeyMatrix(sim.Rows(), sim.Cols()).Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 12, cols)
}

func TestNote(t *testing.T) {
	assert.Equal(t, 60, Note(60, 0, 0, 0))
	assert.Equal(t, 72, Note(60, 1, 0, 0))
	assert.Equal(t, 83, Note(60, 1, 11, 0))
	assert.Equal(t, 48, Note(60, 0, 0, -1))
	assert.Equal(t, 0, Note(60, 0, 0, -5))
	assert.Equal(t, 192, Note(60, 1, 0, 10))
}

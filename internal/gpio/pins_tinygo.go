//go:build tinygo

package gpio

import (
	"machine"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// Outputs configures pins as outputs driven high (inactive rows).
func Outputs(pins ...machine.Pin) []contracts.OutputLine {
	lines := make([]contracts.OutputLine, len(pins))
	for i, p := range pins {
		lines[i] = Output(p)
	}
	return lines
}

// Output configures one pin as an output driven high.
func Output(p machine.Pin) contracts.OutputLine {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.High()
	return p
}

// PullUps configures pins as inputs with pull-up bias.
func PullUps(pins ...machine.Pin) []contracts.InputLine {
	lines := make([]contracts.InputLine, len(pins))
	for i, p := range pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		lines[i] = p
	}
	return lines
}

// PinRange returns the pins numbered first to last inclusive.
func PinRange(first, last machine.Pin) []machine.Pin {
	pins := make([]machine.Pin, 0, int(last-first)+1)
	for p := first; p <= last; p++ {
		pins = append(pins, p)
	}
	return pins
}

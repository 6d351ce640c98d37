//go:build tinygo

package knob

import (
	"machine"

	"github.com/leandrodaf/blemidi/sdk/contracts"
	"tinygo.org/x/drivers/encoders"
)

// NewQuadrature configures a rotary encoder read through pin interrupts.
func NewQuadrature(a, b machine.Pin) contracts.PositionReader {
	enc := encoders.NewQuadratureViaInterrupt(a, b)
	enc.Configure(encoders.QuadratureConfig{
		Precision: 4,
	})
	return enc
}

//go:build !darwin
// +build !darwin

package mididarwin

import (
	"fmt"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// NewMIDISink logs a warning and fails: CoreMIDI only exists on macOS.
func NewMIDISink(options *contracts.ControllerOptions) (contracts.EventSink, error) {
	options.Logger.Warn("CoreMIDI sink requested on non-macOS system")
	return nil, fmt.Errorf("CoreMIDI functionality is not available on this platform")
}

//go:build !windows
// +build !windows

package midiwindows

import (
	"fmt"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// NewMIDISink logs a warning and fails: winmm only exists on Windows.
func NewMIDISink(options *contracts.ControllerOptions) (contracts.EventSink, error) {
	options.Logger.Warn("winmm sink requested on non-Windows system")
	return nil, fmt.Errorf("winmm functionality is not available on this platform")
}

// Package blemidi is the entry point of the SDK: it builds a BLE-MIDI key
// matrix controller from functional options.
package blemidi

import (
	"github.com/leandrodaf/blemidi/internal/controller"
	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// NewController creates a new controller with the specified options.
// It applies default options and initializes the controller.
//
// opts ...contracts.Option: A variadic list of option functions to customize the controller configuration.
//
// Returns:
//   - contracts.Controller: An instance of the controller.
//   - error: An error, if any occurred during the creation of the controller.
func NewController(opts ...contracts.Option) (contracts.Controller, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	c, err := controller.New(&options)
	if err != nil {
		return nil, err
	}

	return c, nil
}

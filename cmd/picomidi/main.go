//go:build tinygo

// Command picomidi is the firmware of a Raspberry Pi Pico W BLE-MIDI
// controller: a 2x12 key matrix, eight function buttons and one knob.
package main

import (
	"context"
	"machine"

	"github.com/leandrodaf/blemidi/internal/gpio"
	"github.com/leandrodaf/blemidi/internal/knob"
	"github.com/leandrodaf/blemidi/internal/logger"
	"github.com/leandrodaf/blemidi/sdk/blemidi"
	"github.com/leandrodaf/blemidi/sdk/contracts"
)

const (
	deviceName      = "PicoMIDI"
	modulationWheel = 1 // Controller number sent by the knob.
)

func main() {
	log := logger.NewDefault()

	base := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithAdvertisement(contracts.AdvertisementInfo{LocalName: deviceName}),
	}

	bt, err := blemidi.NewBluetoothTransport(base...)
	if err != nil {
		log.Fatal("Failed to start BLE", log.Field().Error("error", err))
	}

	rows := gpio.Outputs(machine.GPIO0, machine.GPIO1)
	cols := gpio.PullUps(gpio.PinRange(machine.GPIO10, machine.GPIO21)...)
	functions := gpio.PullUps(gpio.PinRange(machine.GPIO2, machine.GPIO9)...)

	c, err := blemidi.NewController(append(base,
		contracts.WithTransport(bt),
		contracts.WithKeyMatrix(rows, cols),
		contracts.WithFunctionMatrix(nil, functions),
		contracts.WithKnob(knob.NewQuadrature(machine.GPIO26, machine.GPIO27), modulationWheel),
		contracts.WithHeartbeat(gpio.Output(machine.LED)),
	)...)
	if err != nil {
		log.Fatal("Failed to create controller", log.Field().Error("error", err))
	}

	if err := c.Run(context.Background()); err != nil {
		log.Fatal("Scan loop failed", log.Field().Error("error", err))
	}
}

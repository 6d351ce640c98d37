package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/leandrodaf/blemidi/internal/gpio"
	"github.com/leandrodaf/blemidi/internal/logger"
	"github.com/leandrodaf/blemidi/internal/transport"
	"github.com/leandrodaf/blemidi/sdk/blemidi"
	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// scale is a C major scale on the first row of the simulated keyboard.
var scale = []int{0, 2, 4, 5, 7, 9, 11}

func main() {
	log := logger.NewStandardLogger()
	log.SetLevel(contracts.DebugLevel)

	var link contracts.Transport
	bt, err := blemidi.NewBluetoothTransport(
		contracts.WithLogger(log),
		contracts.WithAdvertisement(contracts.AdvertisementInfo{LocalName: "BLE MIDI Demo", Interval: time.Second}),
	)
	if err != nil {
		log.Warn("BLE peripheral unavailable; using an in-memory transport", log.Field().Error("error", err))
		link = transport.NewRecorder(true)
	} else {
		link = bt
	}

	keys := gpio.NewSimMatrix(2, 12)
	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithTransport(link),
		contracts.WithKeyMatrix(keys.Rows(), keys.Cols()),
	}

	sink, err := blemidi.NewEventSink(contracts.WithLogger(log))
	if err != nil {
		log.Warn("No host MIDI port; inbound events are only logged", log.Field().Error("error", err))
	} else {
		opts = append(opts,
			contracts.WithEventSink(sink),
			contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
				Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
			}))
	}

	controller, err := blemidi.NewController(opts...)
	if err != nil {
		log.Error("Failed to create controller", log.Field().Error("error", err))
		return
	}
	defer controller.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go play(ctx, keys)

	log.Info("Playing a C major scale... Press Ctrl+C to exit.")
	if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Controller stopped", log.Field().Error("error", err))
	}
}

// play presses and releases the keys of the scale in a loop.
func play(ctx context.Context, keys *gpio.SimMatrix) {
	for {
		for _, col := range scale {
			keys.Press(0, col)
			if !sleep(ctx, 300*time.Millisecond) {
				keys.Release(0, col)
				return
			}
			keys.Release(0, col)
			if !sleep(ctx, 100*time.Millisecond) {
				return
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

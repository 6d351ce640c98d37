//go:build !tinygo && !linux

package transport

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// Bluetooth is unavailable on this platform.
type Bluetooth struct {
	ConnState
}

// NewBluetooth logs a warning and returns ErrUnsupportedPlatform.
func NewBluetooth(info contracts.AdvertisementInfo, logger contracts.Logger) (*Bluetooth, error) {
	logger.Warn("NewBluetooth called on a platform without BLE peripheral support",
		logger.Field().String("os", runtime.GOOS))
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}

// Notify returns ErrUnsupportedPlatform.
func (b *Bluetooth) Notify(payload []byte) error { return ErrUnsupportedPlatform }

// OnWrite does nothing.
func (b *Bluetooth) OnWrite(handler func(p []byte)) {}

// Advertise returns ErrUnsupportedPlatform.
func (b *Bluetooth) Advertise() error { return ErrUnsupportedPlatform }

// Close does nothing.
func (b *Bluetooth) Close() error { return nil }

package blemidi

import (
	"github.com/leandrodaf/blemidi/internal/transport"
	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// bluetoothInitializer opens the BLE-MIDI peripheral.
var bluetoothInitializer = func(info contracts.AdvertisementInfo, log contracts.Logger) (contracts.Transport, error) {
	bt, err := transport.NewBluetooth(info, log)
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// NewBluetoothTransport opens the BLE-MIDI peripheral advertising as set by
// contracts.WithAdvertisement, for use with contracts.WithTransport.
//
// Returns transport.ErrUnsupportedPlatform on platforms without a BLE
// peripheral implementation.
func NewBluetoothTransport(opts ...contracts.Option) (contracts.Transport, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return bluetoothInitializer(options.Advertisement, options.Logger)
}

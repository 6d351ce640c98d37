package transport

import "errors"

// Error definitions for the BLE peripheral.
var (
	ErrUnsupportedPlatform = errors.New("BLE peripheral is not available on this platform")
	ErrInvalidUUID         = errors.New("invalid UUID")
	ErrEnableAdapter       = errors.New("error enabling BLE adapter")
	ErrRegisterService     = errors.New("error registering BLE-MIDI service")
	ErrAdvertise           = errors.New("error advertising")
	ErrNotify              = errors.New("error sending notification")
)

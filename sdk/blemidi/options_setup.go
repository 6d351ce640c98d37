package blemidi

import (
	"errors"
	"time"

	"github.com/leandrodaf/blemidi/internal/logger"
	"github.com/leandrodaf/blemidi/sdk/contracts"
)

// Default settings, matching the PicoMIDI board firmware.
const (
	DefaultVelocity     = 100
	DefaultBaseNote     = 60
	DefaultScanInterval = 10 * time.Millisecond
)

// ErrInvalidChannel is returned when the configured MIDI channel is above 15.
var ErrInvalidChannel = errors.New("MIDI channel must be between 0 and 15")

// applyDefaultOptions sets default values for ControllerOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ControllerOptions.
//
// Returns:
//   - contracts.ControllerOptions: A structure containing the finalized options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ControllerOptions, error) {
	options := &contracts.ControllerOptions{
		LogLevel:     contracts.InfoLevel,
		Velocity:     DefaultVelocity,
		BaseNote:     DefaultBaseNote,
		ScanInterval: DefaultScanInterval,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Channel > 15 {
		return contracts.ControllerOptions{}, ErrInvalidChannel
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewDefault()
	}
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	options.Advertisement = withAdvertisementDefaults(options.Advertisement)
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "BLE MIDI Bridge", SourceName: "PicoMIDI"}
	}

	if options.WinMMConfig == nil {
		options.WinMMConfig = &contracts.WinMMConfig{}
	}

	options.Logger.SetLevel(options.LogLevel) // Set the logger to the specified log level
	return *options, nil
}

// withAdvertisementDefaults fills every empty field of info from
// contracts.DefaultAdvertisement.
func withAdvertisementDefaults(info contracts.AdvertisementInfo) contracts.AdvertisementInfo {
	defaults := contracts.DefaultAdvertisement()
	if info.LocalName == "" {
		info.LocalName = defaults.LocalName
	}
	if info.ServiceUUID == "" {
		info.ServiceUUID = defaults.ServiceUUID
	}
	if info.CharacteristicUUID == "" {
		info.CharacteristicUUID = defaults.CharacteristicUUID
	}
	if info.Interval <= 0 {
		info.Interval = defaults.Interval
	}
	return info
}

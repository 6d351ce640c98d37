package contracts

import "time"

// Standard BLE-MIDI GATT identifiers.
const (
	MIDIServiceUUID        = "03B80E5A-EDE8-4B33-A751-6CE34EC4C700"
	MIDICharacteristicUUID = "7772E5DB-3868-4112-A1A9-F2669D106BF3"
)

// AdvertisementInfo describes how the controller presents itself to centrals.
type AdvertisementInfo struct {
	LocalName          string        // Name shown by the central while scanning.
	ServiceUUID        string        // Advertised service, the BLE-MIDI service by default.
	CharacteristicUUID string        // MIDI I/O characteristic.
	Interval           time.Duration // Advertising interval, also used when re-advertising after a disconnect.
}

// DefaultAdvertisement is the advertisement used when none is configured.
func DefaultAdvertisement() AdvertisementInfo {
	return AdvertisementInfo{
		LocalName:          "PicoMIDI",
		ServiceUUID:        MIDIServiceUUID,
		CharacteristicUUID: MIDICharacteristicUUID,
		Interval:           500 * time.Millisecond,
	}
}

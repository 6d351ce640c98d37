//go:build tinygo || linux

package transport

import (
	"fmt"
	"sync/atomic"

	"github.com/leandrodaf/blemidi/sdk/contracts"
	"tinygo.org/x/bluetooth"
)

// Bluetooth is a BLE-MIDI peripheral on top of tinygo.org/x/bluetooth: one
// service with one read/notify/write characteristic.
type Bluetooth struct {
	ConnState

	adapter *bluetooth.Adapter
	adv     advertiser
	char    bluetooth.Characteristic
	info    contracts.AdvertisementInfo
	logger  contracts.Logger
	onWrite atomic.Value // func([]byte)
}

var _ contracts.Transport = (*Bluetooth)(nil)

// advertiser is the part of *bluetooth.Advertisement the peripheral drives.
type advertiser interface {
	Configure(options bluetooth.AdvertisementOptions) error
	Start() error
	Stop() error
}

// NewBluetooth enables the default adapter, registers the MIDI service and
// configures advertising. Advertising starts with Advertise.
func NewBluetooth(info contracts.AdvertisementInfo, logger contracts.Logger) (*Bluetooth, error) {
	serviceUUID, err := bluetooth.ParseUUID(info.ServiceUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: service %q: %v", ErrInvalidUUID, info.ServiceUUID, err)
	}
	charUUID, err := bluetooth.ParseUUID(info.CharacteristicUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: characteristic %q: %v", ErrInvalidUUID, info.CharacteristicUUID, err)
	}

	b := &Bluetooth{
		adapter: bluetooth.DefaultAdapter,
		info:    info,
		logger:  logger,
	}
	if err := b.adapter.Enable(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnableAdapter, err)
	}
	b.adapter.SetConnectHandler(b.handleConnect)

	b.adv = b.adapter.DefaultAdvertisement()
	if err := b.configureAdvertisement(serviceUUID); err != nil {
		return nil, err
	}

	if err := b.adapter.AddService(&bluetooth.Service{
		UUID: serviceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &b.char,
				UUID:   charUUID,
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicNotifyPermission |
					bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: b.handleWrite,
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegisterService, err)
	}

	logger.Info("BLE-MIDI service registered",
		logger.Field().String("name", info.LocalName),
		logger.Field().String("service", info.ServiceUUID))
	return b, nil
}

// configureAdvertisement applies the configured name and interval.
func (b *Bluetooth) configureAdvertisement(serviceUUID bluetooth.UUID) error {
	if err := b.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    b.info.LocalName,
		ServiceUUIDs: []bluetooth.UUID{serviceUUID},
		Interval:     bluetooth.NewDuration(b.info.Interval),
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrAdvertise, err)
	}
	return nil
}

// Notify sends payload as a notification of the MIDI characteristic.
func (b *Bluetooth) Notify(payload []byte) error {
	if _, err := b.char.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}

// OnWrite registers the handler for packets written by the central.
func (b *Bluetooth) OnWrite(handler func(p []byte)) {
	b.onWrite.Store(handler)
}

// Advertise starts advertising.
func (b *Bluetooth) Advertise() error {
	if err := b.adv.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrAdvertise, err)
	}
	b.logger.Info("Advertising",
		b.logger.Field().String("name", b.info.LocalName),
		b.logger.Field().Int64("intervalMs", b.info.Interval.Milliseconds()))
	return nil
}

// Close stops advertising.
func (b *Bluetooth) Close() error {
	if err := b.adv.Stop(); err != nil {
		return fmt.Errorf("%w: %v", ErrAdvertise, err)
	}
	return nil
}

func (b *Bluetooth) handleConnect(device bluetooth.Device, connected bool) {
	b.connectionChanged(device.Address.String(), connected)
}

// connectionChanged runs in the BLE stack context: record, log, and
// re-advertise on disconnect.
func (b *Bluetooth) connectionChanged(peer string, connected bool) {
	if connected {
		b.Connect(peer)
		b.logger.Info("Central connected", b.logger.Field().String("peer", peer))
		return
	}
	b.Disconnect()
	b.logger.Info("Central disconnected", b.logger.Field().String("peer", peer))
	if err := b.Advertise(); err != nil {
		b.logger.Error("Failed to restart advertising", b.logger.Field().Error("error", err))
	}
}

func (b *Bluetooth) handleWrite(client bluetooth.Connection, offset int, value []byte) {
	handler, _ := b.onWrite.Load().(func([]byte))
	if handler == nil {
		return
	}
	handler(value)
}

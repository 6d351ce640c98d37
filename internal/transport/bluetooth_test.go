//go:build linux && !tinygo

package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/leandrodaf/blemidi/internal/logger"
	"github.com/leandrodaf/blemidi/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"tinygo.org/x/bluetooth"
)

type fakeAdvertiser struct {
	options  bluetooth.AdvertisementOptions
	starts   int
	stops    int
	startErr error
}

func (f *fakeAdvertiser) Configure(options bluetooth.AdvertisementOptions) error {
	f.options = options
	return nil
}

func (f *fakeAdvertiser) Start() error {
	f.starts++
	return f.startErr
}

func (f *fakeAdvertiser) Stop() error {
	f.stops++
	return nil
}

func newTestBluetooth(info contracts.AdvertisementInfo) (*Bluetooth, *fakeAdvertiser, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	adv := &fakeAdvertiser{}
	return &Bluetooth{adv: adv, info: info, logger: logger.Wrap(zap.New(core))}, adv, logs
}

func TestBluetoothAdvertisesConfiguredNameAndInterval(t *testing.T) {
	info := contracts.DefaultAdvertisement()
	info.LocalName = "Keys"
	info.Interval = time.Second
	b, adv, _ := newTestBluetooth(info)

	serviceUUID, err := bluetooth.ParseUUID(info.ServiceUUID)
	require.NoError(t, err)
	require.NoError(t, b.configureAdvertisement(serviceUUID))

	assert.Equal(t, "Keys", adv.options.LocalName)
	assert.Equal(t, bluetooth.NewDuration(time.Second), adv.options.Interval)
	assert.Equal(t, []bluetooth.UUID{serviceUUID}, adv.options.ServiceUUIDs)
}

func TestBluetoothReadvertisesOnDisconnect(t *testing.T) {
	b, adv, logs := newTestBluetooth(contracts.DefaultAdvertisement())

	b.connectionChanged("AA:BB", true)
	assert.True(t, b.Connected())
	assert.Equal(t, "AA:BB", b.Peer())
	assert.Zero(t, adv.starts)

	b.connectionChanged("AA:BB", false)
	assert.False(t, b.Connected())
	assert.Equal(t, 1, adv.starts)
	assert.Equal(t, 1, logs.FilterMessage("Central disconnected").Len())
	assert.Equal(t, 1, logs.FilterMessage("Advertising").Len())
}

func TestBluetoothReadvertiseFailureIsLogged(t *testing.T) {
	b, adv, logs := newTestBluetooth(contracts.DefaultAdvertisement())
	adv.startErr = errors.New("busy")

	b.connectionChanged("AA:BB", true)
	b.connectionChanged("AA:BB", false)

	assert.Equal(t, 1, logs.FilterMessage("Failed to restart advertising").Len())
}

func TestBluetoothCloseStopsAdvertising(t *testing.T) {
	b, adv, _ := newTestBluetooth(contracts.DefaultAdvertisement())
	require.NoError(t, b.Close())
	assert.Equal(t, 1, adv.stops)
}

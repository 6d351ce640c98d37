//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/blemidi/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIOUT windows.Handle

// CALLBACK_NULL opens the device without completion callbacks.
const CALLBACK_NULL = 0x00000000

// Error definitions for winmm forwarding.
var (
	ErrNoMIDIDevices = errors.New("no MIDI output devices found")
	ErrOpenDevice    = errors.New("error opening MIDI output device")
	ErrSinkClosed    = errors.New("MIDI sink is closed")
)

// Struct representing MIDI output device capabilities
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// SinkMid forwards decoded BLE-MIDI events to a winmm output device.
type SinkMid struct {
	logger contracts.Logger
	handle HMIDIOUT
	name   string
	mu     sync.Mutex
	closed bool
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutReset      = winmm.NewProc("midiOutReset")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

// NewMIDISink opens the output device named in options.WinMMConfig, or the
// first device when the name is empty or unknown.
func NewMIDISink(options *contracts.ControllerOptions) (contracts.EventSink, error) {
	names, err := listDevices()
	if err != nil {
		options.Logger.Warn(err.Error())
		return nil, err
	}

	deviceID := 0
	for i, name := range names {
		if name == options.WinMMConfig.DeviceName {
			deviceID = i
			break
		}
	}

	m := &SinkMid{logger: options.Logger, name: names[deviceID]}
	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		0,
		0,
		CALLBACK_NULL,
	)
	if r1 != 0 {
		options.Logger.Error(fmt.Sprintf("Failed to open MIDI output device %d: %v", deviceID, err))
		return nil, fmt.Errorf("%w %d: %v", ErrOpenDevice, deviceID, err)
	}

	options.Logger.Info("MIDI output device opened",
		options.Logger.Field().Int("deviceID", deviceID),
		options.Logger.Field().String("deviceName", m.name))
	return m, nil
}

// listDevices returns the names of the available MIDI output devices.
func listDevices() ([]string, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		return nil, ErrNoMIDIDevices
	}

	names := make([]string, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			continue
		}
		names[i] = windows.UTF16ToString(caps.szPname[:])
	}
	return names, nil
}

// Send writes the event as a short message: status in the low byte, then
// data1 and data2.
func (m *SinkMid) Send(event contracts.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrSinkClosed
	}

	msg := event.Message()
	packed := uint32(msg[0]) | uint32(msg[1])<<8 | uint32(msg[2])<<16
	r1, _, err := procMidiOutShortMsg.Call(uintptr(m.handle), uintptr(packed))
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to send MIDI message 0x%06X: %v", packed, err))
		return fmt.Errorf("send %s: %v", event, err)
	}
	return nil
}

// Close silences the device and releases it.
func (m *SinkMid) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	procMidiOutReset.Call(uintptr(m.handle))
	r1, _, err := procMidiOutClose.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error(fmt.Sprintf("Failed to close MIDI output device: %v", err))
		return err
	}
	m.logger.Info("MIDI output device closed", m.logger.Field().String("deviceName", m.name))
	return nil
}

package contracts

import "time"

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
	SourceName string // Name of the virtual source decoded events are published on.
}

// WinMMConfig selects the Windows MIDI output device.
type WinMMConfig struct {
	DeviceName string // Output device to open; the first device when empty or not found.
}

// KeyMatrixConfig wires the note keys: rows are driven low one at a time and
// columns are sampled.
type KeyMatrixConfig struct {
	Rows []OutputLine
	Cols []InputLine
}

// FunctionMatrixConfig wires the function buttons. Row may be nil when the
// buttons are wired straight to ground.
type FunctionMatrixConfig struct {
	Row  OutputLine
	Cols []InputLine
}

// PositionReader is a relative position source such as a quadrature encoder.
type PositionReader interface {
	Position() int
}

// KnobConfig binds a position source to a MIDI controller number.
type KnobConfig struct {
	Reader     PositionReader
	Controller uint8
}

// ControllerOptions defines the configuration options for the controller.
type ControllerOptions struct {
	Logger          Logger               // Logger for logging events and errors.
	LogLevel        LogLevel             // Level of logging to use.
	LogFilePath     string               // File path for logging if file logging is enabled.
	Transport       Transport            // BLE transport; required.
	Keys            KeyMatrixConfig      // Note key matrix.
	Functions       FunctionMatrixConfig // Function buttons.
	FunctionActions map[int]func()       // Overrides of the default function button actions.
	Knobs           []KnobConfig         // Rotary knobs sending Control Change.
	Heartbeat       OutputLine           // Optional status LED toggled once per scan cycle.
	Channel         uint8                // MIDI channel used for notes and control changes.
	Velocity        uint8                // Velocity of key presses.
	BaseNote        uint8                // Note of row 0, column 0 at octave offset 0.
	ScanInterval    time.Duration        // Idle delay between scan cycles.
	Advertisement   AdvertisementInfo    // Advertising name, UUIDs and interval.
	EventSink       EventSink            // Optional destination for decoded inbound events.
	MIDIEventFilter *MIDIEventFilter     // Optional filter applied before EventSink.
	CoreMIDIConfig  *CoreMIDIConfig      // Configuration specific to CoreMIDI sinks.
	WinMMConfig     *WinMMConfig         // Configuration specific to Windows sinks.
	Diagnostics     func(Diagnostic)     // Optional observer of dropped or truncated data.
}

// Option is a function that modifies ControllerOptions.
type Option func(*ControllerOptions)

// WithLogger sets the logger for the controller.
func WithLogger(l Logger) Option {
	return func(opts *ControllerOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the controller.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ControllerOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ControllerOptions) {
		opts.LogFilePath = path
	}
}

// WithTransport sets the BLE transport notifications are sent through.
func WithTransport(t Transport) Option {
	return func(opts *ControllerOptions) {
		opts.Transport = t
	}
}

// WithKeyMatrix sets the row and column lines of the note keys.
func WithKeyMatrix(rows []OutputLine, cols []InputLine) Option {
	return func(opts *ControllerOptions) {
		opts.Keys = KeyMatrixConfig{Rows: rows, Cols: cols}
	}
}

// WithFunctionMatrix sets the row (possibly nil) and column lines of the function buttons.
func WithFunctionMatrix(row OutputLine, cols []InputLine) Option {
	return func(opts *ControllerOptions) {
		opts.Functions = FunctionMatrixConfig{Row: row, Cols: cols}
	}
}

// WithFunctionAction replaces the action bound to function button index.
func WithFunctionAction(index int, action func()) Option {
	return func(opts *ControllerOptions) {
		if opts.FunctionActions == nil {
			opts.FunctionActions = make(map[int]func())
		}
		opts.FunctionActions[index] = action
	}
}

// WithKnob adds a rotary knob sending Control Change for controller.
func WithKnob(reader PositionReader, controller uint8) Option {
	return func(opts *ControllerOptions) {
		opts.Knobs = append(opts.Knobs, KnobConfig{Reader: reader, Controller: controller})
	}
}

// WithHeartbeat sets a status LED toggled on every scan cycle.
func WithHeartbeat(line OutputLine) Option {
	return func(opts *ControllerOptions) {
		opts.Heartbeat = line
	}
}

// WithChannel sets the MIDI channel (0-15).
func WithChannel(channel uint8) Option {
	return func(opts *ControllerOptions) {
		opts.Channel = channel
	}
}

// WithVelocity sets the velocity sent on key press.
func WithVelocity(velocity uint8) Option {
	return func(opts *ControllerOptions) {
		opts.Velocity = velocity
	}
}

// WithBaseNote sets the note of the first key at octave offset 0.
func WithBaseNote(note uint8) Option {
	return func(opts *ControllerOptions) {
		opts.BaseNote = note
	}
}

// WithScanInterval sets the idle delay between scan cycles.
func WithScanInterval(d time.Duration) Option {
	return func(opts *ControllerOptions) {
		opts.ScanInterval = d
	}
}

// WithAdvertisement sets the advertising parameters.
func WithAdvertisement(info AdvertisementInfo) Option {
	return func(opts *ControllerOptions) {
		opts.Advertisement = info
	}
}

// WithEventSink sets where decoded inbound events are forwarded.
func WithEventSink(sink EventSink) Option {
	return func(opts *ControllerOptions) {
		opts.EventSink = sink
	}
}

// WithMIDIEventFilter sets the MIDI event filter applied before the event sink.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ControllerOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for macOS event sinks.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ControllerOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithWinMMConfig sets the output device of Windows event sinks.
func WithWinMMConfig(config WinMMConfig) Option {
	return func(opts *ControllerOptions) {
		opts.WinMMConfig = &config
	}
}

// WithDiagnostics registers an observer of silently dropped data.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(opts *ControllerOptions) {
		opts.Diagnostics = fn
	}
}

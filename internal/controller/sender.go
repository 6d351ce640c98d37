package controller

import (
	"github.com/leandrodaf/blemidi/internal/blemidi"
	"github.com/leandrodaf/blemidi/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// Sender encodes events and hands them to the transport. Events produced
// while no central is connected are dropped before encoding, so the
// timestamp only advances for packets actually sent. Nothing is queued or
// retried.
type Sender struct {
	transport   contracts.Transport
	encoder     *blemidi.Encoder
	logger      contracts.Logger
	diagnostics func(contracts.Diagnostic)
}

// NewSender returns a sender writing to transport.
func NewSender(transport contracts.Transport, logger contracts.Logger, diagnostics func(contracts.Diagnostic)) *Sender {
	return &Sender{
		transport:   transport,
		encoder:     blemidi.NewEncoder(),
		logger:      logger,
		diagnostics: diagnostics,
	}
}

// Note sends a Note On, or a Note Off when velocity is 0. note is masked
// into the MIDI range.
func (s *Sender) Note(channel uint8, note int, velocity uint8) {
	if !s.connected() {
		return
	}
	payload := s.encoder.EncodeNote(channel, uint8(note), velocity)
	if note < 0 || note > 127 || blemidi.Truncates(channel, velocity) {
		s.report(contracts.Diagnostic{Kind: contracts.ValueTruncated, Packet: payload})
		s.logger.Debug("Note value truncated",
			s.logger.Field().Int("note", note),
			s.logger.Field().Uint8("channel", channel),
			s.logger.Field().Uint8("velocity", velocity))
	}
	s.notify(payload)
}

// ControlChange sends a Control Change.
func (s *Sender) ControlChange(channel, controller, value uint8) {
	if !s.connected() {
		return
	}
	payload := s.encoder.EncodeControlChange(channel, controller, value)
	if blemidi.Truncates(channel, controller, value) {
		s.report(contracts.Diagnostic{Kind: contracts.ValueTruncated, Packet: payload})
	}
	s.notify(payload)
}

// Timestamp returns the timestamp the next packet will carry.
func (s *Sender) Timestamp() uint16 {
	return s.encoder.Timestamp()
}

func (s *Sender) connected() bool {
	if s.transport.Connected() {
		return true
	}
	s.report(contracts.Diagnostic{Kind: contracts.SendWhileDisconnected})
	s.logger.Debug("No central connected; event dropped")
	return false
}

func (s *Sender) notify(payload []byte) {
	if err := s.transport.Notify(payload); err != nil {
		s.logger.Error("Failed to send notification",
			s.logger.Field().Error("error", err),
			s.logger.Field().Binary("payload", payload))
		return
	}
	s.logger.Debug("Sent",
		s.logger.Field().Binary("payload", payload),
		s.logger.Field().String("message", midi.Message(payload[2:]).String()))
}

func (s *Sender) report(d contracts.Diagnostic) {
	if s.diagnostics != nil {
		s.diagnostics(d)
	}
}

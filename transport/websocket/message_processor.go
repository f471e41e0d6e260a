package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA

	maxPayloadSize = 4 << 10

	closeProtocolError uint16 = 1002
)

var (
	ErrConnectionClosed = errors.New("connection closed by client")
	ErrPayloadTooLarge  = errors.New("frame payload too large")
	ErrUnmaskedFrame    = errors.New("client frame is not masked")
	ErrUnexpectedFrame  = errors.New("unexpected frame")
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	masked  bool
	length  uint64
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Board   entity.Board  `json:"board,omitempty"`
	Status  entity.Status `json:"status,omitempty"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (that *Server) sendMessage(bufrw *bufio.ReadWriter, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	responseBytes, err := json.Marshal(Message{
		Action:  action,
		Payload: payloadBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	f := frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(responseBytes)),
		payload: responseBytes,
	}

	if err = writeFrame(bufrw, f); err != nil {
		return err
	}

	return nil
}

func writeFrame(bufrw *bufio.ReadWriter, frameData frame) error {
	buf := make([]byte, 2, 10+len(frameData.payload))
	buf[0] |= frameData.opCode

	if frameData.isFin {
		buf[0] |= 0x80
	}

	switch {
	case frameData.length < 126:
		buf[1] |= byte(frameData.length)
	case frameData.length < 1<<16:
		buf[1] |= 126
		buf = binary.BigEndian.AppendUint16(buf, uint16(frameData.length))
	default:
		buf[1] |= 127
		buf = binary.BigEndian.AppendUint64(buf, frameData.length)
	}

	buf = append(buf, frameData.payload...)

	if _, err := bufrw.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := bufrw.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

// readRequest - reads frames until a complete text message arrives.
// Control frames are answered in place. Protocol violations close the connection.
func (that *Server) readRequest(bufrw *bufio.ReadWriter) ([]byte, error) {
	var (
		message []byte
		started bool
	)

	for {
		f, err := readFrame(bufrw)
		if err != nil {
			return nil, err
		}

		if !f.masked {
			return nil, failConnection(bufrw, ErrUnmaskedFrame)
		}

		switch f.opCode {
		case opClose:
			_ = writeFrame(bufrw, frame{isFin: true, opCode: opClose})
			return nil, ErrConnectionClosed
		case opPing:
			if err = writeFrame(bufrw, frame{isFin: true, opCode: opPong, length: f.length, payload: f.payload}); err != nil {
				return nil, err
			}
			continue
		case opPong:
			continue
		case opText:
			if started {
				return nil, failConnection(bufrw, fmt.Errorf("%w: text frame inside a fragmented message", ErrUnexpectedFrame))
			}
			started = true
		case opContinuation:
			if !started {
				return nil, failConnection(bufrw, fmt.Errorf("%w: continuation without a message", ErrUnexpectedFrame))
			}
		default:
			return nil, failConnection(bufrw, fmt.Errorf("%w: opcode 0x%x", ErrUnexpectedFrame, f.opCode))
		}

		message = append(message, f.payload...)
		if len(message) > maxPayloadSize {
			return nil, ErrPayloadTooLarge
		}

		if f.isFin {
			return message, nil
		}
	}
}

// failConnection - sends a protocol error close frame and returns cause.
func failConnection(bufrw *bufio.ReadWriter, cause error) error {
	payload := binary.BigEndian.AppendUint16(nil, closeProtocolError)
	_ = writeFrame(bufrw, frame{isFin: true, opCode: opClose, length: uint64(len(payload)), payload: payload})

	return cause
}

func readFrame(bufrw *bufio.ReadWriter) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(bufrw, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	isFin := header[0]>>7 == 1
	opCode := header[0] & 0x0f
	masked := header[1]>>7 == 1

	size, err := readPayloadLength(bufrw, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if size > maxPayloadSize {
		return frame{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, size)
	}

	var mask []byte
	if masked {
		mask = make([]byte, 4)
		if _, err = io.ReadFull(bufrw, mask); err != nil {
			return frame{}, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	payload := make([]byte, size)
	if _, err = io.ReadFull(bufrw, payload); err != nil {
		return frame{}, fmt.Errorf("failed to read payload: %w", err)
	}

	if mask != nil {
		for i := range payload {
			payload[i] ^= mask[i%4]
		}
	}

	return frame{
		isFin:   isFin,
		opCode:  opCode,
		masked:  masked,
		length:  size,
		payload: payload,
	}, nil
}

func readPayloadLength(bufrw *bufio.ReadWriter, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(bufrw, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(length)), nil
	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(bufrw, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return binary.BigEndian.Uint64(length), nil
	default:
		return uint64(payloadLen), nil
	}
}

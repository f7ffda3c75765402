// Package protocol implements the request and response formats spoken over
// the inspection socket.
//
// A request is the file name terminated by '\n', followed by the raw file
// bytes. The client marks the end of the payload by shutting down its write
// side. The response is a single block of text and the daemon closes the
// connection after writing it.
package protocol

import (
	"fmt"
	"io"

	"github.com/samcharles93/elfinspect/internal/streamio"
)

const (
	// MaxNameLen bounds the name line, terminator included.
	MaxNameLen = 256
	// DefaultMaxPayload is the largest file accepted unless configured otherwise.
	DefaultMaxPayload = 1 << 20
	// MaxPayloadLimit is the largest payload cap that may be configured.
	MaxPayloadLimit = 1 << 30

	// payloadChunk is how much the payload buffer grows per read.
	payloadChunk = 64 << 10
)

// RequestError is a malformed request. Message is sent to the client as is.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

var (
	ErrUnparsableName = &RequestError{Message: "Bad request: Unparsable file name"}
	ErrUnparsableData = &RequestError{Message: "Bad request: Unparsable file data"}
	ErrDataTooLarge   = &RequestError{Message: "Bad request: File data too large"}
)

// Request is one decoded inspection request.
type Request struct {
	Name    string
	Payload []byte
}

// ReadRequest reads a request from r, accepting at most maxPayload bytes of
// file data. The payload is drained even when the name is malformed so the
// peer is not reset while still writing.
//
// Failures wrap one of the RequestError sentinels.
func ReadRequest(r io.Reader, maxPayload int) (*Request, error) {
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayload
	}

	name := make([]byte, MaxNameLen)
	nameLen, nameErr := streamio.ReadLine(r, name, true)

	data, tooLarge, dataErr := readPayload(r, maxPayload)

	switch {
	case nameErr != nil:
		return nil, fmt.Errorf("%w: %w", ErrUnparsableName, nameErr)
	case nameLen == 0 || name[nameLen-1] != '\n':
		return nil, ErrUnparsableName
	case dataErr != nil:
		return nil, fmt.Errorf("%w: %w", ErrUnparsableData, dataErr)
	case tooLarge:
		return nil, ErrDataTooLarge
	}

	return &Request{
		Name:    string(name[:nameLen-1]),
		Payload: data,
	}, nil
}

// readPayload reads until end of stream or until more than maxPayload bytes
// have arrived. The buffer grows with the data actually received, so a large
// cap costs nothing until a client sends that much.
func readPayload(r io.Reader, maxPayload int) ([]byte, bool, error) {
	data := make([]byte, 0, min(maxPayload, payloadChunk))
	chunk := make([]byte, payloadChunk)
	for {
		n, err := streamio.ReadFull(r, chunk, true)
		if len(data)+n > maxPayload {
			return nil, true, err
		}
		data = append(data, chunk[:n]...)
		if err != nil || n < len(chunk) {
			return data, false, err
		}
	}
}

package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samcharles93/elfinspect/internal/elfheader"
)

// MaxResponseLen is the largest response the daemon writes. Longer
// responses are cut at this length.
const MaxResponseLen = 1024

var ErrMalformedResponse = errors.New("malformed response")

// Response is the structured form of a daemon reply.
type Response struct {
	File       string `json:"file,omitempty"`
	Valid      bool   `json:"valid"`
	Class      string `json:"class,omitempty"`
	Endianness string `json:"endianness,omitempty"`
	Type       string `json:"type,omitempty"`
	Machine    string `json:"machine,omitempty"`
	EntryPoint string `json:"entry_point,omitempty"`
	Error      string `json:"error,omitempty"`
}

// FormatResponse renders the reply for one request. A RequestError is sent
// as its bare message, any other error as an invalid-file report, and a nil
// error as the full report built from d.
func FormatResponse(name string, d *elfheader.Details, err error) []byte {
	var msg string

	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		msg = reqErr.Message
	case err != nil:
		msg = fmt.Sprintf("File: %s\nValid ELF: no\nError: %s\n", name, errorMessage(err))
	default:
		msg = fmt.Sprintf("File: %s\nValid ELF: yes\nClass: %s\nEndianness: %s\nType: %s\nMachine: %s\nEntry point: %s",
			name, d.ClassName, d.DataName, d.TypeName, d.MachineName, d.EntryPoint)
	}

	if len(msg) > MaxResponseLen {
		msg = msg[:MaxResponseLen]
	}
	return []byte(msg)
}

func errorMessage(err error) string {
	var elfErr *elfheader.Error
	if errors.As(err, &elfErr) {
		return elfErr.Message
	}
	return err.Error()
}

// ParseResponse turns reply text back into a Response. Replies that do not
// start with a file line are request errors and are returned with only
// Error set.
func ParseResponse(text string) (*Response, error) {
	if !strings.HasPrefix(text, "File: ") {
		if text == "" {
			return nil, ErrMalformedResponse
		}
		return &Response{Error: text}, nil
	}

	resp := &Response{}
	sawValid := false
	for line := range strings.Lines(text) {
		key, value, ok := strings.Cut(strings.TrimSuffix(line, "\n"), ": ")
		if !ok {
			continue
		}
		switch key {
		case "File":
			resp.File = value
		case "Valid ELF":
			sawValid = true
			resp.Valid = value == "yes"
		case "Class":
			resp.Class = value
		case "Endianness":
			resp.Endianness = value
		case "Type":
			resp.Type = value
		case "Machine":
			resp.Machine = value
		case "Entry point":
			resp.EntryPoint = value
		case "Error":
			resp.Error = value
		}
	}
	if !sawValid {
		return nil, fmt.Errorf("%w: missing validity line", ErrMalformedResponse)
	}
	return resp, nil
}

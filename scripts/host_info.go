package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-json"

	"github.com/samcharles93/elfinspect/internal/protocol"
	"github.com/samcharles93/elfinspect/internal/streamio"
	"github.com/samcharles93/elfinspect/internal/transport"
)

type output struct {
	GoVersion      string `json:"go_version"`
	GoOS           string `json:"go_os"`
	GoArch         string `json:"go_arch"`
	ByteOrder      string `json:"byte_order"`
	MaxSocketPath  int    `json:"max_socket_path"`
	DefaultBacklog int    `json:"default_backlog"`
	MaxNameLen     int    `json:"max_name_len"`
	MaxPayload     int    `json:"default_max_payload"`
	MaxResponseLen int    `json:"max_response_len"`
}

func main() {
	order := "big-endian"
	if streamio.HostLittleEndian() {
		order = "little-endian"
	}

	out := output{
		GoVersion:      runtime.Version(),
		GoOS:           runtime.GOOS,
		GoArch:         runtime.GOARCH,
		ByteOrder:      order,
		MaxSocketPath:  transport.MaxPathLen,
		DefaultBacklog: transport.DefaultBacklog,
		MaxNameLen:     protocol.MaxNameLen,
		MaxPayload:     protocol.DefaultMaxPayload,
		MaxResponseLen: protocol.MaxResponseLen,
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}

// Package testutil holds helpers shared by the socket-level tests.
package testutil

import (
	"encoding/binary"
	"os"
	"testing"
)

// SocketDir returns a short temporary directory for Unix sockets. t.TempDir
// paths can exceed the 107-byte sun_path limit.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "elfinspect-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}

// ELF64 builds a 64-byte ELFCLASS64 header. bigEndian selects ELFDATA2MSB.
func ELF64(bigEndian bool, typ, machine uint16, entry uint64) []byte {
	var order binary.ByteOrder = binary.LittleEndian
	data := byte(1)
	if bigEndian {
		order = binary.BigEndian
		data = 2
	}
	b := make([]byte, 64)
	copy(b, "\x7fELF")
	b[4] = 2
	b[5] = data
	b[6] = 1
	order.PutUint16(b[16:], typ)
	order.PutUint16(b[18:], machine)
	order.PutUint32(b[20:], 1)
	order.PutUint64(b[24:], entry)
	order.PutUint64(b[32:], 64)
	order.PutUint16(b[52:], 64)
	order.PutUint16(b[54:], 56)
	return b
}

package elfheader

import (
	"encoding/binary"

	"github.com/samcharles93/elfinspect/internal/streamio"
)

// NeedsSwap reports whether the declared data encoding of id differs from
// the host byte order. Unknown encodings never need a swap.
func NeedsSwap(id Ident, hostLittle bool) bool {
	switch id.Data {
	case DataLSB:
		return !hostLittle
	case DataMSB:
		return hostLittle
	default:
		return false
	}
}

// CorrectByteOrder reverses every multi-byte field of h in place when the
// header's declared encoding disagrees with the host. The decision is taken
// once from the untouched ident, so calling it again on a corrected header
// would undo the correction. It reports whether fields were swapped.
func CorrectByteOrder(h Header, hostLittle bool) bool {
	if !NeedsSwap(h.Identification(), hostLittle) {
		return false
	}
	h.swapFields()
	return true
}

func (h *Header32) swapFields() {
	h.Type = swap16(h.Type)
	h.Machine = swap16(h.Machine)
	h.Version = swap32(h.Version)
	h.Entry = swap32(h.Entry)
	h.Phoff = swap32(h.Phoff)
	h.Shoff = swap32(h.Shoff)
	h.Flags = swap32(h.Flags)
	h.Ehsize = swap16(h.Ehsize)
	h.Phentsize = swap16(h.Phentsize)
	h.Phnum = swap16(h.Phnum)
	h.Shentsize = swap16(h.Shentsize)
	h.Shnum = swap16(h.Shnum)
	h.Shstrndx = swap16(h.Shstrndx)
}

func (h *Header64) swapFields() {
	h.Type = swap16(h.Type)
	h.Machine = swap16(h.Machine)
	h.Version = swap32(h.Version)
	h.Entry = swap64(h.Entry)
	h.Phoff = swap64(h.Phoff)
	h.Shoff = swap64(h.Shoff)
	h.Flags = swap32(h.Flags)
	h.Ehsize = swap16(h.Ehsize)
	h.Phentsize = swap16(h.Phentsize)
	h.Phnum = swap16(h.Phnum)
	h.Shentsize = swap16(h.Shentsize)
	h.Shnum = swap16(h.Shnum)
	h.Shstrndx = swap16(h.Shstrndx)
}

func swap16(v uint16) uint16 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], v)
	streamio.ReverseBytes(b[:])
	return binary.NativeEndian.Uint16(b[:])
}

func swap32(v uint32) uint32 {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	streamio.ReverseBytes(b[:])
	return binary.NativeEndian.Uint32(b[:])
}

func swap64(v uint64) uint64 {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], v)
	streamio.ReverseBytes(b[:])
	return binary.NativeEndian.Uint64(b[:])
}

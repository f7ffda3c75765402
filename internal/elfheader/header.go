// Package elfheader decodes and validates ELF file headers.
package elfheader

import (
	"encoding/binary"

	"github.com/samcharles93/elfinspect/internal/streamio"
)

const (
	MagicELF = "\x7fELF"

	IdentSize    = 16
	Header32Size = 52
	Header64Size = 64

	// Offset of the class byte inside the identification prefix.
	classOffset = 4
)

const (
	ClassNone  byte = 0
	Class32    byte = 1
	Class64    byte = 2
	DataNone   byte = 0
	DataLSB    byte = 1
	DataMSB    byte = 2
	VersionNow byte = 1
)

const (
	TypeNone uint16 = 0
	TypeRel  uint16 = 1
	TypeExec uint16 = 2
	TypeDyn  uint16 = 3
	TypeCore uint16 = 4
)

// Ident is the 16-byte identification prefix shared by both classes.
type Ident struct {
	Magic      [4]byte
	Class      byte
	Data       byte
	Version    byte
	OSABI      byte
	ABIVersion byte
	Pad        [7]byte
}

// Header32 is the 52-byte ELFCLASS32 file header.
type Header32 struct {
	Ident     Ident
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// Header64 is the 64-byte ELFCLASS64 file header.
type Header64 struct {
	Ident     Ident
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

// Header is implemented by *Header32 and *Header64 only.
type Header interface {
	Identification() Ident
	ObjectType() uint16
	MachineCode() uint16
	EntryPoint() uint64
	// Size is the number of bytes the header occupies on the wire.
	Size() int

	swapFields()
}

func (h *Header32) Identification() Ident { return h.Ident }
func (h *Header32) ObjectType() uint16 { return h.Type }
func (h *Header32) MachineCode() uint16 { return h.Machine }
func (h *Header32) EntryPoint() uint64 { return uint64(h.Entry) }
func (h *Header32) Size() int { return Header32Size }

func (h *Header64) Identification() Ident { return h.Ident }
func (h *Header64) ObjectType() uint16 { return h.Type }
func (h *Header64) MachineCode() uint16 { return h.Machine }
func (h *Header64) EntryPoint() uint64 { return h.Entry }
func (h *Header64) Size() int { return Header64Size }

// Decode copies the header at the start of buf into the record selected by
// the class byte. Multi-byte fields are read in the host's byte order, as if
// the bytes had been laid over the record in memory; call CorrectByteOrder
// before interpreting them. Bytes past the header are not read.
//
// Any class other than ELFCLASS64 is decoded with the 32-bit layout and left
// for VerifyClass to reject.
func Decode(buf []byte) (Header, error) {
	return DecodeFor(buf, streamio.HostLittleEndian())
}

// DecodeFor is Decode for a host with the given byte order.
func DecodeFor(buf []byte, hostLittle bool) (Header, error) {
	if len(buf) < Header32Size {
		return nil, ErrTooShort
	}

	var order binary.ByteOrder = binary.BigEndian
	if hostLittle {
		order = binary.LittleEndian
	}

	if buf[classOffset] == Class64 {
		if len(buf) < Header64Size {
			return nil, ErrTooShort64
		}
		return decode64(buf[:Header64Size], order), nil
	}
	return decode32(buf[:Header32Size], order), nil
}

func decodeIdent(b []byte) Ident {
	var id Ident
	copy(id.Magic[:], b[0:4])
	id.Class = b[4]
	id.Data = b[5]
	id.Version = b[6]
	id.OSABI = b[7]
	id.ABIVersion = b[8]
	copy(id.Pad[:], b[9:IdentSize])
	return id
}

func decode32(b []byte, order binary.ByteOrder) *Header32 {
	return &Header32{
		Ident:     decodeIdent(b),
		Type:      order.Uint16(b[16:]),
		Machine:   order.Uint16(b[18:]),
		Version:   order.Uint32(b[20:]),
		Entry:     order.Uint32(b[24:]),
		Phoff:     order.Uint32(b[28:]),
		Shoff:     order.Uint32(b[32:]),
		Flags:     order.Uint32(b[36:]),
		Ehsize:    order.Uint16(b[40:]),
		Phentsize: order.Uint16(b[42:]),
		Phnum:     order.Uint16(b[44:]),
		Shentsize: order.Uint16(b[46:]),
		Shnum:     order.Uint16(b[48:]),
		Shstrndx:  order.Uint16(b[50:]),
	}
}

func decode64(b []byte, order binary.ByteOrder) *Header64 {
	return &Header64{
		Ident:     decodeIdent(b),
		Type:      order.Uint16(b[16:]),
		Machine:   order.Uint16(b[18:]),
		Version:   order.Uint32(b[20:]),
		Entry:     order.Uint64(b[24:]),
		Phoff:     order.Uint64(b[32:]),
		Shoff:     order.Uint64(b[40:]),
		Flags:     order.Uint32(b[48:]),
		Ehsize:    order.Uint16(b[52:]),
		Phentsize: order.Uint16(b[54:]),
		Phnum:     order.Uint16(b[56:]),
		Shentsize: order.Uint16(b[58:]),
		Shnum:     order.Uint16(b[60:]),
		Shstrndx:  order.Uint16(b[62:]),
	}
}

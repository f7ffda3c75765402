package elfheader

import "strconv"

// Field is a validated header value and its description.
type Field struct {
	Code uint32
	Name string
}

var classNames = map[byte]string{
	Class32: "ELF32",
	Class64: "ELF64",
}

var dataNames = map[byte]string{
	DataLSB: "Little Endian",
	DataMSB: "Big Endian",
}

var typeNames = map[uint16]string{
	TypeRel:  "Relocatable (ET_REL)",
	TypeExec: "Executable (ET_EXEC)",
	TypeDyn:  "Shared Object (ET_DYN)",
	TypeCore: "Core (ET_CORE)",
}

func VerifyMagic(magic [4]byte) (Field, error) {
	if string(magic[:]) != MagicELF {
		return Field{}, ErrInvalidMagic
	}
	return Field{Code: 0x7f454c46, Name: "0x7FELF"}, nil
}

func VerifyClass(class byte) (Field, error) {
	name, ok := classNames[class]
	if !ok {
		return Field{}, ErrInvalidClass
	}
	return Field{Code: uint32(class), Name: name}, nil
}

func VerifyData(data byte) (Field, error) {
	name, ok := dataNames[data]
	if !ok {
		return Field{}, ErrInvalidData
	}
	return Field{Code: uint32(data), Name: name}, nil
}

func VerifyVersion(version byte) (Field, error) {
	if version != VersionNow {
		return Field{}, ErrInvalidVersion
	}
	return Field{Code: uint32(version), Name: "EV_CURRENT"}, nil
}

func VerifyType(typ uint16) (Field, error) {
	name, ok := typeNames[typ]
	if !ok {
		return Field{}, ErrInvalidType
	}
	return Field{Code: uint32(typ), Name: name}, nil
}

func VerifyMachine(machine uint16) (Field, error) {
	name, ok := machineNames[machine]
	if !ok {
		return Field{}, ErrInvalidMachine
	}
	return Field{Code: uint32(machine), Name: name}, nil
}

// Report holds the fields validated so far. After a failure only the fields
// checked before it are set.
type Report struct {
	Magic      Field
	Class      Field
	Data       Field
	Version    Field
	Type       Field
	Machine    Field
	EntryPoint string
	Swapped    bool
}

// Verify validates h in order magic, class, data, version, type, machine and
// stops at the first failure. The byte order of h is corrected for the host
// before the multi-byte fields are checked.
func Verify(h Header, hostLittle bool) (Report, error) {
	var (
		r   Report
		err error
	)
	id := h.Identification()

	if r.Magic, err = VerifyMagic(id.Magic); err != nil {
		return r, err
	}
	if r.Class, err = VerifyClass(id.Class); err != nil {
		return r, err
	}
	if r.Data, err = VerifyData(id.Data); err != nil {
		return r, err
	}
	if r.Version, err = VerifyVersion(id.Version); err != nil {
		return r, err
	}

	r.Swapped = CorrectByteOrder(h, hostLittle)

	if r.Type, err = VerifyType(h.ObjectType()); err != nil {
		return r, err
	}
	if r.Machine, err = VerifyMachine(h.MachineCode()); err != nil {
		return r, err
	}
	r.EntryPoint = FormatEntry(h.EntryPoint())
	return r, nil
}

// FormatEntry renders an entry point address as 0x-prefixed lowercase hex.
// Zero has no prefix, matching C's "%#lx".
func FormatEntry(addr uint64) string {
	if addr == 0 {
		return "0"
	}
	return "0x" + strconv.FormatUint(addr, 16)
}

package elfheader

import (
	"errors"
	"testing"
)

func TestVerifyBothHostOrders(t *testing.T) {
	t.Parallel()

	for _, host := range []bool{true, false} {
		for _, data := range []byte{DataLSB, DataMSB} {
			h, err := DecodeFor(build64(data, TypeExec, MachineX86_64, 0x401000), host)
			if err != nil {
				t.Fatalf("host little=%v data=%d: %v", host, data, err)
			}
			r, err := Verify(h, host)
			if err != nil {
				t.Fatalf("host little=%v data=%d: %v", host, data, err)
			}
			if r.EntryPoint != "0x401000" {
				t.Errorf("host little=%v data=%d: entry %s", host, data, r.EntryPoint)
			}
			if r.Machine.Code != uint32(MachineX86_64) || r.Type.Name != "Executable (ET_EXEC)" {
				t.Errorf("host little=%v data=%d: report %+v", host, data, r)
			}
			wantSwap := (data == DataMSB) == host
			if r.Swapped != wantSwap {
				t.Errorf("host little=%v data=%d: swapped=%v", host, data, r.Swapped)
			}
			h64 := h.(*Header64)
			if h64.Phoff != 64 || h64.Shoff != 0x2a40 || h64.Flags != 0x5000000 || h64.Phentsize != 56 {
				t.Errorf("host little=%v data=%d: fields %+v", host, data, h64)
			}

			h, err = DecodeFor(build32(data, TypeDyn, MachineARM, 0x10074), host)
			if err != nil {
				t.Fatalf("32-bit decode: %v", err)
			}
			r, err = Verify(h, host)
			if err != nil {
				t.Fatalf("32-bit verify: %v", err)
			}
			if r.EntryPoint != "0x10074" || r.Class.Name != "ELF32" {
				t.Errorf("host little=%v data=%d: 32-bit report %+v", host, data, r)
			}
			if h32 := h.(*Header32); h32.Shoff != 0x1f00 || h32.Shnum != 28 {
				t.Errorf("host little=%v data=%d: 32-bit fields %+v", host, data, h32)
			}
		}
	}
}

func TestVerifyShortCircuits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(b []byte)
		wantErr error
	}{
		{"bad magic", func(b []byte) { b[0] = 0 }, ErrInvalidMagic},
		{"bad magic and class", func(b []byte) { b[1] = 'X'; b[4] = 9 }, ErrInvalidMagic},
		{"bad class and machine", func(b []byte) { b[4] = 0; b[18], b[19] = 0xff, 0xff }, ErrInvalidClass},
		{"bad data", func(b []byte) { b[5] = 3 }, ErrInvalidData},
		{"bad version", func(b []byte) { b[6] = 2 }, ErrInvalidVersion},
		{"bad type", func(b []byte) { b[16], b[17] = 9, 0 }, ErrInvalidType},
		{"dyn with unknown machine", func(b []byte) { b[16], b[18], b[19] = byte(TypeDyn), 0xff, 0xff }, ErrInvalidMachine},
		{"machine none", func(b []byte) { b[18], b[19] = 0, 0 }, ErrInvalidMachine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := build32(DataLSB, TypeExec, Machine386, 0x8048000)
			tt.mutate(buf)
			h, err := DecodeFor(buf, true)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			_, err = Verify(h, true)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyReportStopsAtFailure(t *testing.T) {
	t.Parallel()
	buf := build64(DataLSB, TypeDyn, 0xfff0, 0)
	h, err := DecodeFor(buf, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r, err := Verify(h, true)
	if !errors.Is(err, ErrInvalidMachine) {
		t.Fatalf("err = %v, want ErrInvalidMachine", err)
	}
	if r.Type.Name != "Shared Object (ET_DYN)" {
		t.Fatalf("type not reported before machine failure: %+v", r)
	}
	if r.Machine.Name != "" || r.EntryPoint != "" {
		t.Fatalf("fields after the failure were set: %+v", r)
	}
}

func TestValidatorsAreTotal(t *testing.T) {
	t.Parallel()

	for v := 0; v <= 0xff; v++ {
		b := byte(v)
		checkField(t, "class", uint32(v), ErrInvalidClass)(VerifyClass(b))
		checkField(t, "data", uint32(v), ErrInvalidData)(VerifyData(b))
		checkField(t, "version", uint32(v), ErrInvalidVersion)(VerifyVersion(b))
	}

	valid := 0
	for v := 0; v <= 0xffff; v++ {
		checkField(t, "type", uint32(v), ErrInvalidType)(VerifyType(uint16(v)))
		f, err := VerifyMachine(uint16(v))
		checkField(t, "machine", uint32(v), ErrInvalidMachine)(f, err)
		if err == nil {
			valid++
		}
	}
	if valid != len(machineNames) {
		t.Fatalf("%d machines accepted, table has %d", valid, len(machineNames))
	}
	if _, err := VerifyMachine(MachineNone); err == nil {
		t.Fatalf("EM_NONE accepted")
	}
}

func checkField(t *testing.T, kind string, in uint32, sentinel error) func(Field, error) {
	t.Helper()
	return func(f Field, err error) {
		t.Helper()
		switch {
		case err != nil && err != sentinel:
			t.Fatalf("%s %d: unexpected error %v", kind, in, err)
		case err != nil && f != (Field{}):
			t.Fatalf("%s %d: failure carried a field %+v", kind, in, f)
		case err == nil && (f.Code != in || f.Name == ""):
			t.Fatalf("%s %d: bad field %+v", kind, in, f)
		}
	}
}

func TestVerifyMagic(t *testing.T) {
	t.Parallel()
	f, err := VerifyMagic([4]byte{0x7f, 'E', 'L', 'F'})
	if err != nil || f.Name != "0x7FELF" {
		t.Fatalf("VerifyMagic = %+v, %v", f, err)
	}
	if _, err := VerifyMagic([4]byte{0x7f, 'E', 'L', 'G'}); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("err = %v", err)
	}
}

func TestMachineNames(t *testing.T) {
	t.Parallel()
	tests := map[uint16]string{
		Machine386:     "Intel 80386 (EM_386)",
		MachineX86_64:  "AMD x86-64 architecture (EM_X86_64)",
		MachineAArch64: "ARM 64-bit architecture (AARCH64) (EM_AARCH64)",
		MachineRISCV:   "RISC-V (EM_RISCV)",
		41:             "Digital Alpha (EM_ALPHA)",
	}
	for code, want := range tests {
		f, err := VerifyMachine(code)
		if err != nil || f.Name != want {
			t.Errorf("VerifyMachine(%d) = %+v, %v; want %q", code, f, err, want)
		}
	}
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()
	tests := map[uint64]string{
		0:                  "0",
		0x401000:           "0x401000",
		0xffffffffffffffff: "0xffffffffffffffff",
	}
	for in, want := range tests {
		if got := FormatEntry(in); got != want {
			t.Errorf("FormatEntry(%#x) = %q, want %q", in, got, want)
		}
	}
}

func TestDetailsLifecycle(t *testing.T) {
	t.Parallel()

	var d Details
	payload := build64(DataLSB, TypeExec, MachineX86_64, 0x401000)
	if err := d.Decode(payload, true); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := d.Verify(true); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !d.Valid || d.Size != Header64Size || d.Class != Class64 || d.DataName != "Little Endian" {
		t.Fatalf("unexpected details: %+v", d)
	}

	d.Reset()
	if d != (Details{}) {
		t.Fatalf("Reset left state behind: %+v", d)
	}

	if err := d.Decode(make([]byte, 10), true); !errors.Is(err, ErrTooShort) {
		t.Fatalf("err = %v, want ErrTooShort", err)
	}
	if d.Size != 10 || d.Valid || d.Err == nil {
		t.Fatalf("unexpected details: %+v", d)
	}
}

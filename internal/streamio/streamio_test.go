package streamio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

type step struct {
	data string
	err  error
}

// scriptedReader returns one step per Read call, then io.EOF.
type scriptedReader struct {
	steps []step
	calls int
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	r.calls++
	if len(r.steps) == 0 {
		return 0, io.EOF
	}
	s := r.steps[0]
	n := copy(p, s.data)
	if n < len(s.data) {
		r.steps[0].data = s.data[n:]
		return n, nil
	}
	r.steps = r.steps[1:]
	return n, s.err
}

func TestReadFull(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		steps   []step
		size    int
		exact   bool
		want    string
		wantErr error
	}{
		{name: "fills buffer", steps: []step{{data: "abcdef"}}, size: 4, want: "abcd"},
		{name: "stops at eof", steps: []step{{data: "ab"}}, size: 8, want: "ab"},
		{name: "empty stream", size: 8, want: ""},
		{name: "retries eintr", steps: []step{{data: "ab", err: unix.EINTR}, {data: "cd"}}, size: 4, want: "abcd"},
		{name: "partial on would block", steps: []step{{data: "ab", err: unix.EAGAIN}}, size: 8, want: "ab"},
		{name: "exact fails on would block", steps: []step{{data: "ab", err: unix.EAGAIN}}, size: 8, exact: true, want: "ab", wantErr: ErrWouldBlock},
		{name: "deadline is would block", steps: []step{{err: os.ErrDeadlineExceeded}}, size: 8, exact: true, want: "", wantErr: ErrWouldBlock},
		{name: "transport error", steps: []step{{data: "a", err: unix.ECONNRESET}}, size: 8, want: "a", wantErr: unix.ECONNRESET},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &scriptedReader{steps: append([]step(nil), tt.steps...)}
			buf := make([]byte, tt.size)
			n, err := ReadFull(r, buf, tt.exact)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := string(buf[:n]); got != tt.want {
				t.Fatalf("read %q, want %q", got, tt.want)
			}
		})
	}
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestReadFullNoProgress(t *testing.T) {
	t.Parallel()
	_, err := ReadFull(emptyReader{}, make([]byte, 4), false)
	if !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("err = %v, want io.ErrNoProgress", err)
	}
}

func TestReadLineLeavesPayload(t *testing.T) {
	t.Parallel()
	r := bytes.NewReader([]byte("name.elf\n\x7fELF"))
	buf := make([]byte, 256)
	n, err := ReadLine(r, buf, true)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if got := string(buf[:n]); got != "name.elf\n" {
		t.Fatalf("line = %q", got)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "\x7fELF" {
		t.Fatalf("payload consumed: remaining %q", rest)
	}
}

func TestReadLineWithoutTerminator(t *testing.T) {
	t.Parallel()
	buf := make([]byte, 4)
	n, err := ReadLine(bytes.NewReader([]byte("abcdefgh")), buf, true)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if n != 4 || buf[n-1] == '\n' {
		t.Fatalf("n = %d, buf = %q", n, buf)
	}
}

type chunkWriter struct {
	bytes.Buffer
	max   int
	fails []error
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	if len(w.fails) > 0 {
		err := w.fails[0]
		w.fails = w.fails[1:]
		return 0, err
	}
	if len(p) > w.max {
		p = p[:w.max]
	}
	return w.Buffer.Write(p)
}

func TestWriteAll(t *testing.T) {
	t.Parallel()

	w := &chunkWriter{max: 3, fails: []error{unix.EINTR}}
	if err := WriteAll(w, []byte("0123456789")); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if w.String() != "0123456789" {
		t.Fatalf("wrote %q", w.String())
	}

	w = &chunkWriter{max: 3, fails: []error{unix.EPIPE}}
	err := WriteAll(w, []byte("x"))
	if !IsPeerGone(err) {
		t.Fatalf("err = %v, want peer gone", err)
	}

	w = &chunkWriter{max: 0}
	if err := WriteAll(w, []byte("x")); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("err = %v, want io.ErrShortWrite", err)
	}
}

func TestWriteLine(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteLine(&buf, []byte("/tmp/a.out")); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if buf.String() != "/tmp/a.out\n" {
		t.Fatalf("wrote %q", buf.String())
	}
}

func TestCopy(t *testing.T) {
	t.Parallel()

	var dst bytes.Buffer
	n, err := Copy(&dst, bytes.NewReader([]byte("payload")))
	if err != nil || n != 7 || dst.String() != "payload" {
		t.Fatalf("Copy = %d, %v, %q", n, err, dst.String())
	}

	src := &scriptedReader{steps: []step{{data: "ab", err: unix.EIO}}}
	n, err = Copy(&bytes.Buffer{}, src)
	var cerr *CopyError
	if !errors.As(err, &cerr) || cerr.Op != "read" || !errors.Is(err, unix.EIO) {
		t.Fatalf("err = %v, want read CopyError", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	w := &chunkWriter{max: 1, fails: []error{unix.EPIPE}}
	_, err = Copy(w, bytes.NewReader([]byte("ab")))
	if !errors.As(err, &cerr) || cerr.Op != "write" || !IsPeerGone(err) {
		t.Fatalf("err = %v, want write CopyError", err)
	}
}

func TestReverseBytesSelfInverse(t *testing.T) {
	t.Parallel()
	for _, width := range []int{2, 4, 8} {
		orig := make([]byte, width)
		for i := range orig {
			orig[i] = byte(0x10 + i)
		}
		b := append([]byte(nil), orig...)
		ReverseBytes(b)
		if b[0] != orig[width-1] {
			t.Fatalf("width %d: not reversed: %x", width, b)
		}
		ReverseBytes(b)
		if !bytes.Equal(b, orig) {
			t.Fatalf("width %d: got %x, want %x", width, b, orig)
		}
	}
}

func TestHostLittleEndian(t *testing.T) {
	t.Parallel()
	x := uint16(1)
	little := *(*byte)(unsafe.Pointer(&x)) == 1
	if got := HostLittleEndian(); got != little {
		t.Fatalf("HostLittleEndian() = %v, want %v", got, little)
	}
}

func TestIsPeerGone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{io.EOF, true},
		{net.ErrClosed, true},
		{fmt.Errorf("write: %w", unix.EPIPE), true},
		{&net.OpError{Op: "write", Err: os.NewSyscallError("write", unix.ECONNRESET)}, true},
		{unix.EIO, false},
		{errors.New("other"), false},
	}
	for _, tt := range tests {
		if got := IsPeerGone(tt.err); got != tt.want {
			t.Errorf("IsPeerGone(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

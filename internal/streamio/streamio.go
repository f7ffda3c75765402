// Package streamio provides blocking read and write primitives for stream
// sockets that survive interrupted system calls and short transfers.
//
// Every read distinguishes three outcomes: a clean end of stream (the count
// read so far and a nil error), a transport error, and ErrWouldBlock when a
// non-blocking descriptor has nothing to offer and the caller asked for an
// exact read.
package streamio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"slices"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by exact reads on a channel that has no data ready.
var ErrWouldBlock = errors.New("streamio: operation would block")

// maxConsecutiveEmptyReads matches bufio's guard against readers that keep
// returning (0, nil).
const maxConsecutiveEmptyReads = 100

// ReadFull reads until buf is full or the peer ends the stream.
//
// Interrupted reads are retried. When the channel would block, exact mode
// fails with ErrWouldBlock while partial mode returns what was accumulated.
// A (0, nil) result is a clean end of stream with nothing read.
func ReadFull(r io.Reader, buf []byte, exact bool) (int, error) {
	return read(r, buf, exact, false)
}

// ReadLine is ReadFull that also stops once a '\n' has been read. The
// terminator is included in the count. Bytes after it stay in the channel.
func ReadLine(r io.Reader, buf []byte, exact bool) (int, error) {
	return read(r, buf, exact, true)
}

func read(r io.Reader, buf []byte, exact, line bool) (int, error) {
	n := 0
	empty := 0
	for n < len(buf) {
		end := len(buf)
		if line {
			end = n + 1
		}

		m, err := r.Read(buf[n:end])
		n += m
		if line && m > 0 && buf[n-1] == '\n' {
			return n, nil
		}

		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return n, nil
			case errors.Is(err, unix.EINTR):
				continue
			case isWouldBlock(err):
				if exact {
					return n, fmt.Errorf("%w: %d of %d bytes read", ErrWouldBlock, n, len(buf))
				}
				return n, nil
			default:
				return n, err
			}
		}

		if m == 0 {
			empty++
			if empty >= maxConsecutiveEmptyReads {
				return n, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
	return n, nil
}

// WriteAll writes every byte of p. Interrupted writes are retried; any other
// short write fails.
func WriteAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		p = p[n:]
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// WriteLine writes p followed by a single '\n'.
func WriteLine(w io.Writer, p []byte) error {
	if err := WriteAll(w, p); err != nil {
		return err
	}
	return WriteAll(w, []byte{'\n'})
}

// CopyError reports which side of a Copy failed.
type CopyError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *CopyError) Error() string {
	return "copy " + e.Op + ": " + e.Err.Error()
}

func (e *CopyError) Unwrap() error { return e.Err }

// Copy moves bytes from src to dst one at a time until src reaches end of
// stream. It returns the number of bytes written.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	var b [1]byte
	var written int64
	for {
		n, rerr := ReadFull(src, b[:], true)
		if n > 0 {
			if err := WriteAll(dst, b[:n]); err != nil {
				return written, &CopyError{Op: "write", Err: err}
			}
			written++
		}
		if rerr != nil {
			return written, &CopyError{Op: "read", Err: rerr}
		}
		if n == 0 {
			return written, nil
		}
	}
}

// HostLittleEndian reports whether the running host stores integers least
// significant byte first.
func HostLittleEndian() bool {
	return binary.NativeEndian.Uint16([]byte{1, 0}) == 1
}

// ReverseBytes reverses b in place.
func ReverseBytes(b []byte) {
	slices.Reverse(b)
}

// IsPeerGone reports whether err means the other end went away: end of
// stream, a closed connection, a broken pipe or a reset.
func IsPeerGone(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno == unix.EPIPE || errno == unix.ECONNRESET
	}
	return false
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, os.ErrDeadlineExceeded)
}

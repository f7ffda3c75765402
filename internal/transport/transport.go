// Package transport opens the Unix stream sockets used between the client
// and the daemon.
//
// Sockets are created through x/sys/unix rather than net.Listen so the
// listen backlog can be set and each setup step fails with its own error.
package transport

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultBacklog is the listen queue length used when none is configured.
const DefaultBacklog = 5

var (
	ErrPathTooLong = errors.New("socket path too long")
	ErrCreate      = errors.New("failed to create socket")
	ErrBind        = errors.New("failed to bind socket")
	ErrListen      = errors.New("failed to listen to socket")
	ErrConnect     = errors.New("failed to connect to server")
	ErrNotSocket   = errors.New("path exists and is not a socket")
)

// MaxPathLen is the longest socket path the platform accepts. sun_path must
// also hold the terminating NUL.
var MaxPathLen = len(unix.RawSockaddrUnix{}.Path) - 1

func checkPath(path string) error {
	if path == "" || len(path) > MaxPathLen {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrPathTooLong, len(path), MaxPathLen)
	}
	return nil
}

// Listen binds a Unix stream socket at path and starts listening with the
// given backlog. A socket file left behind by an earlier run is removed
// first; any other file at path is an error.
func Listen(path string, backlog int) (*net.UnixListener, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	if err := removeStale(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBind, err)
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, os.NewSyscallError("socket", err))
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %w", ErrBind, os.NewSyscallError("bind", err))
	}
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrListen, os.NewSyscallError("listen", err))
	}

	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	l, err := net.FileListener(f)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrListen, err)
	}
	ul, ok := l.(*net.UnixListener)
	if !ok {
		_ = l.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: unexpected listener type %T", ErrListen, l)
	}
	return ul, nil
}

func removeStale(path string) error {
	fi, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if fi.Mode()&fs.ModeSocket == 0 {
		return fmt.Errorf("%w: %s", ErrNotSocket, path)
	}
	return os.Remove(path)
}

// Socket is an unconnected client socket.
type Socket struct {
	fd int
}

// NewSocket creates a Unix stream socket for Connect.
func NewSocket() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, os.NewSyscallError("socket", err))
	}
	return &Socket{fd: fd}, nil
}

// Connect connects the socket to the daemon at path. On success the socket
// is owned by the returned connection and must not be closed separately.
func (s *Socket) Connect(path string) (*net.UnixConn, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	if err := unix.Connect(s.fd, &unix.SockaddrUnix{Name: path}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, os.NewSyscallError("connect", err))
	}

	f := os.NewFile(uintptr(s.fd), path)
	s.fd = -1
	defer f.Close()

	c, err := net.FileConn(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	uc, ok := c.(*net.UnixConn)
	if !ok {
		_ = c.Close()
		return nil, fmt.Errorf("%w: unexpected connection type %T", ErrConnect, c)
	}
	return uc, nil
}

// Close releases a socket that was never connected.
func (s *Socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}

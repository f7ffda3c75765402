package client

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/elfinspect/internal/daemon"
	"github.com/samcharles93/elfinspect/internal/elfheader"
	"github.com/samcharles93/elfinspect/internal/logger"
	"github.com/samcharles93/elfinspect/internal/protocol"
	"github.com/samcharles93/elfinspect/internal/streamio"
	"github.com/samcharles93/elfinspect/internal/testutil"
	"github.com/samcharles93/elfinspect/internal/transport"
)

func startDaemon(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "d.sock")
	srv := daemon.NewServer(daemon.Config{SocketPath: path}, logger.Discard(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("daemon exited: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not start")
	}
	return path
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func run(t *testing.T, cfg Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cfg.Out = &out
	err := New(cfg, logger.Discard()).Run(context.Background())
	return out.String(), err
}

func TestInspectValidFile(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	sock := startDaemon(t, dir)
	file := writeFile(t, dir, "a.out", testutil.ELF64(false, elfheader.TypeExec, elfheader.MachineX86_64, 0x401000))

	out, err := run(t, Config{SocketPath: sock, FilePath: file})
	require.NoError(t, err)
	assert.Equal(t, "Server Response:\nFile: "+file+"\nValid ELF: yes\nClass: ELF64\n"+
		"Endianness: Little Endian\nType: Executable (ET_EXEC)\n"+
		"Machine: AMD x86-64 architecture (EM_X86_64)\nEntry point: 0x401000\n", out)
}

func TestInspectInvalidFile(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	sock := startDaemon(t, dir)
	file := writeFile(t, dir, "notes.txt", []byte("hello"))

	out, err := run(t, Config{SocketPath: sock, FilePath: file})
	require.NoError(t, err)
	assert.Equal(t, "Server Response:\nFile: "+file+"\nValid ELF: no\nError: File data too short to be ELF32\n\n", out)
}

func TestInspectJSON(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	sock := startDaemon(t, dir)
	file := writeFile(t, dir, "lib.so", testutil.ELF64(true, elfheader.TypeDyn, elfheader.MachineAArch64, 0))

	out, err := run(t, Config{SocketPath: sock, FilePath: file, JSON: true})
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, file, resp.File)
	assert.True(t, resp.Valid)
	assert.Equal(t, "Big Endian", resp.Endianness)
	assert.Equal(t, "Shared Object (ET_DYN)", resp.Type)
	assert.Equal(t, "0", resp.EntryPoint)
}

func TestArgumentErrors(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)

	_, err := run(t, Config{SocketPath: filepath.Join(dir, "d.sock")})
	require.ErrorIs(t, err, ErrUsage)
	require.ErrorIs(t, err, ErrArgCount)

	_, err = run(t, Config{SocketPath: filepath.Join(dir, "d.sock"), FilePath: filepath.Join(dir, "missing")})
	require.ErrorIs(t, err, ErrOpen)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, Config{SocketPath: filepath.Join(dir, "d.sock"), FilePath: dir})
	require.ErrorIs(t, err, ErrNotRegular)
}

func TestNoServer(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	file := writeFile(t, dir, "a.out", testutil.ELF64(false, elfheader.TypeExec, elfheader.MachineX86_64, 0))

	out, err := run(t, Config{SocketPath: filepath.Join(dir, "nobody.sock"), FilePath: file})
	require.ErrorIs(t, err, transport.ErrConnect)
	assert.Empty(t, out)
}

// fakeServer accepts one connection, drains the request and replies with
// reply.
func fakeServer(t *testing.T, path string, reply []byte) {
	t.Helper()
	l, err := transport.Listen(path, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	go func() {
		conn, err := l.AcceptUnix()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = io.Copy(io.Discard, conn)
		_ = streamio.WriteAll(conn, reply)
	}()
}

func TestResponseTooLong(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	sock := filepath.Join(dir, "fake.sock")
	fakeServer(t, sock, bytes.Repeat([]byte("x"), 2000))
	file := writeFile(t, dir, "a.out", []byte("payload"))

	out, err := run(t, Config{SocketPath: sock, FilePath: file})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Response too long!\nServer Response:\n"), out)
	assert.Equal(t, receiveLen+1, strings.Count(out, "x"))
}

func TestRequestErrorAsJSON(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	sock := filepath.Join(dir, "fake.sock")
	fakeServer(t, sock, []byte("Bad request: File data too large"))
	file := writeFile(t, dir, "a.out", []byte("payload"))

	out, err := run(t, Config{SocketPath: sock, FilePath: file, JSON: true})
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Bad request: File data too large", resp.Error)
	assert.False(t, resp.Valid)
}

func TestEmptyReplyAsJSON(t *testing.T) {
	t.Parallel()
	dir := testutil.SocketDir(t)
	sock := filepath.Join(dir, "fake.sock")
	fakeServer(t, sock, nil)
	file := writeFile(t, dir, "a.out", []byte("payload"))

	_, err := run(t, Config{SocketPath: sock, FilePath: file, JSON: true})
	require.ErrorIs(t, err, ErrReadResponse)
	require.ErrorIs(t, err, protocol.ErrMalformedResponse)
}

// Package client implements elfinspect: it streams one file to the daemon
// and prints the report that comes back.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"

	"github.com/samcharles93/elfinspect/internal/fsm"
	"github.com/samcharles93/elfinspect/internal/logger"
	"github.com/samcharles93/elfinspect/internal/protocol"
	"github.com/samcharles93/elfinspect/internal/streamio"
	"github.com/samcharles93/elfinspect/internal/transport"
)

const (
	ParseArgs      fsm.State = "PARSE_ARGS"
	Usage          fsm.State = "USAGE"
	HandleArgs     fsm.State = "HANDLE_ARGS"
	Connect        fsm.State = "CONNECT"
	SendFile       fsm.State = "SEND_FILE"
	ReceiveDetails fsm.State = "RECEIVE_DETAILS"
	CleanupProgram fsm.State = "CLEANUP_PROGRAM"
)

var transitions = []fsm.Transition[*Client]{
	{From: fsm.Init, To: ParseArgs, Action: parseArgs},
	{From: ParseArgs, To: Usage, Action: usage},
	{From: ParseArgs, To: HandleArgs, Action: handleArgs},
	{From: HandleArgs, To: CleanupProgram, Action: cleanupProgram},
	{From: HandleArgs, To: Connect, Action: connect},
	{From: Connect, To: SendFile, Action: sendFile},
	{From: Connect, To: CleanupProgram, Action: cleanupProgram},
	{From: SendFile, To: ReceiveDetails, Action: receiveDetails},
	{From: ReceiveDetails, To: CleanupProgram, Action: cleanupProgram},
	{From: Usage, To: CleanupProgram, Action: cleanupProgram},
	{From: CleanupProgram, To: fsm.Exit},
}

// receiveLen leaves room past protocol.MaxResponseLen so an oversized reply
// is detected rather than silently cut.
const receiveLen = 1028

var (
	ErrUsage        = errors.New("usage")
	ErrArgCount     = errors.New("incorrect number of arguments")
	ErrOpen         = errors.New("failed to open ELF file")
	ErrStat         = errors.New("failed to get fstat() of ELF file")
	ErrNotRegular   = errors.New("ELF file is not a regular file")
	ErrReadResponse = errors.New("could not parse response")
)

// Notices printed while sending. They are advisory; the client still waits
// for the daemon's reply.
const (
	noticeName     = "Notice: Failed to send full path name"
	noticeData     = "Notice: Failed to send full elf data"
	noticePeerGone = "Notice: Server closed socket mid write"
	noticeTooLong  = "Response too long!"
	noticeBadReply = "Could not parse response"
)

type Config struct {
	SocketPath string
	FilePath   string
	// JSON prints the parsed reply as a JSON object instead of the raw text.
	JSON bool
	// Out receives the report and notices. Defaults to os.Stdout.
	Out io.Writer
}

// Client runs the client state machine for a single request.
type Client struct {
	cfg Config
	log logger.Logger

	file *os.File
	sock *transport.Socket
	conn *net.UnixConn
	stop func() bool

	fatal error
}

func New(cfg Config, log logger.Logger) *Client {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	return &Client{cfg: cfg, log: log}
}

// Run sends the file and prints the reply. Cancelling ctx closes the
// connection, which unblocks any pending transfer.
func (c *Client) Run(ctx context.Context) error {
	m := fsm.New("elfinspect", c.log, transitions)
	if _, err := m.Run(ctx, c, ParseArgs); err != nil {
		return err
	}
	return c.fatal
}

func parseArgs(_ context.Context, c *Client) fsm.State {
	if c.cfg.SocketPath == "" || c.cfg.FilePath == "" {
		c.fatal = ErrArgCount
		return Usage
	}
	return HandleArgs
}

func usage(_ context.Context, c *Client) fsm.State {
	c.fatal = fmt.Errorf("%w: %w", ErrUsage, c.fatal)
	return CleanupProgram
}

func handleArgs(_ context.Context, c *Client) fsm.State {
	f, err := os.Open(c.cfg.FilePath)
	if err != nil {
		c.fatal = fmt.Errorf("%w: %w", ErrOpen, err)
		return CleanupProgram
	}
	c.file = f

	fi, err := f.Stat()
	if err != nil {
		c.fatal = fmt.Errorf("%w: %w", ErrStat, err)
		return CleanupProgram
	}
	if !fi.Mode().IsRegular() {
		c.fatal = fmt.Errorf("%w: %s", ErrNotRegular, fi.Mode().Type())
		return CleanupProgram
	}

	sock, err := transport.NewSocket()
	if err != nil {
		c.fatal = err
		return CleanupProgram
	}
	c.sock = sock
	c.log.Debug("file opened", "path", c.cfg.FilePath, "size", fi.Size())
	return Connect
}

func connect(ctx context.Context, c *Client) fsm.State {
	conn, err := c.sock.Connect(c.cfg.SocketPath)
	if err != nil {
		c.fatal = err
		return CleanupProgram
	}
	c.conn = conn
	c.stop = context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	c.log.Debug("connected", "socket", c.cfg.SocketPath)
	return SendFile
}

func sendFile(_ context.Context, c *Client) fsm.State {
	if err := streamio.WriteLine(c.conn, []byte(c.cfg.FilePath)); err != nil {
		c.notice(noticeName, err)
	}

	n, err := streamio.Copy(c.conn, bufio.NewReader(c.file))
	if err != nil {
		c.notice(noticeData, err)
		if streamio.IsPeerGone(err) {
			c.notice(noticePeerGone, nil)
		}
	}
	c.log.Debug("file sent", "bytes", n)

	_ = c.conn.CloseWrite()
	return ReceiveDetails
}

func (c *Client) notice(msg string, err error) {
	_, _ = fmt.Fprintln(c.cfg.Out, msg)
	if err != nil {
		c.log.Debug(msg, "error", err)
	}
}

func receiveDetails(_ context.Context, c *Client) fsm.State {
	buf := make([]byte, receiveLen+1)
	n, err := streamio.ReadFull(c.conn, buf, true)
	if n == len(buf) {
		c.notice(noticeTooLong, nil)
		c.log.Warn("response exceeds limit", "limit", receiveLen)
	}
	if err != nil {
		c.notice(noticeBadReply, err)
		if c.cfg.JSON {
			c.fatal = fmt.Errorf("%w: %w", ErrReadResponse, err)
			return CleanupProgram
		}
	}
	text := string(buf[:n])

	if c.cfg.JSON {
		if err := c.printJSON(text); err != nil {
			c.fatal = err
		}
		return CleanupProgram
	}

	_, _ = fmt.Fprintf(c.cfg.Out, "Server Response:\n%s\n", text)
	return CleanupProgram
}

func (c *Client) printJSON(text string) error {
	resp, err := protocol.ParseResponse(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadResponse, err)
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.cfg.Out, "%s\n", out)
	return err
}

func cleanupProgram(_ context.Context, c *Client) fsm.State {
	var errs []error

	if c.stop != nil {
		c.stop()
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close socket: %w", err))
		}
		c.conn = nil
	}
	if c.sock != nil {
		if err := c.sock.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close socket: %w", err))
		}
		c.sock = nil
	}
	if c.file != nil {
		if err := c.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close file: %w", err))
		}
		c.file = nil
	}

	if len(errs) > 0 {
		c.fatal = multierror.Append(c.fatal, errs...).ErrorOrNil()
	}
	return fsm.Exit
}

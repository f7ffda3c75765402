// Package daemon implements elfinspectd: it accepts one connection at a
// time on a Unix socket, inspects the ELF header of the file it receives and
// answers with a text report.
package daemon

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zeebo/blake3"

	"github.com/samcharles93/elfinspect/internal/elfheader"
	"github.com/samcharles93/elfinspect/internal/fsm"
	"github.com/samcharles93/elfinspect/internal/logger"
	"github.com/samcharles93/elfinspect/internal/protocol"
	"github.com/samcharles93/elfinspect/internal/streamio"
	"github.com/samcharles93/elfinspect/internal/transport"
)

const (
	ParseArgs       fsm.State = "PARSE_ARGS"
	Usage           fsm.State = "USAGE"
	HandleArgs      fsm.State = "HANDLE_ARGS"
	WaitForRequest  fsm.State = "WAIT_FOR_REQUEST"
	ParseRequest    fsm.State = "PARSE_REQUEST"
	VerifyHeader    fsm.State = "VERIFY_ELF_HEADER"
	Respond         fsm.State = "RESPOND"
	CleanupResponse fsm.State = "CLEANUP_RESPONSE"
	CleanupProgram  fsm.State = "CLEANUP_PROGRAM"
)

var transitions = []fsm.Transition[*Server]{
	{From: fsm.Init, To: ParseArgs, Action: parseArgs},
	{From: ParseArgs, To: Usage, Action: usage},
	{From: ParseArgs, To: HandleArgs, Action: handleArgs},
	{From: ParseArgs, To: CleanupProgram, Action: cleanupProgram},
	{From: HandleArgs, To: CleanupProgram, Action: cleanupProgram},
	{From: HandleArgs, To: WaitForRequest, Action: waitForRequest},
	{From: Usage, To: CleanupProgram, Action: cleanupProgram},
	{From: WaitForRequest, To: CleanupProgram, Action: cleanupProgram},
	{From: WaitForRequest, To: ParseRequest, Action: parseRequest},
	{From: ParseRequest, To: Respond, Action: respond},
	{From: ParseRequest, To: VerifyHeader, Action: verifyHeader},
	{From: VerifyHeader, To: Respond, Action: respond},
	{From: Respond, To: CleanupResponse, Action: cleanupResponse},
	{From: CleanupResponse, To: WaitForRequest, Action: waitForRequest},
	{From: CleanupResponse, To: CleanupProgram, Action: cleanupProgram},
	{From: CleanupProgram, To: fsm.Exit},
}

var (
	ErrUsage         = errors.New("usage")
	ErrNoSocketPath  = errors.New("socket path must be specified")
	ErrMaxPayload    = errors.New("max payload out of range")
	ErrAccept        = errors.New("failed to accept request")
	ErrCloseResponse = errors.New("failed to close request socket")
)

// HostOrder selects the byte order headers are decoded for.
type HostOrder int

const (
	HostNative HostOrder = iota
	HostLittleEndian
	HostBigEndian
)

func (o HostOrder) little() bool {
	switch o {
	case HostLittleEndian:
		return true
	case HostBigEndian:
		return false
	default:
		return streamio.HostLittleEndian()
	}
}

type Config struct {
	SocketPath string
	// Backlog is the listen queue length; zero means transport.DefaultBacklog.
	Backlog int
	// MaxPayload caps the file size in bytes; zero means
	// protocol.DefaultMaxPayload. Values outside 1..protocol.MaxPayloadLimit
	// stop the server before it listens.
	MaxPayload int
	HostOrder  HostOrder
}

// request is the state owned by the connection being served. It is zeroed
// between connections.
type request struct {
	conn    *net.UnixConn
	id      string
	log     logger.Logger
	started time.Time
	name    string
	details elfheader.Details
	// err is a protocol.RequestError or an elfheader error.
	err error
}

// Server runs the daemon state machine.
type Server struct {
	cfg     Config
	log     logger.Logger
	metrics *Metrics

	listener *net.UnixListener
	stopCtx  func() bool
	ready    chan struct{}

	req   request
	fatal error
}

// NewServer builds a server. Metrics are registered with reg; pass nil to
// skip registration.
func NewServer(cfg Config, log logger.Logger, reg prometheus.Registerer) *Server {
	if cfg.Backlog <= 0 {
		cfg.Backlog = transport.DefaultBacklog
	}
	if cfg.MaxPayload == 0 {
		cfg.MaxPayload = protocol.DefaultMaxPayload
	}
	return &Server{
		cfg:     cfg,
		log:     log,
		metrics: NewMetrics(reg),
		ready:   make(chan struct{}),
	}
}

// Ready is closed once the socket is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Run serves connections until ctx is cancelled or a fatal error occurs.
// Cancellation is observed when Accept returns; a connection accepted after
// that point is closed without being read.
func (s *Server) Run(ctx context.Context) error {
	m := fsm.New("elfinspectd", s.log, transitions)
	if _, err := m.Run(ctx, s, ParseArgs); err != nil {
		return err
	}
	return s.fatal
}

func parseArgs(_ context.Context, s *Server) fsm.State {
	if s.cfg.SocketPath == "" {
		s.fatal = ErrNoSocketPath
		return Usage
	}
	if s.cfg.MaxPayload < 1 || s.cfg.MaxPayload > protocol.MaxPayloadLimit {
		s.fatal = fmt.Errorf("%w: %d bytes, limit is %d", ErrMaxPayload, s.cfg.MaxPayload, protocol.MaxPayloadLimit)
		return CleanupProgram
	}
	return HandleArgs
}

func usage(_ context.Context, s *Server) fsm.State {
	s.fatal = fmt.Errorf("%w: %w", ErrUsage, s.fatal)
	return CleanupProgram
}

func handleArgs(ctx context.Context, s *Server) fsm.State {
	l, err := transport.Listen(s.cfg.SocketPath, s.cfg.Backlog)
	if err != nil {
		s.fatal = err
		return CleanupProgram
	}
	s.listener = l
	s.stopCtx = context.AfterFunc(ctx, func() {
		_ = l.Close()
	})
	close(s.ready)

	s.log.Info("listening",
		"socket", s.cfg.SocketPath,
		"backlog", s.cfg.Backlog,
		"max_payload", s.cfg.MaxPayload,
	)
	return WaitForRequest
}

func waitForRequest(ctx context.Context, s *Server) fsm.State {
	conn, err := s.listener.AcceptUnix()
	if ctx.Err() != nil {
		if conn != nil {
			_ = conn.Close()
		}
		s.log.Info("shutting down", "reason", context.Cause(ctx))
		return CleanupProgram
	}
	if err != nil {
		s.fatal = fmt.Errorf("%w: %w", ErrAccept, err)
		return CleanupProgram
	}

	id := uuid.NewString()
	s.req = request{
		conn:    conn,
		id:      id,
		log:     s.log.With("request_id", id),
		started: time.Now(),
	}
	s.metrics.Connections.Inc()
	s.req.log.Debug("connection accepted")
	return ParseRequest
}

func parseRequest(_ context.Context, s *Server) fsm.State {
	r := &s.req
	req, err := protocol.ReadRequest(r.conn, s.cfg.MaxPayload)
	if err != nil {
		r.err = err
		r.log.Debug("malformed request", "error", err)
		return Respond
	}

	r.name = req.Name
	s.metrics.PayloadBytes.Observe(float64(len(req.Payload)))
	sum := blake3.Sum256(req.Payload)
	r.log.Debug("request received",
		"file", req.Name,
		"bytes", len(req.Payload),
		"blake3", hex.EncodeToString(sum[:]),
	)

	if err := r.details.Decode(req.Payload, s.cfg.HostOrder.little()); err != nil {
		r.err = err
		return Respond
	}
	return VerifyHeader
}

func verifyHeader(_ context.Context, s *Server) fsm.State {
	r := &s.req
	if err := r.details.Verify(s.cfg.HostOrder.little()); err != nil {
		r.err = err
	}
	return Respond
}

func respond(_ context.Context, s *Server) fsm.State {
	r := &s.req
	msg := protocol.FormatResponse(r.name, &r.details, r.err)

	if err := streamio.WriteAll(r.conn, msg); err != nil {
		if streamio.IsPeerGone(err) {
			s.metrics.PeerGone.Inc()
			r.log.Warn("Client socket closed, did not send response")
		} else {
			r.log.Warn("failed to write response", "error", err)
		}
	}

	outcome := outcomeOf(r.err)
	s.metrics.Requests.WithLabelValues(outcome).Inc()
	s.metrics.RequestDuration.Observe(time.Since(r.started).Seconds())
	if r.details.Valid {
		s.metrics.Machines.WithLabelValues(
			r.details.ClassName,
			strconv.FormatUint(uint64(r.details.Header.MachineCode()), 10),
		).Inc()
	}

	args := []any{"file", r.name, "outcome", outcome, "size", r.details.Size}
	if r.err != nil {
		args = append(args, "error", r.err.Error())
	} else {
		args = append(args, "class", r.details.ClassName, "machine", r.details.MachineName, "entry", r.details.EntryPoint)
	}
	r.log.Info("request handled", args...)

	_ = r.conn.CloseWrite()
	_ = r.conn.CloseRead()
	return CleanupResponse
}

func outcomeOf(err error) string {
	var reqErr *protocol.RequestError
	switch {
	case err == nil:
		return OutcomeValid
	case errors.As(err, &reqErr):
		return OutcomeBadRequest
	default:
		return OutcomeInvalid
	}
}

func cleanupResponse(_ context.Context, s *Server) fsm.State {
	conn := s.req.conn
	s.req.details.Reset()
	s.req = request{}

	if err := conn.Close(); err != nil {
		s.fatal = fmt.Errorf("%w: %w", ErrCloseResponse, err)
		return CleanupProgram
	}
	return WaitForRequest
}

func cleanupProgram(_ context.Context, s *Server) fsm.State {
	var errs []error

	if s.req.conn != nil {
		if err := s.req.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close request socket: %w", err))
		}
	}
	s.req.details.Reset()
	s.req = request{}

	if s.listener != nil {
		if s.stopCtx != nil {
			s.stopCtx()
		}
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close listener: %w", err))
		}
		if err := os.Remove(s.cfg.SocketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove socket: %w", err))
		}
		s.listener = nil
	}

	if len(errs) > 0 {
		s.fatal = multierror.Append(s.fatal, errs...).ErrorOrNil()
	}
	s.log.Debug("cleanup complete", "error", s.fatal)
	return fsm.Exit
}

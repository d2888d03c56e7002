// Package server exposes debates over HTTP. A websocket client asks for a
// debate and receives every event of the run as a JSON record.
package server

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"arena/internal/debate"
	"arena/internal/logging"
)

// closeGrace bounds the closing handshake once a run has ended
const closeGrace = time.Second

// ErrBusy is reported to a client when another debate is in progress
var ErrBusy = errors.New("debate already running")

// Request describes the debate a client asked for
type Request struct {
	Topic     string
	Rounds    int
	EnableRAG bool
}

// BuildFunc assembles an orchestrator for req. The returned release func
// is called once the run has finished streaming.
type BuildFunc func(ctx context.Context, req Request) (*debate.Orchestrator, func(), error)

// Server streams debates to websocket clients, one at a time
type Server struct {
	app      *fiber.App
	build    BuildFunc
	defaults Request
	logger   *logging.Logger
	running  sync.Mutex
}

// New creates a server. Query parameters missing from a request fall back
// to defaults.
func New(build BuildFunc, defaults Request, log *logging.Logger, accessLog bool) *Server {
	if log == nil {
		log = logging.NopLogger()
	}
	s := &Server{
		build:    build,
		defaults: defaults,
		logger:   log,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	if accessLog {
		app.Use(logger.New())
	}
	app.Get("/healthz", s.health)
	app.Get("/ws", s.upgrade, websocket.New(s.stream))
	s.app = app
	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	s.logger.Info("server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Serve serves on an existing listener until Shutdown
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for active ones
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// upgrade rejects plain HTTP and malformed parameters before the handshake
func (s *Server) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	req, err := s.parseRequest(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	c.Locals("request", req)
	return c.Next()
}

func (s *Server) parseRequest(c *fiber.Ctx) (Request, error) {
	req := s.defaults
	if topic := strings.TrimSpace(c.Query("topic")); topic != "" {
		req.Topic = topic
	}
	if raw := c.Query("rounds"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, errors.New("rounds must be a non-negative integer")
		}
		req.Rounds = n
	}
	if raw := c.Query("rag"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errors.New("rag must be a boolean")
		}
		req.EnableRAG = enabled
	}
	return req, nil
}

func (s *Server) stream(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	if !s.running.TryLock() {
		_ = conn.WriteJSON(debate.FailureRecord(ErrBusy))
		closeNormal(conn)
		return
	}

	req, _ := conn.Locals("request").(Request)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A client that goes away cancels the run. The reader uses the raw
	// connection and must exit before the handler returns it to the pool.
	raw := conn.Conn
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := raw.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	func() {
		defer s.running.Unlock()
		s.play(ctx, conn, req)
	}()

	// The client answers the close frame, which ends the reader. A client
	// that never answers is cut off after closeGrace.
	closeNormal(conn)
	_ = raw.SetReadDeadline(time.Now().Add(closeGrace))
	<-readerDone
}

// play runs one debate and writes every record to conn
func (s *Server) play(ctx context.Context, conn *websocket.Conn, req Request) {
	orch, release, err := s.build(ctx, req)
	if err != nil {
		s.logger.Error("failed to build debate", "error", err.Error())
		_ = conn.WriteJSON(debate.FailureRecord(err))
		return
	}
	if release != nil {
		defer release()
	}

	log := s.logger.WithRun(orch.RunID())
	log.Info("debate started", "topic", req.Topic, "rounds", req.Rounds, "rag", req.EnableRAG)

	for ev, err := range orch.Run(ctx, req.Rounds) {
		if err != nil {
			_ = conn.WriteJSON(debate.FailureRecord(err))
			log.Warn("debate failed", "error", err.Error())
			return
		}
		if err := conn.WriteJSON(debate.RecordOf(ev)); err != nil {
			log.Warn("client write failed", "error", err.Error())
			return
		}
	}
	log.Info("debate streamed")
}

func closeNormal(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
}

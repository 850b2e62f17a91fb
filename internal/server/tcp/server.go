package tcp

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/indigo-core/config"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/internal/metrics"
	"github.com/rs/zerolog"
)

type OnConnection func(net.Conn)

type Server struct {
	sock     net.Listener
	onConn   OnConnection
	cfg      config.NET
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
	shutdown atomic.Bool
}

func NewServer(
	sock net.Listener, onConn OnConnection, cfg config.NET, logger zerolog.Logger, m *metrics.Metrics,
) *Server {
	return &Server{
		sock:    sock,
		onConn:  onConn,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// Start runs the accept loop. Connections are served one by one, unless the concurrent
// mode is enabled. Failed Accept() calls don't stop the loop. The loop ends only when the
// listener is closed: after Stop it returns status.ErrShutdown, otherwise the error Accept
// returned. In both cases it returns after in-flight connections are done.
func (s *Server) Start() error {
	var delay time.Duration

	for {
		conn, err := s.sock.Accept()
		if err != nil {
			if s.shutdown.Load() || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()

				if s.shutdown.Load() {
					return status.ErrShutdown
				}

				return err
			}

			s.metrics.AcceptError()
			delay = nextDelay(delay, s.cfg.AcceptBackoff)
			s.logger.Error().Err(err).Dur("retry_in", delay).Msg("accept failed")
			time.Sleep(delay)
			continue
		}

		delay = 0
		s.metrics.Accepted()

		if !s.cfg.Concurrent {
			s.onConn(conn)
			continue
		}

		s.wg.Add(1)
		go s.connHandler(conn)
	}
}

// Stop closes the listener. Connections being served at the moment are left to finish.
func (s *Server) Stop() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}

func (s *Server) Addr() net.Addr {
	return s.sock.Addr()
}

func (s *Server) connHandler(conn net.Conn) {
	defer s.wg.Done()
	s.onConn(conn)
}

func nextDelay(prev time.Duration, backoff config.AcceptBackoff) time.Duration {
	if prev == 0 {
		return backoff.Min
	}

	return min(prev*2, backoff.Max)
}

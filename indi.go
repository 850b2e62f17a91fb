package indigo

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/indigo-web/indigo-core/config"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/internal/metrics"
	"github.com/indigo-web/indigo-core/internal/server/http"
	"github.com/indigo-web/indigo-core/internal/server/tcp"
	"github.com/indigo-web/indigo-core/router"
	"github.com/indigo-web/indigo-core/router/inbuilt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// ErrBind is returned by Serve if the address couldn't be bound.
var ErrBind = errors.New("cannot bind the address")

// App binds a single address and serves it until stopped.
type App struct {
	addr       string
	cfg        *config.Config
	logger     zerolog.Logger
	registerer prometheus.Registerer
	hooks      hooks

	mu      sync.Mutex
	server  *tcp.Server
	stopped bool
}

// New returns a new App instance. The address is in the host:port form; the port may
// be 0, so the system picks one (see Addr).
func New(addr string) *App {
	return &App{
		addr:   addr,
		cfg:    config.Default(),
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// Logger replaces the default logger, which writes JSON lines into stderr.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// Metrics enables collecting metrics into the registerer. Disabled by default.
func (a *App) Metrics(reg prometheus.Registerer) *App {
	a.registerer = reg
	return a
}

// NotifyOnStart calls the callback at the moment the address is bound, right before
// the first connection is accepted.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback when the server is down. It's guaranteed that at the
// moment the callback is called, no new connections are accepted and all the in-flight
// ones are already served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve starts the web-application and blocks until it's stopped. If nil is passed instead
// of a router, empty inbuilt will be used. After Stop, status.ErrShutdown is returned.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = inbuilt.New()
	}

	sock, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrBind, a.addr, err)
	}

	// a failed bind must leave the registerer untouched
	var m *metrics.Metrics
	if a.registerer != nil {
		if m, err = metrics.New(a.registerer); err != nil {
			_ = sock.Close()
			return fmt.Errorf("register metrics: %w", err)
		}
	}

	httpServer := http.NewServer(r, a.logger, m)
	server := tcp.NewServer(sock, newConnCallback(a.cfg.NET, httpServer), a.cfg.NET, a.logger, m)

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		_ = sock.Close()
		return status.ErrShutdown
	}
	a.server = server
	a.mu.Unlock()

	a.logger.Info().
		Stringer("addr", sock.Addr()).
		Bool("concurrent", a.cfg.NET.Concurrent).
		Msg("listening")
	callIfNotNil(a.hooks.OnStart)

	err = server.Start()
	a.logger.Info().Err(err).Msg("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop closes the listener. Serve returns as soon as the connections being served at the
// moment are done. Calling Stop before Serve makes Serve return immediately.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
	if a.server == nil {
		return nil
	}

	return a.server.Stop()
}

// Addr returns the bound address, or nil if the app isn't serving yet.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil
	}

	return a.server.Addr()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

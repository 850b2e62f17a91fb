package main

import (
	"errors"
	"flag"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/indigo-web/indigo-core"
	"github.com/indigo-web/indigo-core/config"
	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/router/inbuilt"
	"github.com/indigo-web/indigo-core/router/inbuilt/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type serverStatus struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	addr := flag.String("addr", "", "address to listen on, overrides the config")
	flag.Parse()

	file := config.DefaultFile()
	if *configPath != "" {
		var err error
		if file, err = config.Load(*configPath); err != nil {
			zerolog.New(os.Stderr).Fatal().Err(err).Msg("cannot load config")
		}
	}

	if *addr != "" {
		file.Server.Addr = *addr
	}

	logger := newLogger(file)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if file.Metrics.Addr != "" {
		go serveMetrics(file.Metrics.Addr, reg, logger)
	}

	app := indigo.New(file.Server.Addr).
		Tune(file.Config()).
		Logger(logger).
		Metrics(reg)

	err := app.Serve(newRouter(file, logger))
	if err != nil && !errors.Is(err, status.ErrShutdown) {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func newLogger(file *config.File) zerolog.Logger {
	level, err := zerolog.ParseLevel(file.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if file.Log.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.Level(level).With().Timestamp().Logger()
	if err != nil {
		logger.Warn().Str("level", file.Log.Level).Msg("unknown log level, falling back to info")
	}

	return logger
}

func newRouter(file *config.File, logger zerolog.Logger) *inbuilt.Router {
	root := file.Static.Root
	started := time.Now()

	r := inbuilt.New().
		Use(
			middleware.Recover(logger),
			middleware.LogRequests(logger),
		)

	r.Get("/", func(*http.Request) *http.Response {
		return http.File(filepath.Join(root, "index.html"))
	})

	r.Get("/hello", func(*http.Request) *http.Response {
		return http.File(filepath.Join(root, "hello.html"))
	})

	r.Get("/status", func(*http.Request) *http.Response {
		return http.JSON(serverStatus{
			Status:  "ok",
			Uptime:  time.Since(started).Round(time.Second).String(),
			Version: version,
		})
	})

	return r.Static(file.Static.Prefix, root)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) {
	mux := stdhttp.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := stdhttp.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}

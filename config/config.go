package config

import "time"

type (
	AcceptBackoff struct {
		// Min is the first pause after a failed Accept() call. Every next consecutive
		// failure doubles it.
		Min time.Duration `yaml:"min"`
		// Max limits the pause.
		Max time.Duration `yaml:"max"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. The request line must fit into it completely, as exactly one read per
		// connection is made.
		ReadBufferSize int `yaml:"read_buffer_size"`
		// WriteBufferSize is the initial capacity of the buffer responses are serialized
		// into. It grows if a response doesn't fit.
		WriteBufferSize int `yaml:"write_buffer_size"`
		// ReadTimeout limits how long the server waits for the request. Zero disables it,
		// so the read blocks until the data arrives or the connection errors.
		ReadTimeout time.Duration `yaml:"read_timeout"`
		// WriteTimeout limits how long writing the response may take. Zero disables it.
		WriteTimeout time.Duration `yaml:"write_timeout"`
		// Concurrent serves every connection in its own goroutine. By default, connections
		// are served one by one in order of acceptance, and the router is never called
		// concurrently.
		Concurrent bool `yaml:"concurrent"`
		// AcceptBackoff controls pauses after failed Accept() calls, so a persistent error
		// (e.g. running out of file descriptors) doesn't spin the loop.
		AcceptBackoff AcceptBackoff `yaml:"accept_backoff"`
	}
)

// Config holds settings used across various parts of the server, mainly limitations
// and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, or pass it through Fill first.
type Config struct {
	NET NET `yaml:"net"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			AcceptBackoff: AcceptBackoff{
				Min: 5 * time.Millisecond,
				Max: time.Second,
			},
		},
	}
}

// Fill replaces all the zero sizes and backoffs with defaults. Timeouts and flags are
// kept as is, as zero is a meaningful value for them.
func Fill(cfg *Config) *Config {
	if cfg == nil {
		return Default()
	}

	def := Default()
	filled := *cfg

	if filled.NET.ReadBufferSize <= 0 {
		filled.NET.ReadBufferSize = def.NET.ReadBufferSize
	}

	if filled.NET.WriteBufferSize <= 0 {
		filled.NET.WriteBufferSize = def.NET.WriteBufferSize
	}

	if filled.NET.AcceptBackoff.Min <= 0 {
		filled.NET.AcceptBackoff.Min = def.NET.AcceptBackoff.Min
	}

	if filled.NET.AcceptBackoff.Max < filled.NET.AcceptBackoff.Min {
		filled.NET.AcceptBackoff.Max = max(def.NET.AcceptBackoff.Max, filled.NET.AcceptBackoff.Min)
	}

	return &filled
}

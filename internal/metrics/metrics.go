package metrics

import (
	"strconv"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what happens to connections. A nil *Metrics is valid and counts nothing.
type Metrics struct {
	accepted     prometheus.Counter
	acceptErrors prometheus.Counter
	ioErrors     *prometheus.CounterVec
	parseErrors  *prometheus.CounterVec
	responses    *prometheus.CounterVec
}

// New creates the collectors and registers them in reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indigo_connections_accepted_total",
			Help: "Connections accepted by the listener.",
		}),
		acceptErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indigo_accept_errors_total",
			Help: "Failed Accept() calls.",
		}),
		ioErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indigo_connection_errors_total",
			Help: "Connections dropped due to an I/O error, by the stage it happened at.",
		}, []string{"stage"}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indigo_parse_errors_total",
			Help: "Requests rejected by the parser, by the error kind.",
		}, []string{"kind"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indigo_responses_total",
			Help: "Responses fully written to the client, by the status code.",
		}, []string{"code"}),
	}

	for _, collector := range []prometheus.Collector{
		m.accepted, m.acceptErrors, m.ioErrors, m.parseErrors, m.responses,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) Accepted() {
	if m != nil {
		m.accepted.Inc()
	}
}

func (m *Metrics) AcceptError() {
	if m != nil {
		m.acceptErrors.Inc()
	}
}

// IOError counts a dropped connection. Stage is either "read" or "write".
func (m *Metrics) IOError(stage string) {
	if m != nil {
		m.ioErrors.WithLabelValues(stage).Inc()
	}
}

func (m *Metrics) ParseError(err error) {
	if m == nil {
		return
	}

	kind := "Unknown"
	if parseErr, ok := err.(http.ParseError); ok {
		kind = parseErr.Kind()
	}

	m.parseErrors.WithLabelValues(kind).Inc()
}

// Response counts a response that was fully written.
func (m *Metrics) Response(code status.Code) {
	if m != nil {
		m.responses.WithLabelValues(strconv.Itoa(int(code))).Inc()
	}
}

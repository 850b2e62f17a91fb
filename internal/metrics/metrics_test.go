package metrics

import (
	"errors"
	"testing"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.Accepted()
	m.Accepted()
	m.AcceptError()
	m.IOError("read")
	m.ParseError(http.ErrInvalidProtocol)
	m.ParseError(http.ErrInvalidProtocol)
	m.ParseError(errors.New("something else"))
	m.Response(status.OK)
	m.Response(status.NotFound)
	m.Response(status.NotFound)

	require.Equal(t, 2.0, testutil.ToFloat64(m.accepted))
	require.Equal(t, 1.0, testutil.ToFloat64(m.acceptErrors))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ioErrors.WithLabelValues("read")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.parseErrors.WithLabelValues("InvalidProtocol")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.parseErrors.WithLabelValues("Unknown")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.responses.WithLabelValues("200")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.responses.WithLabelValues("404")))
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Accepted()
		m.AcceptError()
		m.IOError("write")
		m.ParseError(http.ErrInvalidPath)
		m.Response(status.OK)
	})
}

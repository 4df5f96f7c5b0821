package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics(t *testing.T) {
	m := NewHTTP()

	done := m.Begin()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsInFlight))
	done("/files/*", http.MethodGet, http.StatusOK)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/files/*", http.MethodGet, "200")))

	m.AddBytes(DirectionOut, 42)
	m.AddBytes(DirectionOut, 0)
	assert.Equal(t, 42.0, testutil.ToFloat64(m.bytesTransferred.WithLabelValues(DirectionOut)))

	m.AddSwept(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sweptUploads))
}

// Два экземпляра не должны паниковать на повторной регистрации.
func TestNewHTTP_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = NewHTTP()
		_ = NewHTTP()
	})
}

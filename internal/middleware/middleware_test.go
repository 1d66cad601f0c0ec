package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcedure(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/golfstats.v1.GolfStatsService/GetCourseReport", want: "GetCourseReport"},
		{path: "/golfstats.v1.GolfStatsService/GetHolePars/", want: "GetHolePars"},
		{path: "/healthz", want: "/healthz"},
		{path: "/", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Procedure(tt.path))
		})
	}
}

func TestRequestID(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	var seen string
	handler := RequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodPost, "/golfstats.v1.GolfStatsService/GetPuttingAverage", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-7", seen)
	assert.Equal(t, "req-7", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, logs.String(), `"procedure":"GetPuttingAverage"`)
	assert.Contains(t, logs.String(), `"status":404`)

	// a missing header gets a generated id
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/golfstats.v1.GolfStatsService/GetHolePars", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.NotEqual(t, "req-7", seen)
}

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEndpointsCommandAllOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "endpoints", "--base-url", srv.URL, "--timeout", "1s")

	require.NoError(t, err)
	assert.Contains(t, out, "✅ /health/: 200")
	assert.Contains(t, out, "✅ /health/ready/: 200")
	assert.Contains(t, out, "✅ /health/live/: 200")
	assert.Contains(t, out, "Health check test completed!")
}

func TestEndpointsCommandFailsOn503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/ready/" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"not ready","error":"database unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	out, err := execute(t, "endpoints", "--base-url", srv.URL, "--timeout", "1s", "--retries", "1")

	assert.ErrorIs(t, err, errProbesFailed)
	assert.Contains(t, out, "❌ /health/ready/: 503")
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("EMAIL_HOST_PASSWORD", "app-password")

	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "✅ config is valid")
	assert.Contains(t, out, "email.password = ****")
	assert.NotContains(t, out, "app-password")
}

func TestConfigCommandInvalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:notaport/x")

	out, err := execute(t, "config")

	assert.Error(t, err)
	assert.Contains(t, out, "❌")
}

package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/r4nd0lph-c/Playground2D/internal/config"
	"github.com/r4nd0lph-c/Playground2D/internal/server"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testParams() server.Params {
	return server.Params{
		Name:           "testservice",
		PortFromConfig: func(_ *config.Config) int { return 0 },
	}
}

func TestRunGracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := newTestListener(t)
	addr := ln.Addr().String()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(ctx, testParams(), ln)
	}()

	waitForHealthy(t, addr)

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(server.ShutdownHTTPTimeout + 5*time.Second):
		t.Fatal("shutdown did not complete within budget")
	}
}

func TestTimeEndpoint(t *testing.T) {
	// Pause the clock at a known absolute time so the display is
	// deterministic regardless of tick timing.
	t.Setenv("CLOCK_PAUSED", "true")
	t.Setenv("CLOCK_START_ABSOLUTE", "90")
	t.Setenv("CLOCK_SCALE", "2")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := newTestListener(t)
	addr := ln.Addr().String()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(ctx, testParams(), ln)
	}()

	waitForHealthy(t, addr)

	resp, err := httpGet(t, fmt.Sprintf("http://%s/time", addr))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AbsoluteSeconds float64 `json:"absolute_seconds"`
		Display         string  `json:"display"`
		Scale           float64 `json:"scale"`
		Paused          bool    `json:"paused"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, 90.0, body.AbsoluteSeconds)
	assert.Equal(t, "0000-00-00 00:01:30.00", body.Display)
	assert.Equal(t, 2.0, body.Scale)
	assert.True(t, body.Paused)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{2}$`), body.Display)

	cancel()
	<-errCh
}

func TestTimeAdvancesWhileRunning(t *testing.T) {
	t.Setenv("CLOCK_TICK_INTERVAL", "10ms")
	t.Setenv("CLOCK_SCALE", "144")

	// The fast interval must actually reach the driver; at the 1s
	// default this test would only pass by luck of the polling window.
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10*time.Millisecond, cfg.Clock.TickInterval)
	require.Equal(t, 144.0, cfg.Clock.Scale)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := newTestListener(t)
	addr := ln.Addr().String()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(ctx, testParams(), ln)
	}()

	waitForHealthy(t, addr)

	first := readAbsolute(t, addr)
	eventually(t, 5*time.Second, func() bool {
		return readAbsolute(t, addr) > first
	})

	cancel()
	<-errCh
}

func TestHealthCheckReturns503DuringShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := newTestListener(t)
	addr := ln.Addr().String()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run(ctx, testParams(), ln)
	}()

	waitForHealthy(t, addr)

	cancel()

	// Health check should return 503 during the drain delay, before the
	// listener closes.
	eventually(t, 2*time.Second, func() bool {
		resp, err := httpGet(t, fmt.Sprintf("http://%s/healthz", addr))
		if err != nil {
			return false // server may have already stopped
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusServiceUnavailable
	})

	<-errCh // wait for clean exit
}

// readAbsolute fetches /time and returns the absolute-seconds scalar.
func readAbsolute(t *testing.T, addr string) float64 {
	t.Helper()
	resp, err := httpGet(t, fmt.Sprintf("http://%s/time", addr))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		AbsoluteSeconds float64 `json:"absolute_seconds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.AbsoluteSeconds
}

// newTestListener creates a TCP listener on an OS-assigned port.
func newTestListener(t *testing.T) net.Listener {
	t.Helper()
	ln, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create test listener: %v", err)
	}
	t.Cleanup(http.DefaultClient.CloseIdleConnections)
	return ln
}

// waitForHealthy polls the health endpoint until it returns 200.
func waitForHealthy(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := httpGet(t, fmt.Sprintf("http://%s/healthz", addr))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server at %s not healthy within 5s", addr)
}

// httpGet performs an HTTP GET with a background context (satisfies noctx linter).
func httpGet(t *testing.T, url string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

// eventually retries f until it returns true or timeout expires.
func eventually(t *testing.T, timeout time.Duration, f func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if f() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

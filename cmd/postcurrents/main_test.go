package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spencer-p/nykpcurrents/pkg/config"
)

const noaaResponse = `{"current_predictions": {"units": "knots", "cp": [
 {"Type":"flood","Time":"2024-01-01 05:00","Velocity_Major":2.0},
 {"Type":"slack","Time":"2024-01-01 08:12","Velocity_Major":0.0}
]}}`

// clearEnv unsets every setting config.Load reads, so a shell or CI job with
// real Slack, database or Pushgateway settings cannot leak into a run. Unset
// rather than blank, since envconfig only applies defaults to unset names.
// t.Setenv restores the original values when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	typ := reflect.TypeOf(config.Config{})
	for i := 0; i < typ.NumField(); i++ {
		name := typ.Field(i).Tag.Get("envconfig")
		if name == "" {
			continue
		}
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("unset %s: %v", name, err)
		}
	}
}

func noaaServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunDryRun(t *testing.T) {
	clearEnv(t)
	srv := noaaServer(t, http.StatusOK, noaaResponse)
	t.Setenv("NOAA_URL", srv.URL)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--dry-run", "--date", "20240101"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	want := "*New NOAA current predictions at Hudson River Entrance*\n" +
		"https://tidesandcurrents.noaa.gov/noaacurrents/predictions.html?id=NYH1927_13&d=2024-01-01\n" +
		"\n" +
		"2024-01-01 05:00  Max Flood (2.3 mph)\n" +
		"2024-01-01 08:12  Slack\n"
	assert.Equal(t, want, stdout.String())
}

func TestRunWebhook(t *testing.T) {
	clearEnv(t)
	srv := noaaServer(t, http.StatusOK, noaaResponse)
	t.Setenv("NOAA_URL", srv.URL)

	posts := 0
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		posts++
		fmt.Fprint(w, "ok")
	}))
	defer slack.Close()
	t.Setenv("SLACK_WEBHOOK_URL", slack.URL)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--station", "ACT3876"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, 1, posts)
	assert.Empty(t, stdout.String())
}

func TestRunFailures(t *testing.T) {
	clearEnv(t)
	t.Run("bad flag", func(t *testing.T) {
		clearEnv(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run(context.Background(), []string{"--pdb"}, &stdout, &stderr))
	})

	t.Run("no destination", func(t *testing.T) {
		clearEnv(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(context.Background(), nil, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "SLACK_WEBHOOK_URL")
	})

	t.Run("noaa down with debug trace", func(t *testing.T) {
		clearEnv(t)
		srv := noaaServer(t, http.StatusBadGateway, "upstream down")
		t.Setenv("NOAA_URL", srv.URL)

		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--dry-run", "--debug"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "status 502")
		assert.Contains(t, stderr.String(), "GetCurrentPredictions")
		assert.Empty(t, stdout.String())
	})
}

func TestRunIgnoresAmbientSettings(t *testing.T) {
	// settings a developer shell or scheduled job would carry
	t.Setenv("SLACK_WEBHOOK_URL", "http://127.0.0.1:1/hook")
	t.Setenv("DATABASE_URL", "host=127.0.0.1 port=1 user=postgres dbname=currents")
	t.Setenv("PUSHGATEWAY_URL", "http://127.0.0.1:1")
	t.Setenv("LOG_LEVEL", "loud")
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SlackWebhookURL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

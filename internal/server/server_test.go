package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/metrics"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func TestHealthz(t *testing.T) {
	req, err := http.NewRequest("GET", "/healthz", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(healthz)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name         string
		store        Pinger
		expectedCode int
	}{
		{name: "store reachable", store: fakePinger{}, expectedCode: http.StatusOK},
		{name: "store down", store: fakePinger{err: errors.New("database is closed")}, expectedCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(":0", tt.store)
			req, err := http.NewRequest("GET", "/readyz", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.FilesIndexed.Inc()

	srv := New(":0", fakePinger{})
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "autofilter_files_indexed_total")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("AUTOFILTER_DB_PATH", "/tmp/files.db")
	t.Setenv("LOG_CHANNEL_ID", "-1002")
	t.Setenv("FILES_CHANNEL_ID", "-1001")
	t.Setenv("ADMIN_IDS", "123,4567890")

	cfg := Config{}
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, []int64{123, 4567890}, cfg.AdminIDs)
	assert.Equal(t, 30*time.Second, cfg.DeleteDelay)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 8, cfg.Workers)

	bc := BotConfig(&cfg, "filterbot")
	assert.Equal(t, int64(-1001), bc.SourceChannelID)
	assert.Equal(t, int64(-1002), bc.LogChannelID)
	assert.Equal(t, "filterbot", bc.Username)
}

func TestConfigRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	cfg := Config{}
	assert.Error(t, env.Parse(&cfg))
}

package gateway_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lci-gateway/internal/infra"
	"lci-gateway/internal/infra/gateway"
	"lci-gateway/pkg/lci"
)

const thingsJSON = `[
	{"UID": "idsmyrv:gateway:1", "label": "Gateway"},
	{"UID": "idsmyrv:tank:2", "label": "Fresh Water", "configuration": {"deviceType": 10}},
	{"UID": "idsmyrv:hvac:3", "label": "Front AC", "configuration": {"deviceType": 16}}
]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastRetry() infra.RetryConfig {
	return infra.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
}

func TestRegistry_SyncRetriesUnavailableGateway(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, thingsJSON)
	}))
	defer server.Close()

	registry := gateway.NewRegistry(lci.NewClient(server.URL), fastRetry(), testLogger())

	require.NoError(t, registry.Sync(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, registry.Things(), 3)

	ac, ok := registry.FindByLabel("front ac")
	require.True(t, ok)
	assert.Equal(t, lci.DeviceTypeHvac, ac.Type())
}

func TestRegistry_SyncDoesNotRetryBadJSON(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, "{not json")
	}))
	defer server.Close()

	registry := gateway.NewRegistry(lci.NewClient(server.URL), fastRetry(), testLogger())

	err := registry.Sync(context.Background())
	var getErr *lci.GetError
	require.ErrorAs(t, err, &getErr)
	assert.Equal(t, lci.StageDecode, getErr.Stage)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, registry.Things())
}

func TestRegistry_ThingsAreCopies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, thingsJSON)
	}))
	defer server.Close()

	registry := gateway.NewRegistry(lci.NewClient(server.URL), fastRetry(), testLogger())
	require.NoError(t, registry.Sync(context.Background()))

	things := registry.Things()
	things[1].Label = "changed"

	assert.Equal(t, "Fresh Water", registry.Things()[1].Label)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unreachable", &lci.GetError{Stage: lci.StageRequest}, true},
		{"503", &lci.GetError{Stage: lci.StageStatus, StatusCode: 503}, true},
		{"404", &lci.GetError{Stage: lci.StageStatus, StatusCode: 404}, false},
		{"decode", &lci.GetError{Stage: lci.StageDecode}, false},
		{"other", errors.New("other"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateway.IsRetryable(tt.err))
		})
	}
}

package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lci-gateway/internal/application"
	"lci-gateway/internal/domain"
	"lci-gateway/pkg/lci"
)

// itemServer answers /rest/items/<name> from a map; unknown items are 404.
type itemServer struct {
	mu    sync.Mutex
	items map[string]string
}

func newItemServer(t *testing.T, items map[string]string) (*itemServer, *lci.Client) {
	t.Helper()
	s := &itemServer{items: items}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/rest/items/")
		s.mu.Lock()
		state, ok := s.items[name]
		s.mu.Unlock()
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"link": r.URL.String(), "state": state})
	}))
	t.Cleanup(server.Close)
	return s, lci.NewClient(server.URL)
}

func (s *itemServer) set(name, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[name] = state
}

func thing(uid, label string, code float64) lci.Thing {
	return lci.Thing{UID: uid, Label: label, Configuration: lci.Configuration{DeviceType: &code}}
}

type mockRegistry struct {
	things  []lci.Thing
	syncErr error
	syncs   int
}

func (m *mockRegistry) Sync(_ context.Context) error {
	m.syncs++
	return m.syncErr
}

func (m *mockRegistry) Things() []lci.Thing { return m.things }

type mockPublisher struct {
	mu        sync.Mutex
	published []domain.DeviceSnapshot
	done      chan struct{}
	expected  int
}

func (m *mockPublisher) Publish(_ context.Context, snap domain.DeviceSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, snap)
	if m.done != nil && len(m.published) == m.expected {
		close(m.done)
	}
	return nil
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Notify(_ context.Context, title, message string) error {
	m.messages = append(m.messages, title+": "+message)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadSnapshot_HVAC(t *testing.T) {
	_, client := newItemServer(t, map[string]string{
		"hvac_1_online":              "ON",
		"hvac_1_status":              "COOLING",
		"hvac_1_outside_temperature": "88.5 °F",
		"hvac_1_inside_temperature":  "74",
		"hvac_1_high_temperature":    "76",
		"hvac_1_low_temperature":     "68",
		"hvac_1_fan_mode":            "AUTO",
		"hvac_1_hvac_mode":           "HEATCOOL",
	})

	snap, err := application.ReadSnapshot(context.Background(), client, thing("hvac:1", "Front AC", 16))
	require.NoError(t, err)

	assert.Equal(t, "ON", snap.Online)
	assert.Equal(t, "COOLING", snap.Values[domain.KeyStatus])
	assert.Equal(t, 88.5, snap.Values[domain.KeyOutsideTemperature])
	assert.Equal(t, "HEATCOOL", snap.Values[domain.KeyMode])
	assert.Empty(t, snap.Errors)
}

func TestReadSnapshot_PartialFailure(t *testing.T) {
	_, client := newItemServer(t, map[string]string{
		"sw_1_online": "ON",
		"sw_1_switch": "ON",
		"sw_1_fault":  "OFF",
	})

	snap, err := application.ReadSnapshot(context.Background(), client, thing("sw:1", "Water Pump", 30))
	require.NoError(t, err)

	assert.Equal(t, "ON", snap.Values[domain.KeyState])
	assert.Equal(t, false, snap.Values[domain.KeyFault])
	assert.NotContains(t, snap.Values, domain.KeyRelayCurrent)
	assert.Contains(t, snap.Errors[domain.KeyRelayCurrent], "404")
}

func TestReadSnapshot_Unsupported(t *testing.T) {
	_, client := newItemServer(t, map[string]string{})

	_, err := application.ReadSnapshot(context.Background(), client, thing("rgb:1", "Awning Lights", 13))
	assert.ErrorIs(t, err, application.ErrUnsupportedDevice)

	_, err = application.ReadSnapshot(context.Background(), client, lci.Thing{UID: "gw", Label: "Gateway"})
	assert.ErrorIs(t, err, application.ErrUnsupportedDevice)
}

func TestReadSnapshots_SkipsUnsupportedAndKeepsOrder(t *testing.T) {
	_, client := newItemServer(t, map[string]string{
		"tank_1_online":     "ON",
		"tank_1_tank_level": "66",
		"dim_2_online":      "ON",
		"dim_2_dimmer":      "40",
	})

	things := []lci.Thing{
		{UID: "gw", Label: "Gateway"},
		thing("tank:1", "Fresh Water", 10),
		thing("rgb:9", "Awning", 13),
		thing("dim:2", "Kitchen", 20),
	}

	snaps, err := application.ReadSnapshots(context.Background(), client, things, 2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	assert.Equal(t, "Fresh Water", snaps[0].Label)
	assert.Equal(t, 66, snaps[0].Values[domain.KeyLevel])
	assert.Equal(t, "Kitchen", snaps[1].Label)
	assert.Equal(t, 40, snaps[1].Values[domain.KeyBrightness])
}

func TestMonitor_PollAlertsOnTransitions(t *testing.T) {
	items, client := newItemServer(t, map[string]string{
		"tank_1_online":     "ON",
		"tank_1_tank_level": "30",
		"gen_2_online":      "ON",
		"gen_2_state":       "OFF",
	})

	registry := &mockRegistry{things: []lci.Thing{
		thing("tank:1", "Grey Water", 10),
		thing("gen:2", "Generator", 24),
	}}
	publisher := &mockPublisher{}
	notifier := &mockNotifier{}

	monitor := application.NewMonitor(client, registry, publisher, notifier, application.MonitorConfig{
		Interval:    time.Hour,
		Concurrency: 2,
		Alerts:      domain.AlertConfig{TankLow: 20},
	}, testLogger())

	ctx := context.Background()
	require.NoError(t, monitor.Poll(ctx))
	assert.Empty(t, notifier.messages)

	items.set("tank_1_tank_level", "10")
	items.set("gen_2_state", "STARTING")
	require.NoError(t, monitor.Poll(ctx))

	assert.Equal(t, []string{
		"Generator: Generator is now Starting (was Off)",
		"Grey Water: Grey Water is at 10%",
	}, notifier.messages)

	require.NoError(t, monitor.Poll(ctx))
	assert.Len(t, notifier.messages, 2, "no repeat alerts while nothing changes")
	assert.Len(t, publisher.published, 6)
}

func TestMonitor_Run(t *testing.T) {
	_, client := newItemServer(t, map[string]string{
		"tank_1_online":     "ON",
		"tank_1_tank_level": "50",
	})

	registry := &mockRegistry{things: []lci.Thing{thing("tank:1", "Fresh Water", 10)}}
	publisher := &mockPublisher{done: make(chan struct{}), expected: 2}

	monitor := application.NewMonitor(client, registry, publisher, &application.NoopNotifier{}, application.MonitorConfig{
		Interval:    10 * time.Millisecond,
		Concurrency: 1,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- monitor.Run(ctx) }()

	select {
	case <-publisher.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for two polls")
	}

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, 1, registry.syncs)
}

func TestMonitor_RunFailsWhenDiscoveryFails(t *testing.T) {
	_, client := newItemServer(t, map[string]string{})
	down := errors.New("gateway down")
	registry := &mockRegistry{syncErr: down}

	monitor := application.NewMonitor(client, registry, &application.NoopPublisher{}, &application.NoopNotifier{},
		application.MonitorConfig{Interval: time.Second, Concurrency: 1}, testLogger())

	err := monitor.Run(context.Background())
	assert.ErrorIs(t, err, down)
}

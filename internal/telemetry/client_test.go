package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEnqueuer captures events for testing.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]posthog.Capture(nil), m.events...)
}

func newTestClient(cfg *Config, version string) (*PostHogClient, *mockEnqueuer) {
	mock := &mockEnqueuer{}
	return newPostHogClientWithEnqueuer(mock, cfg, version), mock
}

func enabledConfig() *Config {
	return &Config{Enabled: true, ConsentAsked: true, AnonymousID: "anon-123"}
}

func TestPostHogClient_Track_WhenEnabled(t *testing.T) {
	client, mock := newTestClient(enabledConfig(), "1.2.3")

	client.Track(EventPlanGenerated, Properties{"surface": "generate", "day_count": 7})

	events := mock.getEvents()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, EventPlanGenerated, ev.Event)
	assert.Equal(t, "anon-123", ev.DistinctId)
	assert.Equal(t, "generate", ev.Properties["surface"])
	assert.Equal(t, 7, ev.Properties["day_count"])
	assert.Equal(t, runtime.GOOS, ev.Properties["os"])
	assert.Equal(t, runtime.GOARCH, ev.Properties["arch"])
	assert.Equal(t, "1.2.3", ev.Properties["app_version"])
	assert.Equal(t, false, ev.Properties["$process_person_profile"])
}

func TestPostHogClient_Track_DropsProfileFields(t *testing.T) {
	client, mock := newTestClient(enabledConfig(), "1.0.0")

	client.Track(EventPlanSubmitted, Properties{
		"age":            "30",
		"weight_kg":      "70",
		"height-cm":      "170",
		"goal":           "loss",
		"calorie_target": nil,
		"bmi":            24.2,
		"surface":        "form",
	})

	events := mock.getEvents()
	require.Len(t, events, 1)
	props := events[0].Properties
	for _, k := range []string{"age", "weight_kg", "height-cm", "goal", "calorie_target", "bmi"} {
		assert.NotContains(t, props, k)
	}
	assert.Equal(t, "form", props["surface"])
}

func TestPostHogClient_Track_WhenDisabled(t *testing.T) {
	cfg := enabledConfig()
	cfg.Disable()
	client, mock := newTestClient(cfg, "1.0.0")

	client.Track(EventPlanSubmitted, nil)
	assert.Empty(t, mock.getEvents())
}

func TestPostHogClient_Track_NilConfig(t *testing.T) {
	mock := &mockEnqueuer{}
	client := &PostHogClient{client: mock, initialized: true}

	client.Track(EventPlanSubmitted, nil)
	assert.Empty(t, mock.getEvents())
}

func TestPostHogClient_Track_NotInitialized(t *testing.T) {
	client := &PostHogClient{config: enabledConfig()}
	assert.NotPanics(t, func() { client.Track(EventPlanSubmitted, nil) })
	assert.NoError(t, client.Close())
}

func TestPostHogClient_Close(t *testing.T) {
	client, mock := newTestClient(enabledConfig(), "1.0.0")
	require.NoError(t, client.Close())
	assert.True(t, mock.closed)
}

func TestNewPostHogClient_WithoutAPIKey(t *testing.T) {
	client, err := NewPostHogClient(ClientConfig{Config: enabledConfig(), Version: "1.0.0"})
	require.NoError(t, err)
	assert.False(t, client.initialized)
}

func TestNew_ReturnsNoopUnlessEnabledWithKey(t *testing.T) {
	disabled := &Config{AnonymousID: "x"}

	assert.IsType(t, NoopClient{}, New(ClientConfig{}))
	assert.IsType(t, NoopClient{}, New(ClientConfig{Config: enabledConfig()}))
	assert.IsType(t, NoopClient{}, New(ClientConfig{APIKey: "phc_test", Config: disabled}))

	c := New(ClientConfig{APIKey: "phc_test", Config: enabledConfig(), Endpoint: "http://127.0.0.1:1"})
	require.IsType(t, &PostHogClient{}, c)
	assert.NoError(t, c.Close())
}

func TestNoopClient(t *testing.T) {
	var c Client = NoopClient{}
	c.Track(EventPlanFailed, Properties{"error_kind": "timeout"})
	assert.NoError(t, c.Close())
}

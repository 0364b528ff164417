package planclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{"plan":{"days":[{"Breakfast":{"recipe_name":"Poha","calories":350.0,"protein_g":8,"carbs_g":60,"fat_g":7,"ingredients":"rice flakes","preparation":"steam"}}]},"workout":["Walk"]}`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: url, UserAgent: "charm/test"})
	require.NoError(t, err)
	return c
}

func testPayload(t *testing.T) RequestPayload {
	t.Helper()
	p, err := BuildRequest(validProfile())
	require.NoError(t, err)
	return p
}

func TestNewClient(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := NewClient(Config{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "base URL is required")
	})

	t.Run("joins endpoint path", func(t *testing.T) {
		c, err := NewClient(Config{BaseURL: "http://localhost:8000/"})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/generate_plan", c.Endpoint())
	})
}

func TestClient_Submit_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate_plan", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "charm/test", r.Header.Get("User-Agent"))
		assert.Len(t, r.Header.Get("X-Request-ID"), 36)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(23), body["age"])
		assert.Contains(t, body, "calorie_target")
		assert.Nil(t, body["calorie_target"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, okBody)
	}))
	defer server.Close()

	weekly, err := newTestClient(t, server.URL).Submit(context.Background(), testPayload(t))
	require.NoError(t, err)
	require.Len(t, weekly.Days, 1)
	assert.Equal(t, []string{"Walk"}, weekly.Workout)
}

func TestClient_Submit_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{
			name:   "single field error",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","age"],"msg":"field required","type":"missing"}]}`,
			detail: "body.age: field required",
		},
		{
			name:   "all field errors are joined",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","age"],"msg":"field required"},{"loc":["body","days",0],"msg":"bad"}]}`,
			detail: "body.age: field required; body.days.0: bad",
		},
		{
			name:   "string detail",
			status: http.StatusBadRequest,
			body:   `{"detail":"Dataset not loaded"}`,
			detail: "Dataset not loaded",
		},
		{
			name:   "no detail falls back to status text",
			status: http.StatusInternalServerError,
			body:   `{"error":"boom"}`,
			detail: "Internal Server Error",
		},
		{
			name:   "non json body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			detail: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			weekly, err := newTestClient(t, server.URL).Submit(context.Background(), testPayload(t))
			assert.Nil(t, weekly)

			var se *SubmitError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindRejected, se.Kind)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.detail, se.Detail())
			assert.Contains(t, se.Error(), tt.detail)
		})
	}
}

func TestClient_Submit_Malformed(t *testing.T) {
	for _, body := range []string{`not json`, `{}`, `{"plan":{}}`, `{"plan":{"days":[]}}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		}))

		weekly, err := newTestClient(t, server.URL).Submit(context.Background(), testPayload(t))
		server.Close()

		assert.Nil(t, weekly)
		assert.True(t, IsKind(err, KindMalformed), "body %q: %v", body, err)
	}
}

func TestClient_Submit_Transport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Submit(context.Background(), testPayload(t))

	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindTransport, se.Kind)
	assert.True(t, strings.HasPrefix(se.Error(), "plan service unreachable"))
}

func TestClient_Submit_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), testPayload(t))
	assert.True(t, IsKind(err, KindTimeout), "got %v", err)
}

func TestClient_Submit_Cancelled(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := newTestClient(t, server.URL).Submit(ctx, testPayload(t))
	assert.True(t, IsKind(err, KindCancelled), "got %v", err)
	assert.Equal(t, "plan request cancelled", err.Error())
	assert.Equal(t, int32(1), hits.Load(), "no retry")
}

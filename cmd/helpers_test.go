package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"

	"github.com/josephgoksu/charm/internal/telemetry"
	"github.com/josephgoksu/charm/types"
)

const weekBody = `{"plan":{"days":[
 {"Breakfast":{"recipe_name":"Poha","calories":350.0,"protein_g":8,"carbs_g":60,"fat_g":7,"ingredients":"rice flakes","preparation":"steam"},
  "Lunch":{"recipe_name":"Dal","calories":500,"protein_g":20,"carbs_g":70,"fat_g":10,"ingredients":"lentils","preparation":"boil"},
  "Dinner":{"recipe_name":"Khichdi","calories":450,"protein_g":15,"carbs_g":65,"fat_g":9,"ingredients":"rice, lentils","preparation":"pressure cook"}},
 {"Breakfast":{"recipe_name":"Upma","calories":300,"protein_g":7,"carbs_g":50,"fat_g":6,"ingredients":"semolina","preparation":"roast"}}
]},"workout":["Brisk walk 30 min"]}`

// fakePlanService answers /generate_plan with status and body and records requests.
type fakePlanService struct {
	*httptest.Server
	calls atomic.Int32
	mu    sync.Mutex
	last  map[string]any
}

func newFakePlanService(t *testing.T, status int, body string) *fakePlanService {
	t.Helper()
	f := &fakePlanService{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		data, _ := io.ReadAll(r.Body)
		var req map[string]any
		_ = json.Unmarshal(data, &req)
		f.mu.Lock()
		f.last = req
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakePlanService) lastRequest() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// setupTestEnv points the commands at baseURL with telemetry off and restores
// global state afterwards.
func setupTestEnv(t *testing.T, baseURL string) {
	t.Helper()
	viper.Reset()
	viper.Set("service.baseURL", baseURL)
	viper.Set("service.timeoutSeconds", 5)
	GlobalAppConfig = types.AppConfig{Telemetry: types.TelemetryConfig{Disabled: true}}
	telemetry.SetConfigDir(t.TempDir())

	t.Cleanup(func() {
		viper.Reset()
		GlobalAppConfig = types.AppConfig{}
		telemetry.SetConfigDir("")
	})
}

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reading test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/config"
	"github.com/Conceptual-Machines/verse-api/internal/metrics"
	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerseService returns a fixed poem for any valid selection
type stubVerseService struct{}

func (stubVerseService) Generate(_ context.Context, sel models.Selection) (*models.GeneratedResult, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return &models.GeneratedResult{Poem: "Hark!", Title: sel.Language.DefaultTitle()}, nil
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment:       "test",
		UpstreamBaseURL:   "https://text.example",
		UpstreamModel:     "openai",
		PrimaryTransport:  config.TransportPayload,
		UpstreamTimeout:   time.Second,
		CORSAllowedOrigin: "*",
	}
	return SetupRouter(cfg, stubVerseService{}, metrics.NewDisabledClient("test"), "test")
}

func TestHealthRoute(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"status":"healthy","upstream":{"base_url":"https://text.example","primary_transport":"payload"}}`,
		w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsRoute(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp["version"])
	assert.Equal(t, "0s", resp["uptime"])
	assert.NotContains(t, resp, "system")
	upstream := resp["upstream"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"base_url":           "https://text.example",
		"model":              "openai",
		"primary_transport":  "payload",
		"attempt_timeout_ms": float64(1000),
	}, upstream)
}

func TestGeneratePoemRoutes(t *testing.T) {
	router := setupTestRouter()
	body := `{"character":"hero","location":"castle","event":"battle","emotion":"joy","language":"chinese"}`

	for _, path := range []string{"/generate-poem", "/api/generate-poem"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"poem":"Hark!","title":"古风诗篇"}`, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestPreflight(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/generate-poem", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

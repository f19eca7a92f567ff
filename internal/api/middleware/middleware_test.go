package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Conceptual-Machines/verse-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	router.GET("/panic", func(*gin.Context) {
		panic("quill snapped")
	})
	return router
}

func TestRequestTrackingSetsRequestID(t *testing.T) {
	router := newTestEngine(RequestTracking(metrics.NewDisabledClient("test")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, requestID, w.Body.String())
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantOrigin string
	}{
		{name: "wildcard by default", origin: "", method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: "*"},
		{name: "configured origin", origin: "https://verse.example", method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: "https://verse.example"},
		{name: "preflight", origin: "*", method: http.MethodOptions, wantStatus: http.StatusNoContent, wantOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestEngine(CORS(tt.origin))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, "/ping", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		})
	}
}

func TestRecoverWithSentry(t *testing.T) {
	router := newTestEngine(RecoverWithSentry(), RequestTracking(nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"error":"Internal server error","request_id":"`+w.Header().Get("X-Request-ID")+`"}`,
		w.Body.String())
}

func TestRouteLabel(t *testing.T) {
	var labels []string
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		labels = append(labels, routeLabel(c))
	})
	router.GET("/poems/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/poems/7", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []string{"/poems/:id", "unmatched"}, labels)
}

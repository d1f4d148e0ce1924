package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"edge-header-policy/internal/models"
)

func newTestEngine(logger logrus.FieldLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), CORS(), StructuredLogger(logger), EnhancedErrorHandler(logger))
	return router
}

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, &buf
}

func TestRequestID(t *testing.T) {
	logger, buf := newBufferedLogger()
	router := newTestEngine(logger)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "edge-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != "edge-123" || w.Header().Get(RequestIDHeader) != "edge-123" {
		t.Errorf("Expected incoming request ID to propagate, got body=%q header=%q", w.Body.String(), w.Header().Get(RequestIDHeader))
	}
	if !strings.Contains(buf.String(), `"request_id":"edge-123"`) {
		t.Errorf("Expected request ID in log, got %s", buf.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("Expected generated UUID, got %q", w.Header().Get(RequestIDHeader))
	}
}

func TestCORSPreflight(t *testing.T) {
	logger, _ := newBufferedLogger()
	router := newTestEngine(logger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/anything", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestEnhancedErrorHandler(t *testing.T) {
	logger, _ := newBufferedLogger()
	router := newTestEngine(logger)

	router.GET("/validation", func(c *gin.Context) {
		_ = c.Error(models.ValidationErrors{{Field: "Event.Records", Tag: "min", Message: "Event.Records must have at least 1 element(s)"}}).SetType(gin.ErrorTypeBind)
	})
	router.GET("/public", func(c *gin.Context) {
		_ = c.Error(errors.New("bad input")).SetType(gin.ErrorTypePublic)
	})
	router.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("secret detail"))
	})

	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{"/validation", http.StatusBadRequest, "Validation failed"},
		{"/public", http.StatusBadRequest, "Request failed"},
		{"/private", http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantCode {
				t.Fatalf("Expected %d, got %d", tt.wantCode, w.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tt.wantErr {
				t.Errorf("Expected error %q, got %q", tt.wantErr, resp.Error)
			}
			if resp.RequestID == "" {
				t.Error("Expected request ID in error response")
			}
			if strings.Contains(w.Body.String(), "secret detail") {
				t.Error("Private error details must not leak")
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	logger, buf := newBufferedLogger()
	router := newTestEngine(logger)
	router.Use(RateLimiter(logger, 0.001, 1))
	router.GET("/limited", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("First request should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "Rate limit exceeded") {
		t.Errorf("Expected rate limit warning on the injected logger, got %s", buf.String())
	}
}

func TestRequestSizeLimit_UnknownLength(t *testing.T) {
	logger, _ := newBufferedLogger()
	router := newTestEngine(logger)
	router.Use(RequestSizeLimit(8))
	router.POST("/upload", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"key":"a value well past the limit"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("Expected 413, got %d: %s", w.Code, w.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Request too large" {
		t.Errorf("Expected error %q, got %q", "Request too large", resp.Error)
	}
}

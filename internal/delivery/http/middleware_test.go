package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name           string
		origin         string
		allowedOrigins []string
		want           bool
	}{
		{
			name:           "exact match",
			origin:         "https://shop.example.com",
			allowedOrigins: []string{"https://shop.example.com"},
			want:           true,
		},
		{
			name:           "wildcard port match",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{"http://localhost:*"},
			want:           true,
		},
		{
			name:           "multiple allowed origins - matches second",
			origin:         "https://shop.example.com",
			allowedOrigins: []string{"http://localhost:*", "https://shop.example.com"},
			want:           true,
		},
		{
			name:           "no match",
			origin:         "http://evil.com",
			allowedOrigins: []string{"http://localhost:*"},
			want:           false,
		},
		{
			name:           "empty origin",
			origin:         "",
			allowedOrigins: []string{"*"},
			want:           false,
		},
		{
			name:           "empty allowed list",
			origin:         "http://localhost:3000",
			allowedOrigins: []string{},
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isAllowedOrigin(tt.origin, tt.allowedOrigins)
			if got != tt.want {
				t.Errorf("isAllowedOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
		wantCORS   bool
	}{
		{"allowed origin - GET request", "http://localhost:5173", "GET", http.StatusOK, true},
		{"allowed origin - OPTIONS request", "http://localhost:5173", "OPTIONS", http.StatusNoContent, true},
		{"disallowed origin", "http://evil.com", "GET", http.StatusOK, false},
		{"no origin header", "", "GET", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware([]string{"http://localhost:*"}))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "OK")
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}

			corsHeader := w.Header().Get("Access-Control-Allow-Origin")
			if tt.wantCORS {
				if corsHeader != tt.origin {
					t.Errorf("Access-Control-Allow-Origin = %s, want %s", corsHeader, tt.origin)
				}
				if w.Header().Get("Access-Control-Allow-Headers") == "" {
					t.Errorf("Access-Control-Allow-Headers not set")
				}
			} else if corsHeader != "" {
				t.Errorf("Access-Control-Allow-Origin should not be set, got %s", corsHeader)
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(LoggerMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("logged %d entries, want 3", len(entries))
	}

	wantLevels := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, entry := range entries {
		if entry.Level != wantLevels[i] {
			t.Errorf("entry %d level = %s, want %s", i, entry.Level, wantLevels[i])
		}
	}

	fields := entries[0].ContextMap()
	if fields["path"] != "/ok" {
		t.Errorf("path field = %v, want /ok", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status field = %v, want 200", fields["status"])
	}
	if fields["method"] != http.MethodGet {
		t.Errorf("method field = %v, want GET", fields["method"])
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("limits per client IP", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(1, 1))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		send := func(ip string) int {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = ip + ":1234"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		if code := send("10.0.0.1"); code != http.StatusOK {
			t.Errorf("first request = %d, want 200", code)
		}
		if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
			t.Errorf("second request = %d, want 429", code)
		}
		if code := send("10.0.0.2"); code != http.StatusOK {
			t.Errorf("other IP = %d, want 200", code)
		}
	})

	t.Run("forwarded header from untrusted peer is ignored", func(t *testing.T) {
		router := gin.New()
		if err := router.SetTrustedProxies(nil); err != nil {
			t.Fatalf("SetTrustedProxies() error = %v", err)
		}
		router.Use(RateLimitMiddleware(1, 1))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		allowed := 0
		for i := 0; i < 50; i++ {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code == http.StatusOK {
				allowed++
			}
		}

		if allowed != 1 {
			t.Errorf("allowed = %d, want 1", allowed)
		}
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(0, 0))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("request %d = %d, want 200", i, w.Code)
			}
		}
	})
}

func TestIPLimiter_SweepsIdleBuckets(t *testing.T) {
	limiter := newIPLimiter(60, 1)
	start := time.Now()

	for i := 0; i < 10; i++ {
		limiter.allow(fmt.Sprintf("198.51.100.%d", i), start)
	}
	if limiter.size() != 10 {
		t.Fatalf("size() = %d, want 10", limiter.size())
	}

	// A bucket still in use survives the sweep with its tokens spent
	later := start.Add(limiter.idleTTL)
	if !limiter.allow("192.0.2.1", later) {
		t.Error("fresh IP should be allowed")
	}
	if limiter.size() != 1 {
		t.Errorf("size() after sweep = %d, want 1", limiter.size())
	}
	if limiter.allow("192.0.2.1", later) {
		t.Error("second request in the same instant should be limited")
	}
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(SessionMiddleware("sid", time.Hour, false))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, SessionID(c))
		})
		return router
	}

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(SessionHeader, testSession)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "11111111-1111-1111-1111-111111111111"})
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		if w.Body.String() != testSession {
			t.Errorf("SessionID = %s, want %s", w.Body.String(), testSession)
		}
	})

	t.Run("cookie is used when header is absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: testSession})
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		if w.Body.String() != testSession {
			t.Errorf("SessionID = %s, want %s", w.Body.String(), testSession)
		}
	})

	t.Run("issues a new ID and cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Body.String()
		if !validSessionID(id) {
			t.Fatalf("SessionID = %q, want a UUID", id)
		}
		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Value != id {
			t.Errorf("cookies = %v, want sid=%s", cookies, id)
		}
		if cookies[0].MaxAge != 3600 {
			t.Errorf("MaxAge = %d, want 3600", cookies[0].MaxAge)
		}
	})
}

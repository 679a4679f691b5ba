package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONFieldCombinesEmailAndIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"email":" Owner@Madiluxe.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.9:40312"

	key := KeyByIPAndJSONField("email")(c)
	if key != "owner@madiluxe.com|10.0.0.9" {
		t.Fatalf("key want owner@madiluxe.com|10.0.0.9 got %s", key)
	}

	// 读取字段后请求体必须可被后续 handler 重新读取
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Owner@Madiluxe.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader("not-json"))
	c.Request.RemoteAddr = "10.0.0.9:40312"

	key := KeyByIPAndJSONField("email")(c)
	if key != "10.0.0.9" {
		t.Fatalf("malformed body should fall back to IP, got %s", key)
	}
}

func TestRateLimitMiddlewareSkipsWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{Prefix: "t", WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.POST("/leads", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/leads", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status want 200 got %d", i, w.Code)
		}
	}
}

func TestRateLimitMiddlewareSkipsWithZeroRule(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{}, nil))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
}

func TestToInt64Conversions(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(7), want: 7, ok: true},
		{name: "int", input: int(8), want: 8, ok: true},
		{name: "uint32", input: uint32(9), want: 9, ok: true},
		{name: "float64", input: float64(10.9), want: 10, ok: true},
		{name: "string", input: "nope", want: 0, ok: false},
		{name: "nil", input: nil, want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}

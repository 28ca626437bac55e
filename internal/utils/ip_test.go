package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"x-real-ip wins", map[string]string{"X-Real-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"leftmost forwarded for", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"remote addr fallback", nil, "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			req := httptest.NewRequest("POST", "/api/contact", nil)
			req.RemoteAddr = "192.0.2.10:5555"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c.Request = req

			if got := GetRealIP(c); got != tt.want {
				t.Errorf("GetRealIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

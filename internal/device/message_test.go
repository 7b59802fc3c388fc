package device

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stallingReader hands out its data and then fails, like a device that
// declared a Content-Length it never finished sending.
type stallingReader struct {
	data []byte
}

func (r *stallingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestFromRequestHeaders(t *testing.T) {
	tests := []struct {
		name            string
		headers         map[string]string
		expectedCounter string
		expectedUptime  float64
		expectedUA      string
	}{
		{
			name: "all headers present",
			headers: map[string]string{
				"X-ESP32-Message-Counter": "42",
				"X-ESP32-Uptime-MS":       "2500",
				"User-Agent":              "ESP32-HTTP-Client/1.0",
			},
			expectedCounter: "42",
			expectedUptime:  2.5,
			expectedUA:      "ESP32-HTTP-Client/1.0",
		},
		{
			name:            "no headers",
			headers:         nil,
			expectedCounter: "N/A",
			expectedUptime:  0,
			expectedUA:      "Unknown",
		},
		{
			name: "unparseable uptime defaults to zero",
			headers: map[string]string{
				"X-ESP32-Uptime-MS": "soon",
			},
			expectedCounter: "N/A",
			expectedUptime:  0,
			expectedUA:      "Unknown",
		},
		{
			name: "counter echoed verbatim even when non-numeric",
			headers: map[string]string{
				"X-ESP32-Message-Counter": "not-a-number",
			},
			expectedCounter: "not-a-number",
			expectedUptime:  0,
			expectedUA:      "Unknown",
		},
		{
			name: "fractional uptime",
			headers: map[string]string{
				"X-ESP32-Uptime-MS": "1234.5",
			},
			expectedCounter: "N/A",
			expectedUptime:  1.2345,
			expectedUA:      "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/hello", strings.NewReader("hi"))
			for name, value := range tt.headers {
				r.Header.Set(name, value)
			}

			m := FromRequest(r)

			assert.Equal(t, tt.expectedCounter, m.DeviceCounter)
			assert.InDelta(t, tt.expectedUptime, m.UptimeSeconds, 1e-9)
			assert.Equal(t, tt.expectedUA, m.UserAgent)
		})
	}
}

func TestFromRequestDeviceHeaderMap(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	r.Header.Set("X-ESP32-Message-Counter", "7")
	r.Header.Set("X-ESP32-Session-ID", "abc")
	r.Header.Set("Content-Type", "text/plain")

	m := FromRequest(r)

	require.Len(t, m.DeviceHeaders, 2)
	// net/http canonicalizes header names
	assert.Equal(t, "7", m.DeviceHeaders["X-Esp32-Message-Counter"])
	assert.Equal(t, "abc", m.DeviceHeaders["X-Esp32-Session-Id"])
}

func TestFromRequestBody(t *testing.T) {
	t.Run("payload and length", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader("hello\nworld"))

		m := FromRequest(r)

		assert.Equal(t, "hello\nworld", m.Payload)
		assert.Equal(t, 11, m.PayloadBytes)
		assert.False(t, m.Truncated)
		assert.False(t, m.LossyDecoded)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)

		m := FromRequest(r)

		assert.Equal(t, "", m.Payload)
		assert.Equal(t, 0, m.PayloadBytes)
	})

	t.Run("body read error keeps partial bytes and flags truncation", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", &stallingReader{data: []byte("partial")})
		r.ContentLength = 100

		m := FromRequest(r)

		assert.True(t, m.Truncated)
		assert.Equal(t, "partial", m.Payload)
		assert.Equal(t, 7, m.PayloadBytes)
	})

	t.Run("invalid utf-8 decoded with replacements", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader("ok\xff\xfeok"))

		m := FromRequest(r)

		assert.True(t, m.LossyDecoded)
		assert.Equal(t, 6, m.PayloadBytes)
		assert.Contains(t, m.Payload, "ok")
		assert.Contains(t, m.Payload, "�")
	})
}

func TestFromRequestClientInfo(t *testing.T) {
	r := httptest.NewRequest("POST", "/sensor/update", strings.NewReader("x"))
	r.RemoteAddr = "192.168.1.50:51234"

	m := FromRequest(r)

	assert.Equal(t, "192.168.1.50", m.ClientIP)
	assert.Equal(t, "/sensor/update", m.Path)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		expected   string
	}{
		{name: "ipv4 with port", remoteAddr: "192.168.1.50:51234", expected: "192.168.1.50"},
		{name: "ipv6 with port", remoteAddr: "[::1]:8000", expected: "::1"},
		{name: "no port kept as-is", remoteAddr: "192.168.1.50", expected: "192.168.1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClientIP(tt.remoteAddr))
		})
	}
}

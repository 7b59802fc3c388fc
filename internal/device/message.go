package device

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// HeaderPrefix marks the custom headers the firmware attaches to
	// every message. Matching is case-insensitive on the wire.
	HeaderPrefix = "X-ESP32-"

	HeaderMessageCounter = "X-ESP32-Message-Counter"
	HeaderUptimeMS       = "X-ESP32-Uptime-MS"

	// Sentinels substituted for absent values. The device is an
	// untrusted producer; a malformed message is never rejected.
	CounterMissing   = "N/A"
	UserAgentMissing = "Unknown"
)

// Message is one decoded device transmission. It lives for the
// duration of a single request and is never persisted.
type Message struct {
	Payload       string
	PayloadBytes  int
	DeviceCounter string
	UptimeSeconds float64
	ClientIP      string
	Path          string
	UserAgent     string
	DeviceHeaders map[string]string

	// Truncated is set when the body ended before the declared
	// Content-Length; LossyDecoded when the payload held invalid
	// UTF-8 and was decoded with replacement characters.
	Truncated    bool
	LossyDecoded bool
}

// FromRequest reads and decodes a device POST. It never fails: every
// malformed field is substituted with its sentinel or zero value and
// flagged on the returned message.
func FromRequest(r *http.Request) *Message {
	m := &Message{
		DeviceCounter: CounterMissing,
		ClientIP:      ClientIP(r.RemoteAddr),
		Path:          r.URL.Path,
		UserAgent:     UserAgentMissing,
		DeviceHeaders: make(map[string]string),
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		// keep whatever arrived before the read failed
		m.Truncated = true
	}
	m.PayloadBytes = len(body)
	m.Payload = decodePayload(body, m)

	if ua := r.Header.Get("User-Agent"); ua != "" {
		m.UserAgent = ua
	}
	if counter := r.Header.Get(HeaderMessageCounter); counter != "" {
		m.DeviceCounter = counter
	}
	if uptime := r.Header.Get(HeaderUptimeMS); uptime != "" {
		if ms, err := strconv.ParseFloat(uptime, 64); err == nil {
			m.UptimeSeconds = ms / 1000
		}
	}

	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(HeaderPrefix)) {
			m.DeviceHeaders[name] = values[0]
		}
	}

	return m
}

// ClientIP strips the ephemeral port from a transport address. The
// diagnostics identify a device by IP, which is what a developer
// compares against the address configured in the firmware.
func ClientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func decodePayload(body []byte, m *Message) string {
	if utf8.Valid(body) {
		return string(body)
	}
	m.LossyDecoded = true
	return strings.ToValidUTF8(string(body), string(utf8.RuneError))
}

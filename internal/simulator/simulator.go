// Package simulator reproduces the traffic of the ESP32 hello-world
// firmware so the listener can be exercised without hardware.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/device"
)

// Device mimics one booted ESP32: a session id fixed at "boot", a
// message counter, and an uptime clock.
type Device struct {
	SessionID     string
	CustomMessage string

	client  *http.Client
	rnd     *rand.Rand
	bootAt  time.Time
	counter int
}

func NewDevice(sessionID, customMessage string) *Device {
	return &Device{
		SessionID:     sessionID,
		CustomMessage: customMessage,
		client:        &http.Client{Timeout: 10 * time.Second},
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
		bootAt:        time.Now(),
	}
}

// UptimeMS reports milliseconds since the simulated boot.
func (d *Device) UptimeMS() int64 {
	return time.Since(d.bootAt).Milliseconds()
}

// NextPayload advances the message counter and builds the multi-line
// hello-world body the firmware generates: a statistics block, heap
// figures, and a random-data block so every message visibly differs.
func (d *Device) NextPayload() (counter int, payload string) {
	d.counter++
	n := d.counter
	uptimeMS := d.UptimeMS()

	// the firmware caps its power-of-two "calculation result" to keep
	// it printable
	calc := 1
	for i := 0; i < n; i++ {
		calc *= 2
		if calc > 10000 {
			calc = 1
		}
	}

	freeHeap := 180000 + d.rnd.Intn(40000)
	minFreeHeap := freeHeap - d.rnd.Intn(20000)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello World from ESP32!\n")
	fmt.Fprintf(&b, "=======================================\n")
	fmt.Fprintf(&b, "Message Statistics:\n")
	fmt.Fprintf(&b, "   Message Number: %d\n", n)
	fmt.Fprintf(&b, "   Uptime: %d.%03d seconds (%d ms total)\n", uptimeMS/1000, uptimeMS%1000, uptimeMS)
	fmt.Fprintf(&b, "   Calculation Result: %d (2^%d simplified)\n", calc, n)
	fmt.Fprintf(&b, "   Message Hash: %d\n", int64(n)*uptimeMS)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "System Information:\n")
	fmt.Fprintf(&b, "   Free Heap: %d bytes\n", freeHeap)
	fmt.Fprintf(&b, "   Min Free Heap: %d bytes\n", minFreeHeap)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "Random Data (changes each message):\n")
	fmt.Fprintf(&b, "   Random Value: %d\n", d.rnd.Intn(1000))
	fmt.Fprintf(&b, "   Counter squared: %d\n", n*n)

	if d.CustomMessage != "" {
		fmt.Fprintf(&b, "\nCustom Message:\n%s\n", d.CustomMessage)
	}

	fmt.Fprintf(&b, "\nThis message was generated at runtime!\n")
	fmt.Fprintf(&b, "=======================================")

	return n, b.String()
}

// Send POSTs the next message to serverURL and returns the server's
// acknowledgment body.
func (d *Device) Send(ctx context.Context, serverURL string) (string, error) {
	counter, payload := d.NextPayload()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL, strings.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", "ESP32-HTTP-Client/1.0")
	req.Header.Set(device.HeaderMessageCounter, strconv.Itoa(counter))
	req.Header.Set(device.HeaderUptimeMS, strconv.FormatInt(d.UptimeMS(), 10))
	req.Header.Set("X-ESP32-Session-ID", d.SessionID)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	ack, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return string(ack), fmt.Errorf("server answered %s", resp.Status)
	}
	return string(ack), nil
}

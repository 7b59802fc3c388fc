// Package console renders the per-request diagnostic records a
// developer watches to confirm a device is transmitting. The output is
// formatted for humans, not for log collectors; operational events go
// through slog instead.
package console

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

const bannerWidth = 80

// TimestampFormat carries milliseconds, matching the device's own
// uptime resolution. The acknowledgment body uses the same format so
// console and device-side logs line up.
const TimestampFormat = "2006-01-02 15:04:05.000"

// Record is everything printed for one received message.
type Record struct {
	ReceiptID     string
	ServerCount   uint64
	DeviceCounter string
	UptimeSeconds float64
	ClientIP      string
	Path          string
	UserAgent     string
	DeviceHeaders map[string]string
	Payload       string
	PayloadBytes  int
	ChangingData  []string
	ReceivedAt    time.Time
}

type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// MessageReceived prints the full diagnostic record for a device POST.
func (p *Printer) MessageReceived(rec Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	banner := strings.Repeat("=", bannerWidth)
	rule := strings.Repeat("-", bannerWidth)

	fmt.Fprintf(p.out, "\n%s\n", banner)
	fmt.Fprintf(p.out, "ESP32 MESSAGE #%d RECEIVED - %s\n", rec.ServerCount, rec.ReceivedAt.Format(TimestampFormat))
	fmt.Fprintf(p.out, "%s\n", banner)
	fmt.Fprintf(p.out, "Message tracking:\n")
	fmt.Fprintf(p.out, "  Receipt ID:            %s\n", rec.ReceiptID)
	fmt.Fprintf(p.out, "  ESP32 message counter: %s\n", rec.DeviceCounter)
	fmt.Fprintf(p.out, "  Server received count: %d\n", rec.ServerCount)
	fmt.Fprintf(p.out, "  ESP32 uptime:          %.3f seconds\n", rec.UptimeSeconds)
	fmt.Fprintf(p.out, "  From:                  %s\n", rec.ClientIP)
	fmt.Fprintf(p.out, "  Endpoint:              %s\n", rec.Path)
	fmt.Fprintf(p.out, "  User-Agent:            %s\n", rec.UserAgent)

	if len(rec.DeviceHeaders) > 0 {
		fmt.Fprintf(p.out, "  ESP32 custom headers:\n")
		for _, name := range sortedKeys(rec.DeviceHeaders) {
			fmt.Fprintf(p.out, "    %s: %s\n", name, rec.DeviceHeaders[name])
		}
	}

	fmt.Fprintf(p.out, "\nMESSAGE CONTENT:\n%s\n", rule)
	fmt.Fprintln(p.out, rec.Payload)
	fmt.Fprintf(p.out, "%s\n", rule)
	fmt.Fprintf(p.out, "Message length: %d bytes\n", rec.PayloadBytes)

	if len(rec.ChangingData) > 0 {
		fmt.Fprintf(p.out, "\nCHANGING DATA DETECTED:\n")
		for _, line := range rec.ChangingData {
			fmt.Fprintf(p.out, "  > %s\n", line)
		}
	}

	fmt.Fprintf(p.out, "%s\n\n", banner)
}

// StatusRequested prints the one-line record for a browser GET.
func (p *Printer) StatusRequested(clientIP, path string, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\nGET request from %s to %s at %s\n", clientIP, path, at.Format(TimestampFormat))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

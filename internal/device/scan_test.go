package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultKeywords = []string{"counter", "uptime", "random", "hash", "heap", "message number"}

func TestScanChangingData(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected []string
	}{
		{
			name:     "case-insensitive match",
			payload:  "greetings\nRandom value: 42\nsome text\nmore text\nfinal line",
			expected: []string{"Random value: 42"},
		},
		{
			name:     "multiple keywords preserve order",
			payload:  "Uptime: 1.5 seconds\nfiller\nFree Heap: 1234 bytes\nMessage Number: 3",
			expected: []string{"Uptime: 1.5 seconds", "Free Heap: 1234 bytes", "Message Number: 3"},
		},
		{
			name:     "matches are trimmed",
			payload:  "   Message Hash: 99   \nplain",
			expected: []string{"Message Hash: 99"},
		},
		{
			name:     "no matches",
			payload:  "hello\nworld",
			expected: nil,
		},
		{
			name:     "empty payload",
			payload:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScanChangingData(tt.payload, defaultKeywords, 5))
		})
	}
}

func TestScanChangingDataCap(t *testing.T) {
	var lines []string
	for i := 1; i <= 8; i++ {
		lines = append(lines, "counter line")
	}
	payload := strings.Join(lines, "\n")

	matches := ScanChangingData(payload, defaultKeywords, 5)

	assert.Len(t, matches, 5)
}

func TestScanChangingDataCapKeepsFirstMatches(t *testing.T) {
	payload := "counter 1\ncounter 2\ncounter 3\ncounter 4\ncounter 5\ncounter 6\ncounter 7"

	matches := ScanChangingData(payload, defaultKeywords, 5)

	assert.Equal(t, []string{"counter 1", "counter 2", "counter 3", "counter 4", "counter 5"}, matches)
}

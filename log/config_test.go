package log

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_WithLevel_SetsLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected Level
	}{
		{"trace", LevelTrace, LevelTrace},
		{"debug", LevelDebug, LevelDebug},
		{"info", LevelInfo, LevelInfo},
		{"warn", LevelWarn, LevelWarn},
		{"error", LevelError, LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithLevel(tt.level)(config{})

			if result.level != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, result.level)
			}
		})
	}
}

func TestConfig_WithCaller_SetsCaller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		result := WithCaller(enable)(config{})

		if result.caller != enable {
			t.Errorf("expected caller %v, got %v", enable, result.caller)
		}
	}
}

func TestConfig_WithFormat_SetsFormat(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatText} {
		result := WithFormat(format)(config{})

		if result.format != format {
			t.Errorf("expected format %v, got %v", format, result.format)
		}
	}
}

func TestConfig_formatTime_FormatsTimestamp(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name        string
		layout      string
		contains    []string
		notContains []string
	}{
		{
			name:        "rfc3339 named layout",
			layout:      "RFC3339",
			contains:    []string{"2023-10-15T14:30:45Z"},
			notContains: []string{".123", ".456", ".789"},
		},
		{
			name:     "rfc3339 nano named layout",
			layout:   "RFC3339Nano",
			contains: []string{"2023-10-15T14:30:45.123456789Z"},
		},
		{
			name:     "custom layout used verbatim",
			layout:   "   2006-01-02 15:04:05.000Z07:00",
			contains: []string{"   2023-10-15 14:30:45.123Z"},
		},
		{
			name:     "unknown named layout is a literal layout",
			layout:   "UNKNOWN_FORMAT",
			contains: []string{"UNKNOWN_FORMAT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})
			result := c.formatTime(now)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected %q to contain %q", result, s)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(result, s) {
					t.Errorf("expected %q not to contain %q", result, s)
				}
			}
		})
	}
}

func TestConfig_formatTime_EmptyFormat_DisablesTimestamp(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	for _, layout := range []string{"", "   \t  ", "none"} {
		c := WithTimeLayout(layout)(config{})

		if result := c.formatTime(now); result != "" {
			t.Errorf("expected empty timestamp when layout is %q, got %q", layout, result)
		}
	}
}

func BenchmarkConfig_formatTime_SecondResolution(b *testing.B) {
	c := WithTimeLayout("RFC3339")(config{})
	testTime := time.Now()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.formatTime(testTime)
	}
}

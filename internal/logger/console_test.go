package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel string
		message      string
		shouldAppear bool
	}{
		// trace level - should see everything
		{name: "trace sees trace", logLevel: "trace", messageLevel: "trace", message: "trace msg", shouldAppear: true},
		{name: "trace sees debug", logLevel: "trace", messageLevel: "debug", message: "debug msg", shouldAppear: true},
		{name: "trace sees error", logLevel: "trace", messageLevel: "error", message: "error msg", shouldAppear: true},

		// debug level - should not see trace
		{name: "debug blocks trace", logLevel: "debug", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "debug sees debug", logLevel: "debug", messageLevel: "debug", message: "debug msg", shouldAppear: true},

		// info level - default
		{name: "info blocks debug", logLevel: "info", messageLevel: "debug", message: "debug msg", shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: "warn", message: "warn msg", shouldAppear: true},

		// warn level
		{name: "warn blocks info", logLevel: "warn", messageLevel: "info", message: "info msg", shouldAppear: false},
		{name: "warn sees error", logLevel: "warn", messageLevel: "error", message: "error msg", shouldAppear: true},

		// error level - most restrictive
		{name: "error blocks warn", logLevel: "error", messageLevel: "warn", message: "warn msg", shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: "error", message: "error msg", shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewConsoleLogger(&buf, tt.logLevel)

			switch tt.messageLevel {
			case "trace":
				logger.LogTrace(tt.message)
			case "debug":
				logger.LogDebug(tt.message)
			case "info":
				logger.LogInfo(tt.message)
			case "warn":
				logger.LogWarn(tt.message)
			case "error":
				logger.LogError(tt.message)
			}

			output := buf.String()
			if tt.shouldAppear && !strings.Contains(output, tt.message) {
				t.Errorf("expected %q in output, got %q", tt.message, output)
			}
			if !tt.shouldAppear && output != "" {
				t.Errorf("expected no output, got %q", output)
			}
		})
	}
}

func TestInvalidLogLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "loud")

	logger.LogDebug("hidden")
	logger.LogInfo("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("debug message should be filtered at default info level")
	}
	if !strings.Contains(output, "shown") {
		t.Error("info message missing at default info level")
	}
}

func TestNilWriterDiscardsMessages(t *testing.T) {
	logger := NewConsoleLogger(nil, "trace")
	// Must not panic.
	logger.LogInfo("dropped")
	logger.LogError("dropped")
}

func TestMessageFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "info")
	logger.LogWarn("catalog row skipped")

	output := buf.String()
	if !strings.Contains(output, "[WARN] catalog row skipped") {
		t.Errorf("unexpected format: %q", output)
	}
	if !strings.HasPrefix(output, "[") || !strings.HasSuffix(output, "\n") {
		t.Errorf("expected timestamped line, got %q", output)
	}
}

func TestLogMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "info")
	logger.LogMatchSummary(12, 540, 50, 42*time.Millisecond)

	output := buf.String()
	if !strings.Contains(output, "Matched 12 of 540 schemes") {
		t.Errorf("missing match counts: %q", output)
	}
	if !strings.Contains(output, "min score 50") {
		t.Errorf("missing threshold: %q", output)
	}
}

func TestNoOpLoggerDiscardsEverything(t *testing.T) {
	logger := NewNoOpLogger()
	logger.LogTrace("a")
	logger.LogDebug("b")
	logger.LogInfo("c")
	logger.LogWarn("d")
	logger.LogError("e")
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "info")

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				logger.LogInfo("concurrent message")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 200 {
		t.Errorf("expected 200 intact lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "concurrent message") {
			t.Errorf("interleaved line: %q", line)
			break
		}
	}
}

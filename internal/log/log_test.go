package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"empty defaults to info", "", false},
		{"debug", "debug", false},
		{"mixed case", " Warn ", false},
		{"error", "error", false},
		{"unknown", "verbose", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := SetLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLevel(%q) error = %v, wantErr %t", tt.level, err, tt.wantErr)
			}
		})
	}

	if err := SetLevel("info"); err != nil {
		t.Fatalf("restoring info level failed: %v", err)
	}
}

func TestReplaceLoggerNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil logger")
		}
	}()
	ReplaceLogger(nil)
}

func TestLoggerOutput(t *testing.T) {
	original := Logger()
	defer ReplaceLogger(original)

	var buf bytes.Buffer
	ReplaceLogger(slog.New(NewHandler(&buf)))

	Info(context.Background(), "ingredient saved", "id", 7)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "ingredient saved" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts attribute")
	}
	if record["id"] != float64(7) {
		t.Fatalf("unexpected id attribute: %v", record["id"])
	}
}

func TestNilContextLogsSafely(t *testing.T) {
	original := Logger()
	defer ReplaceLogger(original)

	var buf bytes.Buffer
	ReplaceLogger(slog.New(NewHandler(&buf)))

	Error(nil, "boom") //nolint:staticcheck // nil context is tolerated on purpose
	if buf.Len() == 0 {
		t.Fatal("expected log output for nil context")
	}
}

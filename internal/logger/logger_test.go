package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should appear in output
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "scrape started",
			fields:  Fields{"source": "licensed-meets"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "row detail",
			want:    false,
		},
		{
			name:    "warn message",
			level:   LevelWarn,
			message: "skipping row",
			fields:  Fields{"reason": "unparsable date"},
			want:    true,
		},
		{
			name:    "error with cause",
			level:   LevelError,
			message: "fetch failed",
			err:     errors.New("connection refused"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(LevelInfo, &buf)
			l.log(tt.level, tt.message, tt.fields, tt.err)

			out := buf.String()
			if !tt.want {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}

			var entry map[string]interface{}
			if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
				t.Fatalf("output is not JSON: %v (%q)", err, out)
			}
			if entry["message"] != tt.message {
				t.Errorf("message = %v, want %q", entry["message"], tt.message)
			}
			if entry["level"] != string(tt.level) {
				t.Errorf("level = %v, want %q", entry["level"], tt.level)
			}
			if tt.err != nil && entry["error"] != tt.err.Error() {
				t.Errorf("error = %v, want %q", entry["error"], tt.err.Error())
			}
			if tt.fields != nil {
				raw, ok := entry["fields"].(map[string]interface{})
				if !ok {
					t.Fatalf("fields missing from entry: %v", entry)
				}
				for k, v := range tt.fields {
					if raw[k] != v {
						t.Errorf("field %q = %v, want %v", k, raw[k], v)
					}
				}
			}
		})
	}
}

func TestLoggerMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError, &buf)
	l.Info("ignored", nil)
	l.Warn("ignored", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output below ERROR, got %q", buf.String())
	}
	l.Error("kept", nil, errors.New("boom"))
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected ERROR output, got %q", buf.String())
	}
}

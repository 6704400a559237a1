package utils

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestExportFileName(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 2, 0, time.Local)
	if got := ExportFileName(ts); got != "export_20240307_090502.csv" {
		t.Errorf("ExportFileName() = %q", got)
	}
}

func TestFormatOptional(t *testing.T) {
	seven := 7
	notes := "hello"

	if FormatOptionalInt(nil) != "" || FormatOptionalInt(&seven) != "7" {
		t.Error("FormatOptionalInt mismatch")
	}
	if FormatOptionalString(nil) != "" || FormatOptionalString(&notes) != "hello" {
		t.Error("FormatOptionalString mismatch")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewLogger_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)
	logger.WithField("media_id", 3).Info("Media created")

	out := buf.String()
	if !strings.Contains(out, "Media created") || !strings.Contains(out, "media_id=3") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "catalog.log")

	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile() error = %v", err)
	}
	defer f.Close()

	if _, err := f.WriteString("line\n"); err != nil {
		t.Errorf("write failed: %v", err)
	}
}

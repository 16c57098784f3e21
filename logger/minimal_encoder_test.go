package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// TestMinimalEncoderNeverDiscardsFields ensures the minimal encoder NEVER
// silently discards log fields, whatever their keys or types.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "test",
		Message:    "Testing field preservation",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string // What we must find in the output
	}{
		// Arbitrary fields must fall back to key=value
		{zap.String("schema", "extension_api.json"), "schema=extension_api.json"},
		{zap.Bool("skipped", true), "skipped=true"},
		{zap.Float64("ratio", 0.8), "ratio=0.8"},
		{zap.Strings("candidates", []string{"godot", "godot4"}), "candidates"},
		{zap.Int("critical_count", 999), "critical_count=999"},
		{zap.String("field_with_underscores", "test"), "field_with_underscores=test"},
		{zap.Int32("int32_field", 42), "int32_field=42"},
		{zap.Int64("int64_field", 9999999), "int64_field=9999999"},

		// nil error shouldn't crash
		{zap.Error(nil), ""},

		// Well-known pipeline fields keep value-only formatting
		{zap.String(FieldFile, "node_markers.rs"), "node_markers.rs"},
		{zap.Int(FieldCount, 312), "(312)"},
		{zap.Int(FieldDurationMS, 4), "4ms"},
		{zap.String(FieldCategory, "3d"), "3d"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(entry, allFields)
	if err != nil {
		t.Fatalf("Failed to encode entry: %v", err)
	}

	output := buf.String()
	cleanOutput := stripANSI(output)

	missingFields := []string{}
	for _, tf := range testFields {
		if tf.mustFind != "" && !strings.Contains(cleanOutput, tf.mustFind) {
			missingFields = append(missingFields, tf.mustFind)
		}
	}

	if len(missingFields) > 0 {
		t.Fatalf("Logger is silently discarding %d fields! Missing: %v\nClean output was: %s",
			len(missingFields), missingFields, cleanOutput)
	}
}

func TestMinimalEncoderLevels(t *testing.T) {
	encoder := newMinimalEncoder()

	tests := []struct {
		name      string
		level     zapcore.Level
		wantLabel string
	}{
		{"info has no level label", zapcore.InfoLevel, ""},
		{"debug has no level label", zapcore.DebugLevel, ""},
		{"warn labeled", zapcore.WarnLevel, "WARN"},
		{"error labeled", zapcore.ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := zapcore.Entry{
				Level:   tt.level,
				Time:    time.Date(2025, 6, 1, 13, 4, 35, 0, time.UTC),
				Message: "stage done",
			}

			buf, err := encoder.EncodeEntry(entry, nil)
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}
			clean := stripANSI(buf.String())

			if !strings.Contains(clean, "13:04:35") {
				t.Errorf("missing timestamp in output: %q", clean)
			}
			if !strings.Contains(clean, "stage done") {
				t.Errorf("missing message in output: %q", clean)
			}
			if tt.wantLabel == "" {
				if strings.Contains(clean, "WARN") || strings.Contains(clean, "ERROR") {
					t.Errorf("unexpected level label in output: %q", clean)
				}
			} else if !strings.Contains(clean, tt.wantLabel) {
				t.Errorf("expected level label %q in output: %q", tt.wantLabel, clean)
			}
		})
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pipeline", "pipeline"},
		{"godotapi.dump", "g.dump"},
		{"taxonomy.gates", "t.gates"},
	}

	for _, tt := range tests {
		if got := abbreviateName(tt.in); got != tt.want {
			t.Errorf("abbreviateName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestUnknownFieldTypes tests that the encoder handles all possible field
// types without crashing or silently dropping them
func TestUnknownFieldTypes(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Now(),
		LoggerName: "test",
		Message:    "Testing unknown field types",
	}

	fields := []zapcore.Field{
		zap.Complex128("complex", complex(1.0, 2.0)),
		zap.Duration("duration", 5*time.Second),
		zap.Time("timestamp", time.Now()),
		zap.Uint("uint", 100),
		zap.Uint64("uint64", 5000000000),
		zap.ByteString("bytes", []byte("hello world")),
		zap.Binary("blob", []byte{0x01, 0x02, 0x03}),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	if err != nil {
		t.Fatalf("Failed to encode complex types: %v", err)
	}

	cleanOutput := stripANSI(buf.String())

	expectedSubstrings := []string{
		"complex",
		"duration",
		"timestamp",
		"uint",
		"bytes",
		"blob",
	}

	for _, expected := range expectedSubstrings {
		if !strings.Contains(cleanOutput, expected) {
			t.Errorf("Field with key '%s' was completely dropped from output: %s", expected, cleanOutput)
		}
	}
}

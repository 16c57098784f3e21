package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	// Muted palette, easy on eyes during long generation runs
	colorTime   = "\x1b[38;5;108m" // muted cyan-green
	colorName   = "\x1b[38;5;208m" // warm orange
	colorFg     = "\x1b[38;5;223m" // soft cream
	colorPath   = "\x1b[38;5;109m" // soft blue
	colorNumber = "\x1b[38;5;175m" // muted purple
	colorWarn   = "\x1b[38;5;214m" // soft yellow
	colorWarnBg = "\x1b[48;5;58m"  // dark yellow background
	colorErr    = "\x1b[38;5;167m" // warm red
	colorErrBg  = "\x1b[48;5;88m"  // dark red background
)

// minimalEncoder implements a calm, compact console encoder
// Format: "13:04:35  taxonomy  Categorized node types  (312) 4ms"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	// Base JSON encoder handles field serialization we never render directly
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	final.AppendString(colorTime)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN and above, with bold + background
	if ent.Level > zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	// Component name for visual grouping
	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorName)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(colorFg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(extractFieldValues(fields))
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorErrBg + colorErr + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorErrBg + colorErr + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: godotapi.dump -> g.dump
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// getFieldValue extracts the value from a zap field, handling every field
// type zap can produce. Encoding through a map encoder avoids a type switch
// over the whole zapcore.FieldType enum.
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}

	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	if v, ok := m.Fields[field.Key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// extractFieldValues renders structured fields. Well-known pipeline fields
// get compact value-only rendering; everything else falls back to key=value
// so no field is ever silently discarded.
// Input: {"file": "node_markers.rs", "count": 312, "duration_ms": 4}
// Output: "node_markers.rs (312) 4ms" (with colored paths and numbers)
func extractFieldValues(fields []zapcore.Field) string {
	var values []string

	for _, field := range fields {
		val := getFieldValue(field)

		switch field.Key {
		case FieldFile, FieldPath, FieldArtifact, FieldBinary:
			if val != "" {
				values = append(values, colorPath+val+colorReset)
			}
		case FieldClass, FieldCategory, FieldEngine, FieldGate:
			if val != "" {
				values = append(values, colorFg+val+colorReset)
			}
		case FieldCount, FieldSize:
			if val != "" {
				values = append(values, colorFg+"("+colorNumber+val+colorReset+colorFg+")"+colorReset)
			}
		case FieldDurationMS:
			if val != "" {
				values = append(values, colorNumber+val+colorReset+"ms")
			}
		case FieldError:
			if val != "" {
				values = append(values, colorErr+val+colorReset)
			}
		default:
			// zap.Error(nil) and friends encode to nothing; skip those
			if field.Key != "" && (val != "" || field.Type != zapcore.SkipType) {
				values = append(values, colorFg+field.Key+"="+val+colorReset)
			}
		}
	}

	if len(values) == 0 {
		return ""
	}

	return strings.Join(values, " ")
}

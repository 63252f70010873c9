// Package logging owns the process-wide zap logger. Everything goes to
// stderr: stdout is reserved for the GPX document.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kml2gpx/internal/convert"
	"kml2gpx/internal/models"
)

// Logger is the global logger. It is a no-op until Initialize is called.
var Logger = zap.NewNop().Sugar()

// Initialize sets up the global logger. level may be "debug", "info",
// "warn" or "error" (default "info").
func Initialize(level string, jsonOutput bool) error {
	lvl := zap.NewAtomicLevelAt(parseLevel(level))

	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = lvl
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		Logger = l.Sugar()
		return nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.TimeKey = ""
	Logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		lvl,
	)).Sugar()
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// DiagnosticSink forwards pipeline diagnostics to l at the matching level.
func DiagnosticSink(l *zap.SugaredLogger) convert.Sink {
	return convert.SinkFunc(func(d models.Diagnostic) {
		kv := []interface{}{}
		if d.RecordID != "" {
			kv = append(kv, "placemark", d.RecordID)
		}
		switch d.Severity {
		case models.Error:
			l.Errorw(d.Message, kv...)
		case models.Warning:
			l.Warnw(d.Message, kv...)
		default:
			l.Infow(d.Message, kv...)
		}
	})
}

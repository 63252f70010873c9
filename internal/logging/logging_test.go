package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kml2gpx/internal/models"
)

func TestDiagnosticSink(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := DiagnosticSink(zap.New(core).Sugar())

	sink.Emit(models.Diagnostic{Severity: models.Warning, RecordID: "{G-1}", Message: "switched lat/lon 37.8, -122.4"})
	sink.Emit(models.Diagnostic{Severity: models.Error, RecordID: "#4", Message: "no ExtendedData"})
	sink.Emit(models.Diagnostic{Severity: models.Info, Message: "found 2 placemarks"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "switched lat/lon 37.8, -122.4", entries[0].Message)
	assert.Equal(t, "{G-1}", entries[0].ContextMap()["placemark"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "#4", entries[1].ContextMap()["placemark"])

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Empty(t, entries[2].Context)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zap.DebugLevel,
		"WARN":    zap.WarnLevel,
		"warning": zap.WarnLevel,
		"error":   zap.ErrorLevel,
		"":        zap.InfoLevel,
		"bogus":   zap.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize("debug", false))
	assert.True(t, Logger.Desugar().Core().Enabled(zap.DebugLevel))
	require.NoError(t, Initialize("error", true))
	assert.False(t, Logger.Desugar().Core().Enabled(zap.WarnLevel))
}

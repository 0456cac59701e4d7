package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("info"))
	assert.True(t, ValidLevel("Warn"))
	assert.False(t, ValidLevel("trace"))
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop()
	l.Infof("[TEST] %s", "hello")
	l.Debug("debug")
	l.Errorf("[TEST] %d", 1)
}

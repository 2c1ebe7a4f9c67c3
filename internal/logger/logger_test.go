package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer

	log := NewWithWriter(&buf, "warn")
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "chatty")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(NewWithWriter(&buf, "info"), 50*time.Millisecond)
	fc := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), fc, nil)
	assert.Empty(t, buf.String(), "fast successful queries are not logged at info")

	gl.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is not an error")

	gl.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Contains(t, buf.String(), "query failed")
	buf.Reset()

	gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "slow query")
	buf.Reset()

	gl.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Empty(t, buf.String())
}

package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func newTestLogger(level logger.LogLevel) (logger.Interface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.TraceLevel)

	return (&LogrusLogger{logger: l}).LogMode(level), buf
}

func TestLogrusLogger(t *testing.T) {
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("warn level hides routine sql", func(t *testing.T) {
		l, buf := newTestLogger(logger.Warn)

		l.Trace(ctx, time.Now(), query, nil)
		l.Info(ctx, "connected to %s", "db")
		assert.Empty(t, buf.String())

		l.Trace(ctx, time.Now(), query, errors.New("relation does not exist"))
		assert.Contains(t, buf.String(), "relation does not exist")
	})

	t.Run("slow queries are flagged", func(t *testing.T) {
		l, buf := newTestLogger(logger.Warn)

		l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
		assert.Contains(t, buf.String(), "SLOW SQL")
	})

	t.Run("info level logs every statement", func(t *testing.T) {
		l, buf := newTestLogger(logger.Info)

		l.Trace(ctx, time.Now(), query, nil)
		assert.Contains(t, buf.String(), "SELECT 1")
	})

	t.Run("silent", func(t *testing.T) {
		l, buf := newTestLogger(logger.Silent)

		l.Error(ctx, "boom")
		l.Trace(ctx, time.Now(), query, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}

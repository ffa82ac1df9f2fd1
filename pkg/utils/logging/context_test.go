package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestLoggerInContext(t *testing.T) {
	ctx := context.Background()
	gt.True(t, logging.From(ctx) == logging.Default())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "req-1")
	ctx = logging.With(ctx, logger)

	logging.From(ctx).Info("hello")
	gt.True(t, bytes.Contains(buf.Bytes(), []byte("request_id=req-1")))
}

func TestCtxRequestID(t *testing.T) {
	t.Run("generated once and kept", func(t *testing.T) {
		id1, ctx := logging.CtxRequestID(context.Background())
		gt.V(t, id1).NotEqual("")

		id2, ctx2 := logging.CtxRequestID(ctx)
		gt.V(t, id2).Equal(id1)
		gt.True(t, ctx2 == ctx)
	})

	t.Run("unrelated contexts get different IDs", func(t *testing.T) {
		id1, _ := logging.CtxRequestID(context.Background())
		id2, _ := logging.CtxRequestID(context.Background())
		gt.V(t, id1).NotEqual(id2)
	})
}

func TestCtxTime(t *testing.T) {
	t.Run("current time by default", func(t *testing.T) {
		before := time.Now()
		gt.False(t, logging.CtxTime(context.Background()).Before(before))
	})

	t.Run("pinned time", func(t *testing.T) {
		pinned := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ctx := logging.CtxWithTime(context.Background(), func() time.Time { return pinned })

		gt.V(t, logging.CtxTime(ctx)).Equal(pinned)
	})
}

package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
)

func TestFromFallsBackToDefault(t *testing.T) {
	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
}

func TestWithCarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("hello", "plugin", "timeseries")

	gt.String(t, buf.String()).Contains("plugin=timeseries")
}

func TestSetDefault(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	logging.SetDefault(logger)
	gt.Value(t, logging.Default()).Equal(logger)

	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).Equal(logger)
}

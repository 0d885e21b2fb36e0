package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/cli/config"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
)

func TestLogger_Configure(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vizopts.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		type credential struct {
			Token string
		}
		logging.Default().Info("hello", "cred", credential{Token: "s3cr3t"})
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains(`"msg":"hello"`)
		gt.String(t, string(data)).NotContains("s3cr3t")
	})

	t.Run("console", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		closer, err := config.NewLoggerForTest("warn", "console", path).Configure()
		gt.NoError(t, err).Required()
		logging.Default().Warn("careful")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("careful")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "json", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	repo, err := config.NewRepositoryForTest("memory", "").Configure(ctx)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Close())

	_, err = config.NewRepositoryForTest("firestore", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)

	_, err = config.NewRepositoryForTest("postgres", "").Configure(ctx)
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

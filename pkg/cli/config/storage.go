package config

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Output holds CLI flags selecting where an export is written: stdout, a
// local file, or an object in a Cloud Storage bucket
type Output struct {
	path      string
	bucket    string
	objectKey string
}

// NewOutputForTest creates an Output writing to a local path
func NewOutputForTest(path string) *Output {
	return &Output{path: path}
}

// Flags returns CLI flags for output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Category:    "Output",
			Usage:       "Output file path (- for stdout)",
			Value:       "-",
			Destination: &o.path,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Category:    "Output",
			Usage:       "Cloud Storage bucket to write to instead of a local file",
			Sources:     cli.EnvVars("VIZOPTS_GCS_BUCKET"),
			Destination: &o.bucket,
		},
		&cli.StringFlag{
			Name:        "gcs-object",
			Category:    "Output",
			Usage:       "Object name in the Cloud Storage bucket",
			Value:       "vizopts/plugins.json",
			Sources:     cli.EnvVars("VIZOPTS_GCS_OBJECT"),
			Destination: &o.objectKey,
		},
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (w *gcsWriter) Close() error {
	if err := w.Writer.Close(); err != nil {
		_ = w.client.Close()
		return goerr.Wrap(err, "failed to finalize cloud storage object")
	}
	return w.client.Close()
}

// Open returns the writer of the configured destination. Data reaches Cloud
// Storage only when the returned writer is closed without error.
func (o *Output) Open(ctx context.Context) (io.WriteCloser, error) {
	if o.bucket != "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create cloud storage client")
		}
		w := client.Bucket(o.bucket).Object(o.objectKey).NewWriter(ctx)
		w.ContentType = "application/json"
		logging.From(ctx).Info("writing to cloud storage", "bucket", o.bucket, "object", o.objectKey)
		return &gcsWriter{Writer: w, client: client}, nil
	}

	if o.path == "" || o.path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Create(o.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", o.path))
	}
	return f, nil
}

package safe_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/utils/safe"
)

type failingCloser struct{ closed bool }

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("close failed")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestClose(t *testing.T) {
	ctx := context.Background()
	c := &failingCloser{}
	safe.Close(ctx, c)
	gt.Bool(t, c.closed).True()

	safe.Close(ctx, nil)
}

func TestWrite(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	safe.Write(ctx, &buf, []byte("hello"))
	gt.String(t, buf.String()).Equal("hello")

	safe.Write(ctx, failingWriter{}, []byte("dropped"))
	safe.Write(ctx, nil, []byte("dropped"))
}

package safe_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/rallykit/rallybot/pkg/utils/safe"
)

type failingCloser struct {
	closed bool
}

func (c *failingCloser) Close() error {
	c.closed = true
	return errors.New("close failed")
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	t.Run("nil closer is a no-op", func(t *testing.T) {
		safe.Close(ctx, nil)
	})

	t.Run("close errors are logged, not propagated", func(t *testing.T) {
		c := &failingCloser{}
		safe.Close(ctx, c)
		gt.Bool(t, c.closed).True()
	})
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("nil writer is a no-op", func(t *testing.T) {
		safe.Write(ctx, nil, []byte("data"))
	})

	t.Run("writes the payload", func(t *testing.T) {
		var buf bytes.Buffer
		safe.Write(ctx, &buf, []byte("OK"))
		gt.Value(t, buf.String()).Equal("OK")
	})
}

package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/rallykit/rallybot/pkg/utils/errutil"
	"github.com/rallykit/rallybot/pkg/utils/logging"
)

func TestHandle(t *testing.T) {
	t.Run("nil error passes through silently", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing happened"))
	})

	t.Run("returns the error unchanged and logs its values", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), logging.New(&buf, slog.LevelInfo, logging.FormatJSON))

		orig := goerr.New("boom", goerr.V("task", "sweep"))
		got := errutil.Handle(ctx, orig, "background task failed")

		gt.Bool(t, errors.Is(got, orig)).True()
		gt.Bool(t, strings.Contains(buf.String(), "background task failed")).True()
		gt.Bool(t, strings.Contains(buf.String(), "boom")).True()
		gt.Bool(t, strings.Contains(buf.String(), "sweep")).True()
	})

	t.Run("plain errors are logged without values", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), logging.New(&buf, slog.LevelInfo, logging.FormatJSON))

		orig := errors.New("plain failure")
		got := errutil.Handle(ctx, orig, "unit of work failed")

		gt.Bool(t, errors.Is(got, orig)).True()
		gt.Bool(t, strings.Contains(buf.String(), "plain failure")).True()
	})
}

package safe

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/deploydoctor/pkg/utils/logging"
)

// Close closes c and logs a failure instead of returning it. A nil c is
// ignored and io.EOF is not a failure.
func Close(c io.Closer) {
	if c == nil {
		return
	}

	if err := c.Close(); err != nil && !errors.Is(err, io.EOF) {
		logging.Default().Warn("failed to close resource",
			slog.String("type", fmt.Sprintf("%T", c)),
			slog.Any("error", err),
		)
	}
}

package logging

import (
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
)

// New builds a Logger for the named backend writing JSON to w (slog only;
// zap writes to stderr through its production config).
func New(backend string, w io.Writer) (Logger, error) {
	switch backend {
	case "", BackendSlog:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil))), nil
	case BackendZap:
		z, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("zap init: %w", err)
		}
		return NewZapLogger(z), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

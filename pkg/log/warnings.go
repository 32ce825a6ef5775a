package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// InitWarningLogger routes library warnings (errors.Warn) through a zerolog
// logger writing to w. Warning types implementing zerolog.LogObjectMarshaler
// are emitted as structured objects; anything else falls back to the error
// message.
func InitWarningLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Str("channel", "warnings").Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("library warning")
			return
		}
		ev.Err(warning).Msg("library warning")
	})

	return logger
}

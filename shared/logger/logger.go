package logger

import (
	"io"
	"os"
	"parking/config"
	"parking/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes human readable lines to stdout. Production switches to JSON in UseEnvironmentOutput.
func InitLogger() {
	InitLoggerWithOutput(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func InitLoggerWithOutput(output io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = stackMarshaler
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	log.Trace().Msg("logger ready")
}

func UseEnvironmentOutput(cfg *config.Config) {
	if cfg.Server.Env != constant.ServerEnvProduction {
		return
	}

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. An unparsable level logs everything.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("level", level.String()).Msg("log level set")
}

func stackMarshaler(err error) any {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	var tracer stackTracer
	if !errors.As(err, &tracer) {
		return nil
	}

	frames := make([]string, 0, len(tracer.StackTrace()))
	for _, frame := range tracer.StackTrace() {
		frames = append(frames, fmtFrame(frame))
	}

	return frames
}

func fmtFrame(frame errors.Frame) string {
	text, _ := frame.MarshalText()

	return string(text)
}

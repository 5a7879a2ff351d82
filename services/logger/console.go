package logsvc

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/trezcool/gradebook/core"
)

var exitFunc = os.Exit // mockable

// ConsoleLogger writes leveled, structured records with zerolog.
type ConsoleLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger reads `logLevel` and `logPretty` from conf. Output defaults to stderr.
func NewConsoleLogger(conf *viper.Viper, out io.Writer) *ConsoleLogger {
	if out == nil {
		out = os.Stderr
	}
	level, err := zerolog.ParseLevel(core.CleanString(conf.GetString("logLevel"), true /* lower */))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if conf.GetBool("debug") && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	w := out
	if conf.GetBool("logPretty") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: out != os.Stderr && out != os.Stdout}
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Str("app", conf.GetString("appName")).Logger()
	return &ConsoleLogger{zl: zl}
}

// expected fmt: msg | error, map[string]interface{}, uuid.UUID
func (l ConsoleLogger) log(e *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			e = e.Err(v)
		case map[string]interface{}:
			e = e.Fields(v)
		case uuid.UUID:
			e = e.Str("session", v.String())
		default:
			e = e.Interface("extra", v)
		}
	}
	e.Msg(msg)
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.log(l.zl.Debug(), msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { l.log(l.zl.Info(), msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { l.log(l.zl.Warn(), msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.log(l.zl.Error(), msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.log(l.zl.WithLevel(zerolog.FatalLevel), msg, args)
	exitFunc(1)
}

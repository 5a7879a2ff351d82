package logsvc

import (
	"github.com/google/uuid"
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/gradebook/core"
)

// RollbarLogger reports to Rollbar and forwards every record to another core.Logger.
type RollbarLogger struct {
	next core.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(next core.Logger, conf *viper.Viper) *RollbarLogger {
	rollbar.SetToken(conf.GetString("rollbarToken"))
	rollbar.SetEnvironment(conf.GetString("env"))
	rollbar.SetCodeVersion(conf.GetString("version"))
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.GetString("rollbarToken") != "")
	return &RollbarLogger{next: next}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// New returns the logger configured by conf: a zerolog console logger, wrapped with
// Rollbar reporting when `rollbarToken` is set.
func New(conf *viper.Viper) core.Logger {
	console := NewConsoleLogger(conf, nil)
	if conf.GetString("rollbarToken") == "" {
		return console
	}
	return NewRollbarLogger(console, conf)
}

// expected fmt: msg | error, map[string]interface{}, uuid.UUID (session id)
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var sessSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// set the session as the rollbar person
		if id, ok := arg.(uuid.UUID); ok {
			if !sessSet { // only set one session
				rollbar.SetPerson(id.String(), "", "")
				sessSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !sessSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.next.Debug(msg, args...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.next.Info(msg, args...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.next.Warn(msg, args...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.next.Error(msg, args...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.next.Fatal(msg, args...)
}

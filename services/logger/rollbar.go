package logsvc

import (
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/user"
)

// RollbarLogger writes structured log lines and reports them to Rollbar when enabled.
type RollbarLogger struct {
	log *zap.SugaredLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(log *zap.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{log: log.Sugar()}
}

// NewZap builds the zap logger used as RollbarLogger's output.
func NewZap(conf *core.Config) (*zap.Logger, error) {
	zconf := zap.NewProductionConfig()
	if conf.Debug {
		zconf = zap.NewDevelopmentConfig()
	}
	zconf.DisableStacktrace = true
	zconf.InitialFields = map[string]interface{}{"app": conf.AppName, "build": conf.Build}
	return zconf.Build(zap.AddCallerSkip(1))
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close waits for pending Rollbar reports and flushes the output.
func (l RollbarLogger) Close() {
	rollbar.Wait()
	_ = l.log.Sync()
}

// expected fmt: msg | error, map[string]interface{}, user.User
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// set logged in User
		if usr, ok := arg.(user.User); ok {
			if !usrSet { // only set one User
				rollbar.SetPerson(usr.ID, usr.ProfileHandle(), usr.Email)
				usrSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

// fields turns args into zap key-value pairs.
func fields(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, 2*len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case error:
			kvs = append(kvs, zap.Error(v))
		case user.User:
			kvs = append(kvs, zap.String("user", v.ID))
		case map[string]interface{}:
			for k, val := range v {
				kvs = append(kvs, zap.Any(k, val))
			}
		default:
			kvs = append(kvs, zap.Any(fmt.Sprintf("arg%d", i), v))
		}
	}
	return kvs
}

func (l RollbarLogger) write(level zapcore.Level, msg string, args []interface{}) {
	kvs := fields(args)
	switch level {
	case zapcore.DebugLevel:
		l.log.Debugw(msg, kvs...)
	case zapcore.InfoLevel:
		l.log.Infow(msg, kvs...)
	case zapcore.WarnLevel:
		l.log.Warnw(msg, kvs...)
	case zapcore.ErrorLevel:
		l.log.Errorw(msg, kvs...)
	default:
		l.log.Fatalw(msg, kvs...)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.write(zapcore.DebugLevel, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.write(zapcore.InfoLevel, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.write(zapcore.WarnLevel, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.write(zapcore.ErrorLevel, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.write(zapcore.FatalLevel, msg, args)
}

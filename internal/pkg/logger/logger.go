package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger: colored console output in development,
// JSON on stderr everywhere else.
func New(forDevel bool) *zap.SugaredLogger {
	return zap.New(Core(forDevel), zap.AddCaller()).Sugar()
}

func Core(forDevel bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		if forDevel {
			return true
		}
		return lvl > zapcore.DebugLevel
	})

	var encoder zapcore.Encoder
	if forDevel {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	return zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), levels)
}

// Nop is used by tests and tools that do not care about output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

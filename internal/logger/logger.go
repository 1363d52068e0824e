package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger

// InitLogger 初始化生产模式日志
func InitLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	Log = logger.Sugar()
}

// InitLoggerDev 初始化开发模式日志（可读性更好）
func InitLoggerDev() {
	config := zap.NewDevelopmentConfig()

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	Log = logger.Sugar()
}

// Sync 刷出缓冲日志
func Sync() {
	if Log != nil {
		Log.Sync()
	}
}

package logger

import (
	"sync"

	"realtime-service/config"

	"go.uber.org/zap"
)

var (
	instance *zap.SugaredLogger
	once     sync.Once
)

// L returns the process-wide sugared logger. Development mode is selected by
// APP_ENV=development.
func L() *zap.SugaredLogger {
	once.Do(func() {
		var l *zap.Logger
		var err error
		if config.Config("APP_ENV") == "development" {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			l = zap.NewNop()
		}
		instance = l.Sugar()
	})
	return instance
}

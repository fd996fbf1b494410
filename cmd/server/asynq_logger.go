package main

import (
	"fmt"
	"os"

	"github.com/cinesuggest/web/internal/logging"
)

// asynqLogger routes asynq's log lines through zerolog
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) {
	logging.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (asynqLogger) Info(args ...interface{}) {
	logging.Info().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (asynqLogger) Warn(args ...interface{}) {
	logging.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (asynqLogger) Error(args ...interface{}) {
	logging.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (asynqLogger) Fatal(args ...interface{}) {
	logging.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
	os.Exit(1)
}

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/preston-bernstein/nba-stats-proxy/internal/logging"
)

// Recovery turns a handler panic into an empty 500 and logs it.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)(next)
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	logging.Error(l.logger, "panic recovered", nil, "panic", fmt.Sprint(v...))
}

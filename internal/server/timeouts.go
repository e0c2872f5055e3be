package server

import "time"

const (
	readTimeout  = 10 * time.Second
	// Must outlast the 10s upstream bound so timeouts still produce an error envelope.
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
)

// StubHTTPServer implements the server's httpServer interface without opening sockets.
// ListenAndServe blocks until Shutdown when Block is set.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       bool

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
	stopped       chan struct{}
}

// NewStubHTTPServer returns a stub that blocks in ListenAndServe like a real server.
func NewStubHTTPServer(addr string, handler http.Handler) *StubHTTPServer {
	return &StubHTTPServer{AddrVal: addr, HandlerVal: handler, Block: true, stopped: make(chan struct{})}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listenCalls.Add(1)
	if s.ListenErr != nil {
		return s.ListenErr
	}
	if s.Block && s.stopped != nil {
		<-s.stopped
		return http.ErrServerClosed
	}
	return nil
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	if s.shutdownCalls.Add(1) == 1 && s.stopped != nil {
		close(s.stopped)
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int {
	return int(s.listenCalls.Load())
}

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int {
	return int(s.shutdownCalls.Load())
}

// ErrListen is returned by stubs simulating a port already in use.
var ErrListen = errors.New("listen failure")

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark/trace"
)

type serverOption func(*server)

func withAddr(addr string) serverOption {
	return func(s *server) {
		s.addr = addr
	}
}

func withSource(src trace.Source) serverOption {
	return func(s *server) {
		s.source = src
	}
}

type server struct {
	addr   string
	source trace.Source
	mux    *http.ServeMux
}

func newServer(opts ...serverOption) *server {
	s := &server{
		addr: "127.0.0.1:18900",
		mux:  http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/traces", s.handleListTraces)
	s.mux.HandleFunc("GET /api/traces/{id}", s.handleGetTrace)
	return s
}

func (s *server) handler() http.Handler {
	return s.mux
}

func (s *server) start(ctx context.Context) error {
	return serve(ctx, s.addr, s.mux, "trace API")
}

// serve runs handler on addr until ctx is canceled.
func serve(ctx context.Context, addr string, handler http.Handler, name string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return goerr.Wrap(err, "failed to listen", goerr.V("addr", addr))
	}
	ctxlog.From(ctx).Info("starting server", "name", name, "addr", listener.Addr().String())

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return goerr.Wrap(err, "server error", goerr.V("name", name))
	}
	return nil
}

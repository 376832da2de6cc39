package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/weegigs/wee-poll-go/connectors/wphttp"
	"github.com/weegigs/wee-poll-go/counter"
	"github.com/weegigs/wee-poll-go/support"
	"github.com/weegigs/wee-poll-go/wp"
)

const shutdownTimeout = 5 * time.Second

const serviceName = "wee-poll-counter"

type Tracing struct {
	Exporter string
}

type Server struct {
	log     *zerolog.Logger
	counter *counter.Counter
	http    *http.Server
}

func NewServer(cfg support.ServerConfig, tracing Tracing, c *counter.Counter, handler http.Handler, log *zerolog.Logger) *Server {
	log.Debug().Str("exporter", tracing.Exporter).Dur("tick", cfg.Tick).Msg("server configured")

	return &Server{
		log:     log,
		counter: c,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", s.http.Addr)
	}
	return listener, nil
}

// Serve runs the counter and serves requests on listener until ctx is done,
// then shuts the server down.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.counter.Run(ctx)

	failed := make(chan error, 1)
	go func() {
		failed <- s.http.Serve(listener)
	}()

	s.log.Info().Str("address", listener.Addr().String()).Msg("listening")

	select {
	case err := <-failed:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	s.log.Info().Uint64("value", s.counter.Value()).Msg("shutting down")

	shutdown, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()

	return errors.Wrap(s.http.Shutdown(shutdown), "failed to shut down")
}

func ProvideTracing(ctx context.Context, cfg support.TelemetryConfig, log *zerolog.Logger) (Tracing, func(), error) {
	shutdown, err := wp.InstallTracing(ctx, wp.TelemetryOptions{
		Service:  serviceName,
		Exporter: cfg.Exporter,
		Endpoint: cfg.Endpoint,
		Insecure: cfg.Insecure,
	})
	if err != nil {
		return Tracing{}, nil, errors.Wrap(err, "failed to install tracing")
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}

	return Tracing{Exporter: cfg.Exporter}, cleanup, nil
}

func ProvideCounter(cfg support.ServerConfig, log *zerolog.Logger) *counter.Counter {
	return counter.New(cfg.Tick, counter.Logger(log))
}

func ProvideHandler(source wphttp.Source, log *zerolog.Logger) http.Handler {
	return wphttp.NewHandler(source, wphttp.Logger(log))
}

var Live = wire.NewSet(
	wire.FieldsOf(new(support.Config), "Server", "Log", "Telemetry"),
	support.NewLogger,
	ProvideTracing,
	ProvideCounter,
	ProvideHandler,
	wire.Bind(new(wphttp.Source), new(*counter.Counter)),
	NewServer,
)

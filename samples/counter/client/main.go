package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-poll-go/connectors/wphttp"
	"github.com/weegigs/wee-poll-go/poller"
	"github.com/weegigs/wee-poll-go/support"
	"github.com/weegigs/wee-poll-go/wp"
)

const serviceName = "wee-poll-client"

func run() int {
	cfg, err := support.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}

	logger, err := support.NewLogger(cfg.Log)
	if err != nil {
		log.Error().Err(err).Msg("failed to configure logging")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := wp.InstallTracing(ctx, wp.TelemetryOptions{
		Service:  serviceName,
		Exporter: cfg.Telemetry.Exporter,
		Endpoint: cfg.Telemetry.Endpoint,
		Insecure: cfg.Telemetry.Insecure,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to install tracing")
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	count := wp.NewObservable[uint64](0)
	unsubscribe := count.Subscribe(func(value uint64) {
		logger.Info().Uint64("count", value).Msg("count")
	})
	defer unsubscribe()

	p := poller.New(
		cfg.Client.Endpoint,
		count,
		poller.Interval(cfg.Client.Interval),
		poller.Client(&http.Client{Transport: wphttp.Transport(nil)}),
		poller.Logger(logger),
	)

	logger.Info().Str("endpoint", cfg.Client.Endpoint).Dur("interval", cfg.Client.Interval).Msg("polling")
	stopPolling := p.Start(ctx)
	<-ctx.Done()
	stopPolling()

	return 0
}

func main() {
	os.Exit(run())
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-poll-go/support"
)

func run() int {
	cfg, err := support.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := newServer(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to configure server")
		return 1
	}
	defer cleanup()

	listener, err := server.Listen()
	if err != nil {
		server.log.Error().Err(err).Msg("failed to start server")
		return 1
	}

	if err := server.Serve(ctx, listener); err != nil {
		server.log.Error().Err(err).Msg("server stopped")
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}

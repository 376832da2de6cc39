//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/wee-poll-go/support"
)

func newServer(ctx context.Context, cfg support.Config) (*Server, func(), error) {
	panic(wire.Build(Live))
}

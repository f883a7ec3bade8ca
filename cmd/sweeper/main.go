package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"homestay/config"
	"homestay/di"
	"homestay/shared/logger"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	di.InitializeSweeper().Run(ctx)
}

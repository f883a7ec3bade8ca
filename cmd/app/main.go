package main

import (
	"github.com/rs/zerolog/log"

	"homestay/config"
	"homestay/di"
	"homestay/helper"
	"homestay/shared/logger"
)

// @title Homestay API
// @version 1.0
// @description Homestay reservations and VNPay payment reconciliation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if err := helper.AutoMigrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	http := di.InitializeService()
	http.Serve()
}

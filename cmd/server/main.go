package main

import (
	"github.com/yogeshkhant77/Booksy/internal/app"
	"github.com/yogeshkhant77/Booksy/internal/app/config"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
)

func main() {
	cfg := config.MustLoad()

	log := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})

	if err := app.Run(cfg, log); err != nil {
		log.Fatalf("application terminated: %v", err)
	}
}

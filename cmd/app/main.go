package main

import (
	"lunabay/config"
	"lunabay/di"
	"lunabay/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}

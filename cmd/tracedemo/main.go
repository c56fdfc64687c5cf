package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/reqscope/pkg/config"
	"github.com/dmitrymomot/reqscope/pkg/httpserver"
	"github.com/dmitrymomot/reqscope/pkg/logger"
	"github.com/dmitrymomot/reqscope/pkg/reqscope"
	"github.com/dmitrymomot/reqscope/pkg/requestid"
)

type Config struct {
	Log   logger.Config
	HTTP  httpserver.Config
	Trace reqscope.Config
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(
			reqscope.LoggerExtractor(),
			requestid.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithScope(reqscope.WithConfig(cfg.Trace)),
		httpserver.WithMiddleware(requestid.Middleware),
	)

	if err := srv.Run(context.Background(), newRouter(log)); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

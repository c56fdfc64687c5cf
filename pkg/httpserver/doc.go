// Package httpserver runs an http.Server with graceful shutdown, optional
// request scope tracking and slog logging.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives or
// Shutdown is called. WithScope installs reqscope.Middleware as the outermost
// handler so every request gets its own reqscope.Scope and trace id;
// WithMiddleware adds further middleware inside it.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithScope(reqscope.WithConfig(cfg.Trace)),
//		httpserver.WithMiddleware(requestid.Middleware),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run joins listen errors with ErrStart and Shutdown joins shutdown errors
// with ErrShutdown; check them with errors.Is.
package httpserver

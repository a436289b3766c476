// Package httpserver runs an http.Handler with graceful shutdown.
//
// The storefront CLI uses it to serve the in-memory fake API:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	mux := http.NewServeMux()
//	mux.Handle("/", fakeapi.New())
//	mux.Handle("/healthz", httpserver.HealthCheckHandler(log))
//	err := srv.Run(ctx, mux)
//
// Run returns after ctx is cancelled, SIGINT or SIGTERM is received, or
// Shutdown is called. Listening on ":0" binds a free port; Addr and start
// hooks report the bound address.
package httpserver

package main

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/fakeapi"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

func serveCmd(getApp appFunc) *cobra.Command {
	var (
		addr     string
		secret   string
		tokenTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory storefront API for local development",
		Long: `Run an in-memory storefront API for local development.

The server seeds demo products and the accounts Alice/11111 and
admin/admin123. Point the client at it with --api http://<addr>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}

			opts := []fakeapi.Option{fakeapi.WithLogger(a.log)}
			if secret != "" {
				opts = append(opts, fakeapi.WithSecret(secret))
			}
			if tokenTTL > 0 {
				opts = append(opts, fakeapi.WithTokenTTL(tokenTTL))
			}

			r := chi.NewRouter()
			r.Use(requestid.Middleware)
			r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
			r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
			r.Mount("/", fakeapi.New(opts...))

			cfg := a.cfg.HTTP
			if addr != "" {
				cfg.Addr = addr
			}
			srv := httpserver.NewFromConfig(cfg,
				httpserver.WithLogger(a.log),
				httpserver.WithStartHook(func(ln net.Addr) {
					fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", ln)
				}),
			)
			return srv.Run(cmd.Context(), r)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default $STOREFRONT_HTTP_ADDR)")
	cmd.Flags().StringVar(&secret, "secret", "", "Token signing secret")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 0, "Token lifetime")
	return cmd
}

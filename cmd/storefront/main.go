// Command storefront is a terminal client for the storefront API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/config"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code: 0 on
// success, 2 when the session is missing or expired, 1 otherwise.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var a *app
	root := rootCmd(&a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a != nil {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err == nil {
		return 0
	}

	if a != nil {
		a.out.Error(root.ErrOrStderr(), err)
	} else {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	if apiclient.IsUnauthorized(err) {
		return 2
	}
	return 1
}

func rootCmd(a **app) *cobra.Command {
	var (
		envFile string
		jsonOut bool
		baseURL string
		lang    string
		store   string
	)

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront terminal client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts := []config.Option{config.WithPrefix(envPrefix)}
			if envFile != "" {
				opts = append(opts, config.WithDotEnv(envFile))
			} else {
				opts = append(opts, config.WithDotEnv(".env"), config.WithOptionalFiles())
			}
			cfg, err := config.Load[Config](opts...)
			if err != nil {
				return err
			}

			if _, err := logger.ParseFormat(cfg.LogFormat); err != nil {
				return err
			}
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if lang != "" {
				cfg.API.Language = lang
			}
			if store != "" {
				cfg.Session.Store = store
			}

			*a = newApp(cfg, cmd.OutOrStdout(), jsonOut)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Read configuration from this .env file")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	cmd.PersistentFlags().StringVar(&baseURL, "api", "", "API base URL (default $STOREFRONT_API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&lang, "lang", "", "Message language: en or zh")
	cmd.PersistentFlags().StringVar(&store, "store", "", "Token store: file, memory or redis")

	cmd.AddGroup(
		&cobra.Group{ID: "account", Title: "Account:"},
		&cobra.Group{ID: "catalog", Title: "Catalog:"},
		&cobra.Group{ID: "dev", Title: "Development:"},
	)

	getApp := func() (*app, error) {
		if *a == nil {
			return nil, errors.New("storefront: not initialized")
		}
		return *a, nil
	}

	for _, c := range []*cobra.Command{
		loginCmd(getApp),
		logoutCmd(getApp),
		whoamiCmd(getApp),
		registerCmd(getApp),
		profileCmd(getApp),
		passwdCmd(getApp),
	} {
		c.GroupID = "account"
		cmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		productsCmd(getApp),
		productCmd(getApp),
		categoriesCmd(getApp),
		homeCmd(getApp),
	} {
		c.GroupID = "catalog"
		cmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		statusCmd(getApp),
		serveCmd(getApp),
	} {
		c.GroupID = "dev"
		cmd.AddCommand(c)
	}

	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/metrics"
	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/requestid"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// app holds everything a command needs. Clients are built on first use so
// commands that never talk to the API, like serve, do not need one.
type app struct {
	cfg     Config
	log     *slog.Logger
	loc     i18n.Localizer
	metrics *metrics.Collector
	out     *printer

	api   *apiclient.Client
	sess  *session.Manager
	rdb   *goredis.Client
	store session.TokenStore
}

func newApp(cfg Config, out io.Writer, jsonOut bool) *app {
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		format = logger.FormatText
	}
	log := logger.New(
		logger.WithEnvironment(cfg.Env, "storefront"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(format),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	loc := i18n.Default().Localizer(cfg.API.Language)
	return &app{
		cfg:     cfg,
		log:     log,
		loc:     loc,
		metrics: metrics.New("storefront"),
		out:     newPrinter(out, jsonOut, catalog.NewFormatter(loc)),
	}
}

func (a *app) client() (*apiclient.Client, error) {
	if a.api != nil {
		return a.api, nil
	}
	api, err := apiclient.NewFromConfig(a.cfg.API,
		apiclient.WithLogger(a.log),
		apiclient.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, err
	}
	a.api = api
	return api, nil
}

func (a *app) catalog() (*catalog.Client, error) {
	api, err := a.client()
	if err != nil {
		return nil, err
	}
	return catalog.NewClient(api, catalog.WithLogger(a.log)), nil
}

// session returns an initialized manager: a persisted token has been
// validated or dropped by the time it returns.
func (a *app) session(ctx context.Context) (*session.Manager, error) {
	if a.sess != nil {
		return a.sess, nil
	}
	api, err := a.client()
	if err != nil {
		return nil, err
	}
	store, err := a.tokenStore(ctx)
	if err != nil {
		return nil, err
	}

	mgr := session.New(api,
		session.WithStore(store),
		session.WithLogger(a.log),
		session.WithMetrics(a.metrics),
	)
	if err := mgr.Initialize(ctx); err != nil && !apiclient.IsUnauthorized(err) {
		a.log.WarnContext(ctx, "session restore failed", logger.Error(err))
	}
	a.sess = mgr
	return mgr, nil
}

func (a *app) tokenStore(ctx context.Context) (session.TokenStore, error) {
	if a.store != nil {
		return a.store, nil
	}

	key := a.cfg.Session.TokenKey
	if key == "" {
		key = session.DefaultTokenKey
	}

	switch a.cfg.Session.Store {
	case "memory":
		a.store = session.NewMemoryTokenStore("")
	case "redis":
		rdb, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.rdb = rdb
		a.store = redis.NewTokenStoreFromConfig(rdb, a.cfg.Redis, key)
	case "file", "":
		path := a.cfg.Session.TokenFile
		if path == "" {
			var err error
			if path, err = session.DefaultTokenFile(); err != nil {
				return nil, err
			}
		}
		a.store = session.NewFileTokenStore(path, key)
	default:
		return nil, fmt.Errorf("unknown session store %q", a.cfg.Session.Store)
	}
	return a.store, nil
}

func (a *app) Close() error {
	var errs []error
	if a.sess != nil {
		errs = append(errs, a.sess.Close())
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.cfg.MetricsFile != "" {
		errs = append(errs, prometheus.WriteToTextfile(a.cfg.MetricsFile, a.metrics.Registry()))
	}
	return errors.Join(errs...)
}

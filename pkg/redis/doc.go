// Package redis connects to Redis and keeps the storefront session token
// there.
//
// Connect retries the initial ping as configured by Config, whose fields are
// read from REDIS_* environment variables by pkg/config. TokenStore
// satisfies session.TokenStore:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewTokenStoreFromConfig(client, cfg, session.DefaultTokenKey)
//	mgr := session.New(api, session.WithStore(store))
//
// TokenStore.Ping doubles as a readiness probe.
package redis

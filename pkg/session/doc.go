// Package session owns the storefront client session: the bearer token, the
// signed-in user and the authentication status.
//
// Status moves through a small state machine:
//
//	Unauthenticated --login--> Authenticated
//	Authenticated --logout|invalidate--> Unauthenticated
//	Unauthenticated --restore--> Authenticating
//	Authenticating --validated--> Authenticated
//	Authenticating --rejected--> Unauthenticated
//	Authenticated --profile_updated--> Authenticated
//
// The Manager installs "Authorization: Bearer <token>" on the shared
// apiclient.Client whenever the token changes and removes it on logout, under
// the same lock as the token assignment. It also observes every response: a
// 401 to a request that carried the current token forces a logout, while the
// failing call still returns an apiclient.KindUnauthorized error.
//
// Tokens survive restarts through a TokenStore. MemoryTokenStore and
// FileTokenStore live here; pkg/redis provides a shared one.
//
//	client, _ := apiclient.New("http://localhost:8080")
//	store := session.NewFileTokenStore(path, session.DefaultTokenKey)
//	mgr := session.New(client, session.WithStore(store), session.WithLogger(log))
//	defer mgr.Close()
//
//	_ = mgr.Initialize(ctx)
//	if !mgr.IsAuthenticated() {
//	    if _, err := mgr.Login(ctx, "Alice", "11111"); err != nil {
//	        fmt.Println(err.(*apiclient.Error).Message)
//	    }
//	}
package session

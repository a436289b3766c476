// Package fakeapi is an in-process stand-in for the storefront REST API.
//
// It serves the user and catalog endpoints with the same wire shapes as the
// real backend: bcrypt-hashed accounts, HS256 JWT bearer tokens, plain-text
// registration responses, {data:{content,totalPages}} product pages and
// {message} error bodies. Tests mount it with httptest; the CLI can run it
// with "storefront fakeapi".
//
//	api := fakeapi.New()
//	srv := httptest.NewServer(api)
//	defer srv.Close()
//
// The default fixtures contain the user Alice with password 11111, a handful
// of categories and enough products to page through.
package fakeapi

// Package apiclient is the shared HTTP transport of the storefront client.
//
// A Client resolves paths against a base URL, sends JSON, and keeps a set of
// default headers that can change at runtime. The session layer uses that to
// install and remove "Authorization: Bearer <token>" so every later request
// carries the current credentials.
//
// Every failure crossing the package boundary is an *Error classified into a
// Kind:
//
//   - KindNetwork: no response (connection refused, DNS, timeout, cancelled)
//   - KindRemote: the server rejected the request and said why
//   - KindUnknown: rejection without a message, or an unexpected body
//   - KindUnauthorized: 401 on a request that carried credentials
//   - KindValidation: produced client-side by pkg/forms, never sent
//
// Error.Message is always displayable: the server's own message when present,
// otherwise a localized fallback from pkg/i18n. WithFallback swaps the generic
// fallback for an operation-specific one ("Login failed") while keeping server
// messages intact.
//
// Observers registered with Observe see the status of every response before
// the issuing call returns, which is how pkg/session turns a 401 into a logout:
//
//	remove := client.Observe(func(r apiclient.Response) {
//	    if r.Status == http.StatusUnauthorized && r.Authorization != "" {
//	        log.Println("credentials rejected:", r.Path)
//	    }
//	})
//	defer remove()
//
// Each request carries an X-Request-ID taken from the context (see
// pkg/requestid) or generated on the fly.
package apiclient

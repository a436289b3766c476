// Package requestid carries request correlation identifiers between the
// storefront client, its logs and the API it talks to.
//
// On the client side Ensure attaches an ID to a context before a request is
// sent; apiclient copies it into the X-Request-ID header so server logs and
// client logs share the same value. On the server side (the in-process fake
// API) Middleware accepts a well-formed incoming ID or generates a UUIDv4 and
// echoes it back in the response.
//
//	ctx, id := requestid.Ensure(ctx)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(ctx, "loading products") // request_id=<id>
package requestid

// Package requestid tags outgoing HTTP requests with an X-Request-ID header
// and keeps the id in context.Context so client-side log records and the
// server's access log can be correlated.
//
// Ensure attaches a fresh UUID to a context unless a valid id is already
// present. Transport wraps an http.RoundTripper and copies the context id
// (or a new one) into the request header:
//
//	client := &http.Client{Transport: requestid.Transport(http.DefaultTransport)}
//	ctx, id := requestid.Ensure(ctx)
//	log.InfoContext(ctx, "listing files") // request_id=<id> via LoggerExtractor
package requestid

package requestid

import "net/http"

type roundTripper struct {
	next http.RoundTripper
}

// Transport wraps next so every request carries the Header. An id already
// set on the request is kept; otherwise the context id is used, or a new one
// is generated. A nil next means http.DefaultTransport.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &roundTripper{next: next}
}

func (t *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if IsValid(req.Header.Get(Header)) {
		return t.next.RoundTrip(req)
	}
	ctx, id := Ensure(req.Context())
	r := req.Clone(ctx)
	r.Header.Set(Header, id)
	return t.next.RoundTrip(r)
}

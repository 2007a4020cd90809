// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import "net/http"

// BasicAuthTransport attaches HTTP Basic credentials to every outbound
// request. It wraps Base (http.DefaultTransport when nil) so timeouts and
// proxies configured on the underlying transport still apply.
type BasicAuthTransport struct {
	Username string
	Password string
	Base     http.RoundTripper
}

// NewBasicAuthTransport returns a transport sending the given credentials.
func NewBasicAuthTransport(username, password string, base http.RoundTripper) *BasicAuthTransport {
	return &BasicAuthTransport{Username: username, Password: password, Base: base}
}

// RoundTrip clones the request, sets the Authorization header and forwards
// to the base transport. The clone keeps RoundTrip side-effect free as the
// http.RoundTripper contract requires.
func (t *BasicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.Username, t.Password)
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

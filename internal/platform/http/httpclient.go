// Package http holds outbound HTTP plumbing shared by platform adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates the client used for calls to remote services such as
// the media backend.
//
// Settings:
//   - Proxy: honours HTTP_PROXY and friends
//   - Dialer.Timeout: shorter TCP connect timeout than the default
//   - MaxIdleConns / MaxIdleConnsPerHost: uploads go to a single host, so keep
//     enough idle connections to it
//   - TLSHandshakeTimeout, ResponseHeaderTimeout: bound slow remotes
//   - Client.Timeout: whole request, from the caller
//
// http.DefaultClient has no timeout; never use it for outbound calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

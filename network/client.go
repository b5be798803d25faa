// Package network provides the shared HTTP client used for the CreaTV REST APIs.
package network

import (
	"net/http"
	"time"

	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
)

// DefaultTimeout is used when api.timeout_seconds is not positive.
const DefaultTimeout = 30 * time.Second

// Client is shared by every API client unless one is injected.
var Client = NewClient(DefaultTimeout)

// NewClient returns a client with the tuned transport and the given timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{next: newTransport()},
	}
}

// FromConfig returns a client honoring api.timeout_seconds.
func FromConfig() *http.Client {
	timeout := time.Duration(viper.GetInt(key.APITimeout)) * time.Second
	if timeout <= 0 {
		return Client
	}

	return NewClient(timeout)
}

func newTransport() http.RoundTripper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 32
	t.MaxIdleConnsPerHost = 8
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = 20 * time.Second
	t.ExpectContinueTimeout = time.Second

	if err := http2.ConfigureTransport(t); err != nil {
		log.Warnf("http2 disabled: %s", err)
	}

	return t
}

type userAgentTransport struct {
	next http.RoundTripper
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return u.next.RoundTrip(req)
}

// Package forge provides an unofficial client SDK for the Autodesk Forge
// (Autodesk Platform Services) REST APIs, including authentication,
// object storage, model derivatives, and webhooks.
package forge

import "time"

var defaultClientTimeout = 60 * time.Second

// safety margin before expiry after which a cached token is refreshed
const defaultExpiryLeeway = time.Minute

type clientConfig struct {
	baseURL      string
	timeout      time.Duration
	expiryLeeway time.Duration
}

func newClientConfig(baseURL string) clientConfig {
	return clientConfig{
		baseURL:      baseURL,
		timeout:      defaultClientTimeout,
		expiryLeeway: defaultExpiryLeeway,
	}
}

// ClientOption configures a Forge API client.
type ClientOption func(*clientConfig)

// WithBaseURL overrides the default base URL of a client, e.g. to point it
// at a mock server.
func WithBaseURL(baseURL string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = baseURL
	}
}

// WithTimeout overrides the default 60s timeout of the underlying HTTP
// client. A zero duration disables the timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithExpiryLeeway overrides the safety margin used by OAuthTokenProvider
// when deciding whether a cached token is still usable. Default is one
// minute, so tokens are refreshed a bit before expiry to avoid near-expiry
// races.
func WithExpiryLeeway(leeway time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.expiryLeeway = leeway
	}
}

package forge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/petrbroz/forge-go/httpclient"
	"github.com/petrbroz/forge-go/model"
)

// DefaultAuthBaseURL is the production endpoint of the Forge Authentication
// service.
const DefaultAuthBaseURL = "https://developer.api.autodesk.com/authentication/v1"

// TokenProvider supplies a valid bearer token for a set of scopes. Use
// OAuthTokenProvider when client credentials are available, or
// StaticTokenProvider to wrap a pre-obtained access token.
type TokenProvider = httpclient.TokenProvider

// AuthenticationClient calls the Forge Authentication service. It is
// stateless aside from its configuration and safe to share across
// concurrent callers.
type AuthenticationClient struct {
	http    httpclient.HTTPClient
	baseURL string
}

// NewAuthenticationClient creates a new authentication client against
// DefaultAuthBaseURL unless overridden with WithBaseURL.
func NewAuthenticationClient(opts ...ClientOption) *AuthenticationClient {
	cfg := newClientConfig(DefaultAuthBaseURL)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &AuthenticationClient{
		http: httpclient.NewHTTPClient(httpclient.Option{
			BaseURL: cfg.baseURL,
			Timeout: cfg.timeout,
		}),
		baseURL: cfg.baseURL,
	}
}

// Authenticate generates a two-legged access token for a specific set of
// scopes using the client credentials grant. The returned token carries an
// absolute ExpiresAt derived from the server-reported lifetime.
func (c *AuthenticationClient) Authenticate(ctx context.Context, clientID, clientSecret string, scopes []model.Scope) (model.AccessToken, error) {
	if clientID == "" {
		return model.AccessToken{}, &model.ValidationError{Param: "clientID", Message: "must not be empty"}
	}
	if clientSecret == "" {
		return model.AccessToken{}, &model.ValidationError{Param: "clientSecret", Message: "must not be empty"}
	}
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("scope", model.JoinScopes(scopes))
	return c.exchange(ctx, "/authenticate", form)
}

// GetToken exchanges an authorization code obtained from the callback of
// AuthorizationURL for a three-legged access token.
func (c *AuthenticationClient) GetToken(ctx context.Context, clientID, clientSecret, code, redirectURI string) (model.AccessToken, error) {
	if clientID == "" {
		return model.AccessToken{}, &model.ValidationError{Param: "clientID", Message: "must not be empty"}
	}
	if clientSecret == "" {
		return model.AccessToken{}, &model.ValidationError{Param: "clientSecret", Message: "must not be empty"}
	}
	if code == "" {
		return model.AccessToken{}, &model.ValidationError{Param: "code", Message: "must not be empty"}
	}
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	return c.exchange(ctx, "/gettoken", form)
}

// RefreshToken acquires a new access token from the refresh token returned
// by GetToken.
func (c *AuthenticationClient) RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string, scopes []model.Scope) (model.AccessToken, error) {
	if refreshToken == "" {
		return model.AccessToken{}, &model.ValidationError{Param: "refreshToken", Message: "must not be empty"}
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("scope", model.JoinScopes(scopes))
	return c.exchange(ctx, "/refreshtoken", form)
}

func (c *AuthenticationClient) exchange(ctx context.Context, path string, form url.Values) (model.AccessToken, error) {
	issuedAt := time.Now()
	var token model.AccessToken
	if err := c.http.PostForm(ctx, path, form, &token); err != nil {
		return model.AccessToken{}, authError(err)
	}
	token.ExpiresAt = issuedAt.Add(time.Duration(token.ExpiresIn) * time.Second)
	return token, nil
}

// GetUserProfile returns the profile of the authorizing end user behind a
// three-legged access token.
func (c *AuthenticationClient) GetUserProfile(ctx context.Context, accessToken string) (model.UserProfile, error) {
	if accessToken == "" {
		return model.UserProfile{}, &model.ValidationError{Param: "accessToken", Message: "must not be empty"}
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)
	data, err := c.http.GetData(ctx, "/users/@me", nil, nil, header)
	if err != nil {
		return model.UserProfile{}, err
	}
	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.UserProfile{}, model.NewAPIError(httpclient.Unknown, err.Error(), err)
	}
	return profile, nil
}

// authError folds any failure of the token endpoint into a typed AuthError.
func authError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return &model.AuthError{Status: apiErr.Status, Message: apiErr.Message, Original: apiErr}
	}
	return &model.AuthError{Status: httpclient.Unknown, Message: err.Error(), Original: err}
}

// StaticTokenProvider implements TokenProvider around a pre-obtained access
// token. It returns the wrapped token unchanged on every call and never
// refreshes; the caller asserts that the token is valid and supports all
// the scopes that may be needed.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider wraps an existing access token string.
func NewStaticTokenProvider(accessToken string) *StaticTokenProvider {
	return &StaticTokenProvider{token: accessToken}
}

// GetToken returns the wrapped token. The requested scopes are ignored and
// the expiry is unknown.
func (p *StaticTokenProvider) GetToken(_ context.Context, _ []model.Scope) (model.AccessToken, error) {
	return model.AccessToken{
		AccessToken: p.token,
		TokenType:   "Bearer",
	}, nil
}

// OAuthTokenProvider implements TokenProvider by generating (and caching)
// two-legged access tokens from application credentials. Tokens are cached
// per scope set and reused until they are within the expiry leeway of their
// expiration, at which point a fresh token is fetched. Safe for concurrent
// use.
type OAuthTokenProvider struct {
	clientID     string
	clientSecret string
	auth         *AuthenticationClient
	expiryLeeway time.Duration

	mu    sync.Mutex
	cache map[string]model.AccessToken
}

// NewOAuthTokenProvider creates a self-refreshing token provider from
// application client credentials.
func NewOAuthTokenProvider(clientID, clientSecret string, opts ...ClientOption) *OAuthTokenProvider {
	cfg := newClientConfig(DefaultAuthBaseURL)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OAuthTokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		auth:         NewAuthenticationClient(WithBaseURL(cfg.baseURL), WithTimeout(cfg.timeout)),
		expiryLeeway: cfg.expiryLeeway,
		cache:        make(map[string]model.AccessToken),
	}
}

// GetToken returns a cached token for the scope set while it remains valid,
// authenticating for a new one otherwise. Authentication failures surface
// unchanged; there is no retry.
func (p *OAuthTokenProvider) GetToken(ctx context.Context, scopes []model.Scope) (model.AccessToken, error) {
	key := model.JoinScopes(scopes)

	p.mu.Lock()
	defer p.mu.Unlock()

	if token, ok := p.cache[key]; ok && token.Valid(p.expiryLeeway) {
		return token, nil
	}
	token, err := p.auth.Authenticate(ctx, p.clientID, p.clientSecret, scopes)
	if err != nil {
		return model.AccessToken{}, err
	}
	p.cache[key] = token
	return token, nil
}

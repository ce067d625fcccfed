package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/petrbroz/forge-go/model"
)

func newTokenEndpoint(t *testing.T, expiresIn int64, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/authenticate", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.NotEmpty(t, r.PostForm.Get("client_id"))
		assert.NotEmpty(t, r.PostForm.Get("client_secret"))
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":%d,"scope":%q}`,
			*calls, expiresIn, r.PostForm.Get("scope"))
	}))
}

func TestAuthenticate(t *testing.T) {
	calls := 0
	server := newTokenEndpoint(t, 3600, &calls)
	defer server.Close()

	client := NewAuthenticationClient(WithBaseURL(server.URL))
	scopes := []model.Scope{model.ScopeViewablesRead}
	token, err := client.Authenticate(context.Background(), "client-id", "client-secret", scopes)
	assert.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Positive(t, token.ExpiresIn)
	// granted scopes are a subset of the requested ones
	assert.Subset(t, scopes, token.Scopes())
	// absolute expiry is derived from the server-reported lifetime
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
}

func TestAuthenticateValidation(t *testing.T) {
	calls := 0
	server := newTokenEndpoint(t, 3600, &calls)
	defer server.Close()

	client := NewAuthenticationClient(WithBaseURL(server.URL))

	_, err := client.Authenticate(context.Background(), "", "secret", nil)
	var valErr *model.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, "clientID", valErr.Param)

	_, err = client.Authenticate(context.Background(), "id", "", nil)
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, "clientSecret", valErr.Param)

	// no network call happened
	assert.Zero(t, calls)
}

func TestAuthenticateFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"developerMessage":"The client_id specified does not have access"}`))
	}))
	defer server.Close()

	client := NewAuthenticationClient(WithBaseURL(server.URL))
	_, err := client.Authenticate(context.Background(), "bad-id", "bad-secret", []model.Scope{model.ScopeDataRead})

	var authErr *model.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Contains(t, authErr.Message, "does not have access")
}

func TestGetTokenAuthorizationCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gettoken", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "http://localhost:3000/callback", r.PostForm.Get("redirect_uri"))
		_, _ = w.Write([]byte(`{"access_token":"three-legged","token_type":"Bearer","expires_in":1799,"refresh_token":"refresh-me"}`))
	}))
	defer server.Close()

	client := NewAuthenticationClient(WithBaseURL(server.URL))
	token, err := client.GetToken(context.Background(), "id", "secret", "the-code", "http://localhost:3000/callback")
	assert.NoError(t, err)
	assert.Equal(t, "three-legged", token.AccessToken)
	assert.Equal(t, "refresh-me", token.RefreshToken)
}

func TestRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refreshtoken", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-me", r.PostForm.Get("refresh_token"))
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":1799,"refresh_token":"refresh-me-2"}`))
	}))
	defer server.Close()

	client := NewAuthenticationClient(WithBaseURL(server.URL))
	token, err := client.RefreshToken(context.Background(), "id", "secret", "refresh-me", []model.Scope{model.ScopeViewablesRead})
	assert.NoError(t, err)
	assert.Equal(t, "fresh", token.AccessToken)

	_, err = client.RefreshToken(context.Background(), "id", "secret", "", nil)
	var valErr *model.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestGetUserProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/@me", r.URL.Path)
		assert.Equal(t, "Bearer three-legged", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"userId":"u1","userName":"jane.doe","emailId":"jane@example.com","firstName":"Jane","lastName":"Doe"}`))
	}))
	defer server.Close()

	client := NewAuthenticationClient(WithBaseURL(server.URL))
	profile, err := client.GetUserProfile(context.Background(), "three-legged")
	assert.NoError(t, err)
	assert.Equal(t, "jane.doe", profile.UserName)
	assert.Equal(t, "u1", profile.UserID)
}

func TestAuthorizationURL(t *testing.T) {
	client := NewAuthenticationClient()
	url := client.AuthorizationURL("client-id", "code", "http://localhost:3000/callback",
		[]model.Scope{model.ScopeViewablesRead}, "randomstate")
	assert.Contains(t, url, DefaultAuthBaseURL+"/authorize")
	assert.Contains(t, url, "response_type=code")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "scope=viewables%3Aread")
	assert.Contains(t, url, "state=randomstate")

	implicit := client.AuthorizationURL("client-id", "token", "http://localhost:3000/callback",
		[]model.Scope{model.ScopeViewablesRead}, "")
	assert.Contains(t, implicit, "response_type=token")
}

func TestStaticTokenProvider(t *testing.T) {
	provider := NewStaticTokenProvider("pre-obtained")
	for i := 0; i < 3; i++ {
		token, err := provider.GetToken(context.Background(), []model.Scope{model.ScopeBucketRead})
		assert.NoError(t, err)
		assert.Equal(t, "pre-obtained", token.AccessToken)
	}
}

func TestOAuthTokenProviderCacheHit(t *testing.T) {
	calls := 0
	server := newTokenEndpoint(t, 3600, &calls)
	defer server.Close()

	provider := NewOAuthTokenProvider("id", "secret", WithBaseURL(server.URL))
	scopes := []model.Scope{model.ScopeBucketRead, model.ScopeDataRead}

	first, err := provider.GetToken(context.Background(), scopes)
	assert.NoError(t, err)
	second, err := provider.GetToken(context.Background(), scopes)
	assert.NoError(t, err)

	assert.Equal(t, first.AccessToken, second.AccessToken)
	assert.Equal(t, 1, calls)
}

func TestOAuthTokenProviderRefreshAfterExpiry(t *testing.T) {
	calls := 0
	// expires_in of 30s with a 60s leeway: every cached token is already
	// inside the safety margin, so each call must authenticate again
	server := newTokenEndpoint(t, 30, &calls)
	defer server.Close()

	provider := NewOAuthTokenProvider("id", "secret", WithBaseURL(server.URL))
	scopes := []model.Scope{model.ScopeDataRead}

	first, err := provider.GetToken(context.Background(), scopes)
	assert.NoError(t, err)
	second, err := provider.GetToken(context.Background(), scopes)
	assert.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.Equal(t, 2, calls)
}

func TestOAuthTokenProviderCachesPerScopeSet(t *testing.T) {
	calls := 0
	server := newTokenEndpoint(t, 3600, &calls)
	defer server.Close()

	provider := NewOAuthTokenProvider("id", "secret", WithBaseURL(server.URL))

	_, err := provider.GetToken(context.Background(), []model.Scope{model.ScopeBucketRead})
	assert.NoError(t, err)
	_, err = provider.GetToken(context.Background(), []model.Scope{model.ScopeBucketCreate})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	// both entries stay cached independently
	_, err = provider.GetToken(context.Background(), []model.Scope{model.ScopeBucketRead})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestOAuthTokenProviderAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"developerMessage":"invalid credentials"}`))
	}))
	defer server.Close()

	provider := NewOAuthTokenProvider("id", "wrong", WithBaseURL(server.URL))
	_, err := provider.GetToken(context.Background(), []model.Scope{model.ScopeDataRead})

	var authErr *model.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
}

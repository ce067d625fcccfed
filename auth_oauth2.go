package forge

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/petrbroz/forge-go/model"
)

// AuthorizationURL generates the URL to redirect an end user to in order to
// acquire their consent for the app to access the specified resources.
// responseType must be "code" for the authorization code grant flow or
// "token" for the implicit grant flow. The optional state payload is passed
// back verbatim to the callback URL.
func (c *AuthenticationClient) AuthorizationURL(clientID, responseType, redirectURI string, scopes []model.Scope, state string) string {
	cfg := oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      scopeStrings(scopes),
		Endpoint: oauth2.Endpoint{
			AuthURL: c.baseURL + "/authorize",
		},
	}
	if responseType == "" || responseType == "code" {
		return cfg.AuthCodeURL(state)
	}
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", responseType))
}

// TokenSource adapts a TokenProvider to the oauth2.TokenSource interface so
// SDK-issued tokens can feed any oauth2-aware HTTP stack.
func TokenSource(ctx context.Context, provider TokenProvider, scopes []model.Scope) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, provider: provider, scopes: scopes}
}

type tokenSource struct {
	ctx      context.Context
	provider TokenProvider
	scopes   []model.Scope
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.provider.GetToken(s.ctx, s.scopes)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		Expiry:       token.ExpiresAt,
	}, nil
}

func scopeStrings(scopes []model.Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}

package forge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petrbroz/forge-go/model"
)

func TestTokenSource(t *testing.T) {
	provider := NewStaticTokenProvider("wrapped-token")
	src := TokenSource(context.Background(), provider, []model.Scope{model.ScopeDataRead})

	token, err := src.Token()
	assert.NoError(t, err)
	assert.Equal(t, "wrapped-token", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.Valid())
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenValid(t *testing.T) {
	leeway := time.Minute

	empty := AccessToken{}
	assert.False(t, empty.Valid(leeway))

	unknownExpiry := AccessToken{AccessToken: "abc"}
	assert.True(t, unknownExpiry.Valid(leeway))

	fresh := AccessToken{AccessToken: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, fresh.Valid(leeway))

	// still technically unexpired, but inside the safety margin
	nearExpiry := AccessToken{AccessToken: "abc", ExpiresAt: time.Now().Add(30 * time.Second)}
	assert.False(t, nearExpiry.Valid(leeway))

	expired := AccessToken{AccessToken: "abc", ExpiresAt: time.Now().Add(-time.Minute)}
	assert.False(t, expired.Valid(leeway))
}

func TestAccessTokenUnmarshal(t *testing.T) {
	payload := `{"access_token":"abc","token_type":"Bearer","expires_in":3599,"scope":"bucket:read data:read"}`
	var token AccessToken
	assert.NoError(t, json.Unmarshal([]byte(payload), &token))
	assert.Equal(t, "abc", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3599), token.ExpiresIn)
	assert.Equal(t, []Scope{ScopeBucketRead, ScopeDataRead}, token.Scopes())
}

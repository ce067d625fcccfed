package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinScopes(t *testing.T) {
	assert.Equal(t, "", JoinScopes(nil))
	assert.Equal(t, "viewables:read", JoinScopes([]Scope{ScopeViewablesRead}))
	assert.Equal(t, "bucket:read data:read", JoinScopes([]Scope{ScopeBucketRead, ScopeDataRead}))
}

func TestSplitScopes(t *testing.T) {
	assert.Nil(t, SplitScopes(""))
	assert.Equal(t, []Scope{ScopeViewablesRead}, SplitScopes("viewables:read"))
	assert.Equal(t,
		[]Scope{ScopeBucketRead, ScopeDataRead},
		SplitScopes(" bucket:read  data:read "))
}

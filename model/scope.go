// Package model defines the typed request and response structures exchanged
// with the Forge REST APIs, together with the error types surfaced by the SDK.
package model

import "strings"

// Scope is a named OAuth permission that limits what an access token may do.
type Scope string

const (
	// ScopeUserProfileRead grants read access to the end user's profile data,
	// not including associated products and services.
	ScopeUserProfileRead Scope = "user-profile:read"
	// ScopeUserRead grants read access to the end user's profile data,
	// including associated products and services.
	ScopeUserRead Scope = "user:read"
	// ScopeUserWrite grants create, update, and delete access to the end
	// user's profile data.
	ScopeUserWrite Scope = "user:write"
	// ScopeViewablesRead grants read access to viewable data only
	// (for example PNG and SVF files).
	ScopeViewablesRead Scope = "viewables:read"
	// ScopeDataRead grants read access to all the end user's data, viewable
	// and non-viewable.
	ScopeDataRead Scope = "data:read"
	// ScopeDataWrite grants create, update, and delete access to the end
	// user's data.
	ScopeDataWrite Scope = "data:write"
	// ScopeDataCreate grants create-only access to the end user's data.
	ScopeDataCreate Scope = "data:create"
	// ScopeDataSearch grants search access to the end user's data.
	ScopeDataSearch Scope = "data:search"
	// ScopeBucketCreate allows creating OSS buckets owned by the application.
	ScopeBucketCreate Scope = "bucket:create"
	// ScopeBucketRead allows reading metadata and listing contents of OSS
	// buckets the application has access to.
	ScopeBucketRead Scope = "bucket:read"
	// ScopeBucketUpdate allows setting permissions and entitlements for OSS
	// buckets the application may modify.
	ScopeBucketUpdate Scope = "bucket:update"
	// ScopeBucketDelete allows deleting buckets the application may delete.
	ScopeBucketDelete Scope = "bucket:delete"
	// ScopeCodeAll allows authoring and executing code on behalf of the end
	// user (for example Design Automation scripts).
	ScopeCodeAll Scope = "code:all"
	// ScopeAccountRead grants read access to Product API account data.
	ScopeAccountRead Scope = "account:read"
	// ScopeAccountWrite grants write access to Product API account data.
	ScopeAccountWrite Scope = "account:write"
)

// JoinScopes renders a scope list in the space-separated form used by the
// token endpoint.
func JoinScopes(scopes []Scope) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// SplitScopes parses a space-separated scope string as returned by the
// token endpoint.
func SplitScopes(s string) []Scope {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	scopes := make([]Scope, len(fields))
	for i, f := range fields {
		scopes[i] = Scope(f)
	}
	return scopes
}

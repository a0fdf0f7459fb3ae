// ABOUTME: Request context key types and constants for the api package.
// ABOUTME: Used by middleware to inject the signed-in editor for handlers to read.
package api

type contextKey int

const (
	ctxUser contextKey = iota // *auth.SessionClaims of the signed-in editor
)

package auth

import "context"

type claimsKey struct{}

// WithClaims stores validated claims in ctx. Called by the auth middleware.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromCtx returns the claims stored by the auth middleware, or nil.
func ClaimsFromCtx(ctx context.Context) *Claims {
	if c, ok := ctx.Value(claimsKey{}).(*Claims); ok {
		return c
	}
	return nil
}

// UserIDFromCtx returns the authenticated user's ObjectID hex, or "".
func UserIDFromCtx(ctx context.Context) string {
	if c := ClaimsFromCtx(ctx); c != nil {
		return c.UserID
	}
	return ""
}

package contexthelpers

import (
	"context"
)

// IsFacilitator reports whether the request presented the facilitator token.
func IsFacilitator(ctx context.Context) bool {
	isFacilitator, ok := ctx.Value(isFacilitatorContextKey).(bool)
	if !ok {
		return false
	}

	return isFacilitator
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}

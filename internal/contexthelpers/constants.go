package contexthelpers

type contextKey string

const isFacilitatorContextKey = contextKey("isFacilitator")
const currentPathContextKey = contextKey("currentPath")
const csrfTokenContextKey = contextKey("csrfToken")
const cspNonceContextKey = contextKey("cspNonce")

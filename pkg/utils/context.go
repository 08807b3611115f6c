package utils

// ContextKey keys values the JWT middleware stores on request contexts.
type ContextKey string

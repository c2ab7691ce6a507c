// Package errors provides coded, structured errors for the Lumina
// route/hydration subsystem.
//
// Each error carries a stable code (e.g., "L001"), a category, and an
// optional detail and fix suggestion. Codes are registered in registry.go.
//
// Usage:
//
//	return errors.New("L002").WithRoute(id)
package errors

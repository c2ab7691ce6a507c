// Package routetree compiles a declarative route definition into the
// runtime-routable tree and the ID lookup tables the hydration pipeline
// depends on.
//
// The same Definition is walked once on the server and once on the client.
// Build assigns every logical route a positional ID ("0", "0-2-1") that is
// identical on both sides, which is what lets the server key per-route data
// by ID and the client match it back to its own freshly built nodes.
//
// Code-split route modules enter the tree as lazy placeholders; the
// hydration coordinator resolves the ones matched by the current location
// before handing off to the router.
package routetree

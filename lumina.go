// Package lumina provides the public API for the Lumina framework: a route
// tree compiler plus the wire protocol that carries loader and action data,
// deferred values included, from a server render to the client resume.
//
// This is the recommended import for most applications:
//
//	import "github.com/lumina-dev/lumina"
//
// Usage:
//
//	routes, err := lumina.BuildRoutes(root)
//	payload, err := lumina.BuildPayload(ctx, enc, matches, loaderData, actionData, errs)
//	handoff, err := lumina.NewCoordinator(cfg, routes, source).Bootstrap(ctx, render)
package lumina

import (
	"context"

	"github.com/lumina-dev/lumina/pkg/hydrate"
	"github.com/lumina-dev/lumina/pkg/routetree"
	"github.com/lumina-dev/lumina/pkg/wire"
)

// =============================================================================
// Route tree (re-export from pkg/routetree)
// =============================================================================

// Definition is one user-authored route: a node of the definition tree
// passed to BuildRoutes.
type Definition = routetree.Definition

// Module is the loadable unit of a route.
type Module = routetree.Module

// ModuleProducer loads a Module on demand.
type ModuleProducer = routetree.ModuleProducer

// Node is one compiled route in the runtime tree.
type Node = routetree.Node

// Routes is the output of compilation: the runtime tree plus its two
// lookup registries.
type Routes = routetree.Result

// BuildRoutes compiles a definition tree into the runtime route tree.
// Route IDs are positional and deterministic: the same definition tree
// always compiles to the same IDs.
func BuildRoutes(root *Definition) (*Routes, error) {
	return routetree.Build(root)
}

// =============================================================================
// Wire protocol (re-export from pkg/wire)
// =============================================================================

// HTTPError is a status-carrying error that survives serialization with its
// status, message, and headers intact.
type HTTPError = wire.HTTPError

// ErrorDescriptor is the wire form of an error.
type ErrorDescriptor = wire.ErrorDescriptor

// Value is the wire form of a loader or action value.
type Value = wire.Value

// NewEncoder returns a wire encoder configured from cfg. Stack traces ride
// along in dev mode only.
func NewEncoder(cfg Config) *wire.Encoder {
	return &wire.Encoder{ExposeStack: cfg.DevMode}
}

// =============================================================================
// Hydration (re-export from pkg/hydrate)
// =============================================================================

// Payload is the wire payload embedded into a rendered page.
type Payload = hydrate.Payload

// Match identifies one active route in the payload.
type Match = hydrate.Match

// Handoff is the resumed tree and state handed to the rendering runtime.
type Handoff = hydrate.Handoff

// BuildPayload encodes matched-route loader/action data and errors into a
// wire payload.
var BuildPayload = hydrate.BuildPayload

// NewSource wraps raw embedded payload bytes as a single-read source.
var NewSource = hydrate.NewSource

// NewCoordinator creates the client-side bootstrap coordinator from the
// user-facing configuration.
func NewCoordinator(cfg Config, routes *Routes, source *hydrate.Source, opts ...hydrate.Option) *hydrate.Coordinator {
	cfg = cfg.withDefaults()
	base := []hydrate.Option{
		hydrate.WithLogger(cfg.Logger),
		hydrate.WithScheduler(cfg.Scheduler),
	}
	return hydrate.New(routes, source, append(base, opts...)...)
}

// Bootstrap is a convenience wrapper: build a coordinator from cfg and run
// the full resume sequence.
func Bootstrap(ctx context.Context, cfg Config, routes *Routes, source *hydrate.Source, render hydrate.RenderFunc) (*Handoff, error) {
	return NewCoordinator(cfg, routes, source).Bootstrap(ctx, render)
}

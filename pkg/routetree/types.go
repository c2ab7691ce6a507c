package routetree

import (
	"context"

	"github.com/lumina-dev/lumina/pkg/wire"
)

// CatchAllPath is the path token assigned to catch-all routes, regardless of
// the path declared on their source definition.
const CatchAllPath = "*"

// Component is an opaque reference to a renderable component. The rendering
// runtime owns its contract; this subsystem only carries it between the
// route module and the runtime node.
type Component any

// LoaderFunc produces a route's data fields for a request. Field values may
// be plain data or *deferred.Deferred handles for work that should not block
// the response.
type LoaderFunc func(ctx context.Context, params map[string]string) (map[string]any, error)

// ActionFunc handles a route's mutations, returning data fields like a loader.
type ActionFunc func(ctx context.Context, params map[string]string) (map[string]any, error)

// Module is a loaded route module. Only the recognized exports are carried:
// the default component, the error boundary, the loader, and the action.
// Anything else a module exposes is ignored, not an error.
type Module struct {
	Component     Component
	ErrorBoundary Component
	Loader        LoaderFunc
	Action        ActionFunc
}

// ModuleProducer loads a route module asynchronously (dynamic import).
type ModuleProducer func(ctx context.Context) (*Module, error)

// Definition is one node of the declarative route tree an application
// supplies. The same definition is walked independently on server and
// client; the builder assigns both sides identical route IDs.
type Definition struct {
	// Path is the route's URL segment pattern.
	Path string

	// Main is the route's materialized module, for modules linked into the
	// binary. Mutually exclusive with MainLazy.
	Main *Module

	// MainLazy produces the route's module on demand (code-split routes).
	MainLazy ModuleProducer

	// Index produces the module for the route's index child, if any.
	Index ModuleProducer

	// CatchAll produces the module for the route's catch-all child, if any.
	// The catch-all is always the last child and always matches "*".
	CatchAll ModuleProducer

	// Children are the explicit child routes, in source order. Order is
	// significant: route IDs are positional.
	Children []*Definition

	// DecodeError is the optional error-deserialization override hook.
	// Only meaningful on the root definition.
	DecodeError wire.DecodeErrorFunc
}

// Node is the runtime-routable form of a route: what the router consumes.
// A Node is mutated exactly once, when its lazy module finishes loading;
// after that the router treats it as immutable.
type Node struct {
	// ID is the route's deterministic positional identifier ("0", "0-2-1").
	ID string

	// Path is the route's URL segment pattern.
	Path string

	Component     Component
	ErrorBoundary Component
	Loader        LoaderFunc
	Action        ActionFunc

	// Lazy is the not-yet-loaded marker. Non-nil until the module has been
	// resolved and merged, nil afterwards.
	Lazy LazyLoader

	// Children are the runtime children in match order: index first (if
	// any), explicit children in source order, catch-all last.
	Children []*Node
}

// FileRef is a fileMap entry: the module (or its producer) a route carries.
// Empty for routes without a module of their own.
type FileRef struct {
	Module   *Module
	Producer ModuleProducer
}

// Empty reports whether the route carries no module.
func (r FileRef) Empty() bool {
	return r.Module == nil && r.Producer == nil
}

// FileMap maps RouteID to the route's module or producer.
type FileMap map[string]FileRef

// ObjectMap maps RouteID to the route's runtime node. One-to-one with
// FileMap's key set.
type ObjectMap map[string]*Node

// Result is the output of Build: the runtime tree plus the parallel lookup
// tables the hydration coordinator matches decoded data against.
type Result struct {
	Tree      *Node
	FileMap   FileMap
	ObjectMap ObjectMap

	// DecodeError is carried over from the root definition for the
	// coordinator's error decoder.
	DecodeError wire.DecodeErrorFunc
}

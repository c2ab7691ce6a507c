package routetree

import "context"

// LazyResult is the uniform shape a lazy loader yields. Each field carries
// an explicit presence flag: "the module did not export this" is different
// from "the module exported a nil", and merging must only touch fields the
// module actually exported.
type LazyResult struct {
	Component     Component
	ErrorBoundary Component
	Loader        LoaderFunc
	Action        ActionFunc

	HasComponent     bool
	HasErrorBoundary bool
	HasLoader        bool
	HasAction        bool
}

// LazyLoader loads a route module on demand. Invoking it runs the underlying
// producer; callers are responsible for not re-invoking after a successful
// resolution (the coordinator clears the Node's Lazy marker for exactly that
// reason).
type LazyLoader func(ctx context.Context) (LazyResult, error)

// Lazy wraps an async module producer into a LazyLoader. Construction has no
// side effects; the producer runs only when the loader is called, and may be
// called more than once.
func Lazy(producer ModuleProducer) LazyLoader {
	return func(ctx context.Context) (LazyResult, error) {
		mod, err := producer(ctx)
		if err != nil {
			return LazyResult{}, err
		}
		return resultFromModule(mod), nil
	}
}

// resultFromModule converts a loaded module into a LazyResult, marking only
// the exports the module actually carries.
func resultFromModule(mod *Module) LazyResult {
	if mod == nil {
		return LazyResult{}
	}
	res := LazyResult{}
	if mod.Component != nil {
		res.Component = mod.Component
		res.HasComponent = true
	}
	if mod.ErrorBoundary != nil {
		res.ErrorBoundary = mod.ErrorBoundary
		res.HasErrorBoundary = true
	}
	if mod.Loader != nil {
		res.Loader = mod.Loader
		res.HasLoader = true
	}
	if mod.Action != nil {
		res.Action = mod.Action
		res.HasAction = true
	}
	return res
}

// ApplyModule merges a loaded module's exports onto the node and clears the
// not-yet-loaded marker. Only present fields are written; state installed
// earlier is never overwritten by an absent export.
func (n *Node) ApplyModule(res LazyResult) {
	if res.HasComponent {
		n.Component = res.Component
	}
	if res.HasErrorBoundary {
		n.ErrorBoundary = res.ErrorBoundary
	}
	if res.HasLoader {
		n.Loader = res.Loader
	}
	if res.HasAction {
		n.Action = res.Action
	}
	n.Lazy = nil
}

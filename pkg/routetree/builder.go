package routetree

import (
	"fmt"

	errs "github.com/lumina-dev/lumina/internal/errors"
)

// RootID is the ID assigned to the root route.
const RootID = "0"

// frame is one pending unit of traversal work.
type frame struct {
	id   string
	def  *Definition
	node *Node
}

// Build walks the declarative definition once and produces the runtime tree
// together with the FileMap/ObjectMap lookup tables.
//
// ID assignment is strictly deterministic: for a fixed definition shape the
// same logical route receives the same ID on every build, on any runtime.
// That is the whole contract: the server encodes per-route data keyed by
// these IDs and the client, rebuilding from the identical definition,
// matches them back up. The traversal is an explicit stack; IDs are
// allocated when a child is discovered, so pop order cannot affect them.
func Build(root *Definition) (*Result, error) {
	if root == nil {
		return nil, errs.New("L001")
	}

	res := &Result{
		Tree:        &Node{ID: RootID, Path: root.Path},
		FileMap:     make(FileMap),
		ObjectMap:   make(ObjectMap),
		DecodeError: root.DecodeError,
	}

	stack := []frame{{id: RootID, def: root, node: res.Tree}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := buildFrame(f, res, &stack); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// buildFrame processes one popped frame: installs the route's module (or
// lazy placeholder), builds its ordered children, and registers the route in
// both maps. Explicit children are only pushed here; they register
// themselves when popped, so every route gets exactly one entry, written
// from its own frame.
func buildFrame(f frame, res *Result, stack *[]frame) error {
	def := f.def

	if def.Main != nil && def.MainLazy != nil {
		return errs.New("L002").WithRoute(f.id)
	}

	switch {
	case def.MainLazy != nil:
		f.node.Lazy = Lazy(def.MainLazy)
	case def.Main != nil:
		// Action is intentionally not copied at the main level; only the
		// loader, component, and error boundary belong to a materialized
		// non-leaf module.
		f.node.Component = def.Main.Component
		f.node.ErrorBoundary = def.Main.ErrorBoundary
		f.node.Loader = def.Main.Loader
	}

	var children []*Node
	offset := 0

	if def.Index != nil {
		indexID := f.id + "-0"
		index := &Node{ID: indexID, Lazy: Lazy(def.Index)}
		children = append(children, index)
		if err := register(res, indexID, FileRef{Producer: def.Index}, index); err != nil {
			return err
		}
		offset = 1
	}

	for i, child := range def.Children {
		childID := fmt.Sprintf("%s-%d", f.id, i+offset)
		node := &Node{ID: childID, Path: child.Path}
		children = append(children, node)
		*stack = append(*stack, frame{id: childID, def: child, node: node})
	}

	if def.CatchAll != nil {
		catchAll := &Node{Path: CatchAllPath, Lazy: Lazy(def.CatchAll)}
		children = append(children, catchAll)
		// The ID comes from the catch-all's final position, after every
		// other child has been placed.
		catchAll.ID = fmt.Sprintf("%s-%d", f.id, len(children)-1)
		if err := register(res, catchAll.ID, FileRef{Producer: def.CatchAll}, catchAll); err != nil {
			return err
		}
	}

	if len(children) > 0 {
		f.node.Children = children
	}

	ref := FileRef{Module: def.Main, Producer: def.MainLazy}
	return register(res, f.id, ref, f.node)
}

// register writes a route into both maps, rejecting duplicate IDs.
func register(res *Result, id string, ref FileRef, node *Node) error {
	if _, exists := res.ObjectMap[id]; exists {
		return errs.New("L003").WithRoute(id)
	}
	res.FileMap[id] = ref
	res.ObjectMap[id] = node
	return nil
}

package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Route tree errors (L001-L019)
	// ============================================

	"L001": {
		Category:   CategoryRoute,
		Message:    "Route definition is nil",
		Detail:     "Build was called with a nil root definition.",
		Suggestion: "Pass the application's root *routetree.Definition to Build.",
	},
	"L002": {
		Category:   CategoryRoute,
		Message:    "Route declares both Main and MainLazy",
		Detail:     "A route may carry either a materialized module or an async producer, not both. The builder cannot decide which one the client would load.",
		Suggestion: "Keep MainLazy for code-split routes; set Main only for modules linked into the binary.",
	},
	"L003": {
		Category: CategoryRoute,
		Message:  "Duplicate route ID",
		Detail:   "Two routes were assigned the same positional ID. This indicates the definition tree was mutated during Build.",
	},

	// ============================================
	// Wire errors (L020-L039)
	// ============================================

	"L020": {
		Category:   CategoryWire,
		Message:    "Value is not JSON-serializable",
		Detail:     "A loader or action field could not be marshaled for the hydration payload.",
		Suggestion: "Return plain data (maps, slices, structs with exported fields) from loaders and actions.",
	},

	// ============================================
	// Hydration errors (L040-L059)
	// ============================================

	"L040": {
		Category: CategoryHydration,
		Message:  "Hydration payload is malformed",
		Detail:   "The embedded payload could not be parsed as JSON.",
	},
	"L041": {
		Category:   CategoryHydration,
		Message:    "Lazy route module failed to load",
		Detail:     "A route matched by the current location has a lazy module whose producer returned an error.",
		Suggestion: "Check the module producer for the failing route; the route ID is attached to this error.",
	},
}

// Lookup returns the template registered for code, if any.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

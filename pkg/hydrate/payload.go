package hydrate

import (
	"context"

	"github.com/lumina-dev/lumina/pkg/wire"
)

// Match identifies one route participating in the current page, by route ID.
type Match struct {
	ID string `json:"id"`
}

// Payload is the hydration wire payload: everything the client needs to
// resume the server-rendered page without re-running loaders. It is produced
// once per request, embedded in the page, and consumed exactly once by the
// client bootstrap.
type Payload struct {
	Matches    []Match                          `json:"matches"`
	Errors     map[string]*wire.ErrorDescriptor `json:"errors,omitempty"`
	LoaderData map[string]*wire.Value           `json:"loaderData,omitempty"`
	ActionData map[string]*wire.Value           `json:"actionData,omitempty"`
}

// EmptyPayload returns the schema-consistent empty payload used when nothing
// was embedded in the page.
func EmptyPayload() *Payload {
	return &Payload{Matches: []Match{}}
}

// BuildPayload assembles the server-side payload from per-route loader and
// action output plus per-route errors. Pending field values are awaited and
// recorded in their deferred wire form.
func BuildPayload(
	ctx context.Context,
	enc *wire.Encoder,
	matches []Match,
	loaderData map[string]any,
	actionData map[string]any,
	routeErrors map[string]error,
) (*Payload, error) {
	p := &Payload{Matches: matches}
	if p.Matches == nil {
		p.Matches = []Match{}
	}

	var err error
	if p.LoaderData, err = enc.EncodeRouteData(ctx, loaderData); err != nil {
		return nil, err
	}
	if p.ActionData, err = enc.EncodeRouteData(ctx, actionData); err != nil {
		return nil, err
	}

	if len(routeErrors) > 0 {
		p.Errors = make(map[string]*wire.ErrorDescriptor, len(routeErrors))
		for id, routeErr := range routeErrors {
			p.Errors[id] = enc.EncodeError(routeErr)
		}
	}
	return p, nil
}

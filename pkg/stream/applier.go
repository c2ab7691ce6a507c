package stream

import (
	"encoding/json"
	"sync"

	errs "github.com/lumina-dev/lumina/internal/errors"
	"github.com/lumina-dev/lumina/pkg/wire"
)

// Settlement is the decoded form of a frame, delivered to the page runtime.
type Settlement struct {
	RouteID string
	Field   string
	Value   any
	Err     error
}

// Handler receives decoded settlements for a registered route field.
type Handler func(Settlement)

// Applier is the page-side counterpart of Server: it decodes incoming frames
// and dispatches them to the handler registered for the route field. Frames
// for unregistered fields are dropped.
type Applier struct {
	decoder  *wire.Decoder
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewApplier creates an Applier using the given value decoder.
func NewApplier(decoder *wire.Decoder) *Applier {
	if decoder == nil {
		decoder = &wire.Decoder{}
	}
	return &Applier{
		decoder:  decoder,
		handlers: make(map[string]Handler),
	}
}

// Register installs the handler for one route field, replacing any previous
// one. The handler typically settles the pending handle the payload decode
// produced for that field.
func (a *Applier) Register(routeID, field string, h Handler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[fieldKey(routeID, field)] = h
}

// Unregister removes the handler for one route field.
func (a *Applier) Unregister(routeID, field string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.handlers, fieldKey(routeID, field))
}

// Apply decodes one raw frame and dispatches it. A frame without a
// registered handler is not an error.
func (a *Applier) Apply(raw []byte) error {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return errs.New("L040").Wrap(err)
	}
	if f.Value == nil {
		return errs.New("L040").WithDetail("frame carries no value")
	}

	a.mu.RLock()
	h := a.handlers[fieldKey(f.RouteID, f.Field)]
	a.mu.RUnlock()
	if h == nil {
		return nil
	}

	st := Settlement{RouteID: f.RouteID, Field: f.Field}
	if f.Value.Error != nil {
		st.Err = a.decoder.DecodeError(f.Value.Error)
	} else {
		st.Value = f.Value.Value
	}
	h(st)
	return nil
}

func fieldKey(routeID, field string) string {
	return routeID + "\x00" + field
}

package wire

import (
	"context"

	"github.com/lumina-dev/lumina/pkg/deferred"
)

// KindDeferred tags a Value whose source was still pending when the payload
// was produced. The client restores it as a pending handle.
const KindDeferred = "deferred"

// Value is the tagged wire wrapper for a single possibly-pending value:
//
//	{ "value": v }                      available immediately
//	{ "kind": "deferred", "value": v }  was pending, resolved to v
//	{ "kind": "deferred", "error": d }  was pending, rejected
//
// The payload under Value is opaque JSON data. The one exception is the
// outer per-route wrapper, whose payload is a record of field-level Values;
// that single extra level is handled by DecodeRouteData, never here.
type Value struct {
	Kind  string           `json:"kind,omitempty"`
	Value any              `json:"value,omitempty"`
	Error *ErrorDescriptor `json:"error,omitempty"`
}

// Deferred reports whether the value was pending when encoded.
func (v *Value) Deferred() bool {
	return v != nil && v.Kind == KindDeferred
}

// Rejected reports whether the value was pending and rejected.
func (v *Value) Rejected() bool {
	return v.Deferred() && v.Error != nil
}

// EncodeValue converts v into its wire form. Plain values are wrapped as-is.
// A *deferred.Deferred is awaited: its settlement is recorded with the
// deferred kind so the decoding side restores a pending handle, and a
// rejection is captured as an error descriptor instead of failing the
// encode. The only error EncodeValue itself returns is ctx cancellation.
func (enc *Encoder) EncodeValue(ctx context.Context, v any) (*Value, error) {
	d, ok := v.(*deferred.Deferred)
	if !ok {
		return &Value{Value: v}, nil
	}

	resolved, err := d.Await(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return &Value{Kind: KindDeferred, Error: enc.EncodeError(err)}, nil
	}
	return &Value{Kind: KindDeferred, Value: resolved}, nil
}

// DecodeValue returns the decoded payload of s. An immediate value is
// returned synchronously. A deferred value is returned as an immediately
// available *deferred.Deferred that is already settled with the payload or
// the decoded rejection; consumers observe it through Await without the
// decoder ever blocking.
func (dec *Decoder) DecodeValue(s *Value) any {
	if s == nil {
		return nil
	}
	if s.Kind != KindDeferred {
		return s.Value
	}
	if s.Error != nil {
		return deferred.Rejected(dec.DecodeError(s.Error))
	}
	return deferred.Resolved(s.Value)
}

// valueFromRaw rebuilds a Value from a decoded JSON map. Field-level
// wrappers arrive untyped inside the outer route wrapper's payload; this
// recognizes them. Returns false for anything not wrapper-shaped, which the
// caller passes through untouched.
func valueFromRaw(raw any) (*Value, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}

	v := &Value{}
	for key, val := range m {
		switch key {
		case "kind":
			kind, ok := val.(string)
			if !ok {
				return nil, false
			}
			v.Kind = kind
		case "value":
			v.Value = val
		case "error":
			d := descriptorFromRaw(val)
			if d == nil {
				return nil, false
			}
			v.Error = d
		default:
			// Extra keys mean application data, not a wrapper.
			return nil, false
		}
	}

	if v.Kind != "" && v.Kind != KindDeferred {
		return nil, false
	}
	return v, true
}

package wire

import (
	"context"

	errs "github.com/lumina-dev/lumina/internal/errors"
	"github.com/lumina-dev/lumina/pkg/deferred"
)

// FieldSet is one route's loader/action output: named fields whose values
// may be plain data or *deferred.Deferred handles.
type FieldSet = map[string]any

// EncodeRouteData encodes per-route loader/action output for the wire.
// Each route's whole fields object is wrapped in an outer Value (the route's
// top-level result can itself be pending, independent of its fields), and
// every field inside it is encoded through EncodeValue as well. A route
// entry may be a FieldSet or a *deferred.Deferred resolving to one.
func (enc *Encoder) EncodeRouteData(ctx context.Context, data map[string]any) (map[string]*Value, error) {
	if data == nil {
		return nil, nil
	}

	out := make(map[string]*Value, len(data))
	for id, fields := range data {
		outer, err := enc.EncodeValue(ctx, fields)
		if err != nil {
			return nil, err
		}
		if outer.Rejected() {
			out[id] = outer
			continue
		}

		record, err := enc.encodeFields(ctx, outer.Value)
		if err != nil {
			return nil, errs.Newf(errs.CategoryWire, "encode route data").WithRoute(id).Wrap(err)
		}
		outer.Value = record
		out[id] = outer
	}
	return out, nil
}

// encodeFields encodes each field of a route's fields object independently.
func (enc *Encoder) encodeFields(ctx context.Context, fields any) (map[string]*Value, error) {
	if fields == nil {
		return map[string]*Value{}, nil
	}
	set, ok := fields.(map[string]any)
	if !ok {
		return nil, errs.Newf(errs.CategoryWire, "loader output must be a fields object, got %T", fields)
	}

	record := make(map[string]*Value, len(set))
	for name, fv := range set {
		encoded, err := enc.EncodeValue(ctx, fv)
		if err != nil {
			return nil, err
		}
		record[name] = encoded
	}
	return record, nil
}

// DecodeRouteData decodes the per-route wire data back into fields objects.
// The outer wrapper is decoded first; whatever its payload is, each field of
// that payload is decoded one level further. The recursion stops there:
// anything nested inside a field's value is application data and passes
// through byte-for-byte.
//
// A route entry is either a FieldSet (outer value was immediate) or a
// *deferred.Deferred resolving to a FieldSet (outer value was pending).
// Individual entries of a FieldSet may themselves be *deferred.Deferred.
func (dec *Decoder) DecodeRouteData(payload map[string]*Value) map[string]any {
	if payload == nil {
		return nil
	}

	out := make(map[string]any, len(payload))
	for id, outer := range payload {
		if outer == nil {
			continue
		}
		if outer.Kind != KindDeferred {
			out[id] = dec.decodeFields(outer.Value)
			continue
		}
		if outer.Error != nil {
			out[id] = deferred.Rejected(dec.DecodeError(outer.Error))
			continue
		}
		out[id] = deferred.Resolved(dec.decodeFields(outer.Value))
	}
	return out
}

// decodeFields applies DecodeValue to each field of a route's fields record.
// The record arrives typed (same-process round trip) or as raw JSON maps
// (the embedded payload); both shapes are handled. Fields that are not
// wrapper-shaped are kept as-is rather than failing the whole decode.
func (dec *Decoder) decodeFields(payload any) FieldSet {
	switch record := payload.(type) {
	case nil:
		return FieldSet{}

	case map[string]*Value:
		fields := make(FieldSet, len(record))
		for name, v := range record {
			fields[name] = dec.DecodeValue(v)
		}
		return fields

	case map[string]any:
		fields := make(FieldSet, len(record))
		for name, raw := range record {
			if v, ok := valueFromRaw(raw); ok {
				fields[name] = dec.DecodeValue(v)
			} else {
				fields[name] = raw
			}
		}
		return fields

	default:
		// Not a fields record; degrade to a single-entry set rather than
		// dropping the data.
		return FieldSet{"value": payload}
	}
}

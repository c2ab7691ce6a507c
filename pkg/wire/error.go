package wire

import (
	"errors"
	"runtime/debug"
)

// Error subtypes recognized by the built-in decode table.
const (
	SubtypeError      = "Error"
	SubtypeTypeError  = "TypeError"
	SubtypeRangeError = "RangeError"
	SubtypeHTTPError  = "HttpError"
)

// KindError tags an ErrorDescriptor on the wire.
const KindError = "error"

// ErrorDescriptor is the JSON-safe form of a thrown error. Subtype names a
// reconstructable type; unknown subtypes degrade to GenericError without
// losing the message.
type ErrorDescriptor struct {
	Kind    string `json:"kind"`
	Subtype string `json:"subtype,omitempty"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`

	// HttpError fields.
	Status         int               `json:"status,omitempty"`
	Detail         string            `json:"detail,omitempty"`
	Expose         bool              `json:"expose,omitempty"`
	ExposedMessage string            `json:"exposedMessage,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
}

// Encoder converts values and errors into their wire form.
type Encoder struct {
	// ExposeStack includes a stack trace in error descriptors. Only enable
	// in development; stacks leak internals.
	ExposeStack bool
}

// EncodeError converts err into a wire descriptor. The subtype records the
// recognizable error type so the decoding side can rebuild it; unrecognized
// types encode as the generic "Error" subtype.
func (enc *Encoder) EncodeError(err error) *ErrorDescriptor {
	if err == nil {
		return nil
	}

	d := &ErrorDescriptor{
		Kind:    KindError,
		Subtype: SubtypeError,
		Message: err.Error(),
	}

	var httpErr *HTTPError
	var typeErr *TypeError
	var rangeErr *RangeError
	switch {
	case errors.As(err, &httpErr):
		d.Subtype = SubtypeHTTPError
		d.Status = httpErr.Status
		d.Detail = httpErr.Detail
		d.Expose = httpErr.Expose
		d.ExposedMessage = httpErr.ExposedMessage
		if len(httpErr.Headers) > 0 {
			d.Headers = httpErr.Headers
		}
	case errors.As(err, &typeErr):
		d.Subtype = SubtypeTypeError
	case errors.As(err, &rangeErr):
		d.Subtype = SubtypeRangeError
	}

	if enc != nil && enc.ExposeStack {
		var generic *GenericError
		if errors.As(err, &generic) && generic.Stack != "" {
			d.Stack = generic.Stack
		} else {
			d.Stack = string(debug.Stack())
		}
	}

	return d
}

// DecodeErrorFunc is the application-supplied override hook consulted before
// the built-in subtype table. Returning nil falls through to the table.
type DecodeErrorFunc func(*ErrorDescriptor) error

// Decoder converts wire forms back into values and errors.
type Decoder struct {
	// Override, when set, gets first chance at every descriptor.
	Override DecodeErrorFunc
}

// DecodeError rebuilds an error from its wire descriptor. Decode order:
// the override hook, then the built-in subtype table, then the generic
// fallback. Malformed descriptors degrade to GenericError; DecodeError
// never fails.
func (dec *Decoder) DecodeError(d *ErrorDescriptor) error {
	if d == nil {
		return &GenericError{}
	}

	if dec != nil && dec.Override != nil {
		if err := dec.Override(d); err != nil {
			return err
		}
	}

	switch d.Subtype {
	case SubtypeHTTPError:
		// Status is required to rebuild an HTTPError.
		if d.Status != 0 {
			msg := d.Message
			if msg == "" {
				msg = d.Detail
			}
			return &HTTPError{
				Status:         d.Status,
				Message:        msg,
				Detail:         d.Detail,
				Expose:         d.Expose,
				ExposedMessage: d.ExposedMessage,
				Headers:        d.Headers,
			}
		}
	case SubtypeTypeError:
		return &TypeError{Message: d.Message}
	case SubtypeRangeError:
		return &RangeError{Message: d.Message}
	}

	return &GenericError{Message: d.Message, Stack: d.Stack}
}

// descriptorFromRaw rebuilds an ErrorDescriptor from a decoded JSON map.
// Used for field-level rejections, which arrive untyped inside the outer
// wrapper's payload. Returns nil if raw is not descriptor-shaped.
func descriptorFromRaw(raw any) *ErrorDescriptor {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	kind, _ := m["kind"].(string)
	if kind != KindError {
		return nil
	}

	d := &ErrorDescriptor{Kind: KindError}
	d.Subtype, _ = m["subtype"].(string)
	d.Message, _ = m["message"].(string)
	d.Stack, _ = m["stack"].(string)
	d.Detail, _ = m["detail"].(string)
	d.Expose, _ = m["expose"].(bool)
	d.ExposedMessage, _ = m["exposedMessage"].(string)
	if status, ok := m["status"].(float64); ok {
		d.Status = int(status)
	}
	if headers, ok := m["headers"].(map[string]any); ok {
		d.Headers = make(map[string]string, len(headers))
		for k, v := range headers {
			if s, ok := v.(string); ok {
				d.Headers[k] = s
			}
		}
	}
	return d
}

package wire

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeErrorSubtypes(t *testing.T) {
	enc := &Encoder{}

	tests := []struct {
		name        string
		err         error
		wantSubtype string
	}{
		{"plain", errors.New("plain failure"), SubtypeError},
		{"http", NotFound("missing"), SubtypeHTTPError},
		{"type", &TypeError{Message: "not a number"}, SubtypeTypeError},
		{"range", &RangeError{Message: "index out of range"}, SubtypeRangeError},
		{"wrapped http", Internal(errors.New("db down")), SubtypeHTTPError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := enc.EncodeError(tt.err)
			if d.Kind != KindError {
				t.Errorf("Kind = %q, want %q", d.Kind, KindError)
			}
			if d.Subtype != tt.wantSubtype {
				t.Errorf("Subtype = %q, want %q", d.Subtype, tt.wantSubtype)
			}
			if d.Message != tt.err.Error() {
				t.Errorf("Message = %q, want %q", d.Message, tt.err.Error())
			}
			if d.Stack != "" {
				t.Error("Stack should be empty without ExposeStack")
			}
		})
	}
}

func TestEncodeErrorHTTPFields(t *testing.T) {
	enc := &Encoder{}
	err := &HTTPError{
		Status:         429,
		Message:        "slow down",
		Detail:         "rate limit hit",
		Expose:         true,
		ExposedMessage: "try again later",
		Headers:        map[string]string{"Retry-After": "30"},
	}

	d := enc.EncodeError(err)
	if d.Status != 429 {
		t.Errorf("Status = %d, want 429", d.Status)
	}
	if d.Detail != "rate limit hit" {
		t.Errorf("Detail = %q", d.Detail)
	}
	if !d.Expose {
		t.Error("Expose should carry over")
	}
	if d.ExposedMessage != "try again later" {
		t.Errorf("ExposedMessage = %q", d.ExposedMessage)
	}
	if d.Headers["Retry-After"] != "30" {
		t.Errorf("Headers = %v", d.Headers)
	}
}

func TestEncodeErrorStackExposure(t *testing.T) {
	enc := &Encoder{ExposeStack: true}
	d := enc.EncodeError(errors.New("dev mode failure"))
	if d.Stack == "" {
		t.Error("Stack should be captured with ExposeStack")
	}
}

func TestEncodeErrorNil(t *testing.T) {
	enc := &Encoder{}
	if d := enc.EncodeError(nil); d != nil {
		t.Errorf("EncodeError(nil) = %v, want nil", d)
	}
}

func TestDecodeErrorHTTP(t *testing.T) {
	dec := &Decoder{}
	d := &ErrorDescriptor{Kind: KindError, Subtype: SubtypeHTTPError, Status: 404, Detail: "Not found"}

	err := dec.DecodeError(d)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("decoded = %T, want *HTTPError", err)
	}
	if httpErr.Status != 404 {
		t.Errorf("Status = %d, want 404", httpErr.Status)
	}
	if httpErr.Error() != "Not found" {
		t.Errorf("message = %q, want %q", httpErr.Error(), "Not found")
	}
}

func TestDecodeErrorHTTPWithoutStatus(t *testing.T) {
	// An HttpError descriptor missing its status cannot be rebuilt; it
	// degrades to the generic fallback instead of failing.
	dec := &Decoder{}
	d := &ErrorDescriptor{Kind: KindError, Subtype: SubtypeHTTPError, Message: "odd"}

	err := dec.DecodeError(d)
	var generic *GenericError
	if !errors.As(err, &generic) {
		t.Fatalf("decoded = %T, want *GenericError", err)
	}
	if generic.Message != "odd" {
		t.Errorf("Message = %q, want %q", generic.Message, "odd")
	}
}

func TestDecodeErrorUnknownSubtype(t *testing.T) {
	dec := &Decoder{}
	d := &ErrorDescriptor{Kind: KindError, Subtype: "CustomAppError", Message: "kept"}

	err := dec.DecodeError(d)
	var generic *GenericError
	if !errors.As(err, &generic) {
		t.Fatalf("decoded = %T, want *GenericError", err)
	}
	if generic.Message != "kept" {
		t.Errorf("Message = %q, want %q", generic.Message, "kept")
	}
}

func TestDecodeErrorBuiltins(t *testing.T) {
	dec := &Decoder{}

	if _, ok := dec.DecodeError(&ErrorDescriptor{Subtype: SubtypeTypeError, Message: "t"}).(*TypeError); !ok {
		t.Error("TypeError subtype should decode to *TypeError")
	}
	if _, ok := dec.DecodeError(&ErrorDescriptor{Subtype: SubtypeRangeError, Message: "r"}).(*RangeError); !ok {
		t.Error("RangeError subtype should decode to *RangeError")
	}
}

func TestDecodeErrorOverride(t *testing.T) {
	type appError struct{ GenericError }

	dec := &Decoder{
		Override: func(d *ErrorDescriptor) error {
			if d.Subtype == "AppError" {
				return &appError{GenericError{Message: d.Message}}
			}
			return nil
		},
	}

	err := dec.DecodeError(&ErrorDescriptor{Subtype: "AppError", Message: "custom"})
	if _, ok := err.(*appError); !ok {
		t.Fatalf("decoded = %T, want *appError", err)
	}

	// Hook declines; the table still applies.
	err = dec.DecodeError(&ErrorDescriptor{Subtype: SubtypeTypeError, Message: "t"})
	if _, ok := err.(*TypeError); !ok {
		t.Errorf("decoded = %T, want *TypeError", err)
	}
}

func TestDecodeErrorNilDescriptor(t *testing.T) {
	dec := &Decoder{}
	err := dec.DecodeError(nil)
	if err == nil {
		t.Fatal("DecodeError(nil) should still produce an error")
	}
	if !strings.Contains(err.Error(), "unknown") {
		t.Errorf("message = %q, want unknown-error fallback", err.Error())
	}
}

func TestErrorRoundTrip(t *testing.T) {
	enc := &Encoder{}
	dec := &Decoder{}

	in := &HTTPError{Status: 403, Message: "forbidden", Detail: "no role"}
	out := dec.DecodeError(enc.EncodeError(in))

	var httpErr *HTTPError
	if !errors.As(out, &httpErr) {
		t.Fatalf("decoded = %T, want *HTTPError", out)
	}
	if httpErr.Status != in.Status || httpErr.Message != in.Message || httpErr.Detail != in.Detail {
		t.Errorf("round trip = %+v, want %+v", httpErr, in)
	}
}

func TestDescriptorFromRaw(t *testing.T) {
	raw := map[string]any{
		"kind":    "error",
		"subtype": "HttpError",
		"status":  float64(404),
		"detail":  "Not found",
		"headers": map[string]any{"X-Req": "abc", "bad": 7},
	}

	d := descriptorFromRaw(raw)
	if d == nil {
		t.Fatal("descriptorFromRaw returned nil")
	}
	if d.Status != 404 || d.Detail != "Not found" {
		t.Errorf("descriptor = %+v", d)
	}
	if d.Headers["X-Req"] != "abc" {
		t.Errorf("Headers = %v", d.Headers)
	}
	if _, ok := d.Headers["bad"]; ok {
		t.Error("non-string header values should be dropped")
	}

	if descriptorFromRaw(map[string]any{"kind": "deferred"}) != nil {
		t.Error("non-error kind should not parse as descriptor")
	}
	if descriptorFromRaw("nope") != nil {
		t.Error("non-map should not parse as descriptor")
	}
}

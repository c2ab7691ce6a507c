package hydrate

import (
	"encoding/json"
	"sync"

	errs "github.com/lumina-dev/lumina/internal/errors"
)

// Source is the explicit, single-read input carrying the raw payload the
// page embedded. It replaces a process-wide mutable global: the payload is
// captured once at startup, handed to the coordinator, and cleared on first
// read so it cannot be consumed twice by accident.
type Source struct {
	mu    sync.Mutex
	raw   []byte
	taken bool
}

// NewSource captures the embedded payload bytes. A nil or empty raw means no
// payload was embedded; Take then yields the empty payload.
func NewSource(raw []byte) *Source {
	return &Source{raw: raw}
}

// Take parses and returns the payload, then clears the source. The second
// and later calls return nil, false. An absent payload parses as the
// schema-consistent empty payload rather than an error.
func (s *Source) Take() (*Payload, error, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken {
		return nil, nil, false
	}
	s.taken = true
	raw := s.raw
	s.raw = nil

	if len(raw) == 0 {
		return EmptyPayload(), nil, true
	}

	if legacyEmptyShape(raw) {
		// Older pages embedded `{"json":{}}` when there was nothing to
		// hydrate. Normalize to the empty payload instead of failing.
		return EmptyPayload(), nil, true
	}

	p := &Payload{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, errs.New("L040").Wrap(err), true
	}
	if p.Matches == nil {
		p.Matches = []Match{}
	}
	return p, nil, true
}

// legacyEmptyShape recognizes the historical `{"json": ...}` empty-payload
// shape, which is inconsistent with the payload schema.
func legacyEmptyShape(raw []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if _, hasLegacy := probe["json"]; !hasLegacy {
		return false
	}
	_, hasMatches := probe["matches"]
	return !hasMatches
}

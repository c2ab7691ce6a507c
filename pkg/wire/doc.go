// Package wire implements the hydration wire format: the JSON-safe
// representation of loader/action results that a server-rendered page embeds
// and the client runtime decodes to resume without re-fetching.
//
// The format has three layers:
//
//   - Value: a tagged wrapper distinguishing "available now" from
//     "was deferred" (resolved or rejected).
//   - ErrorDescriptor: a reconstructable description of a thrown error,
//     subtype-aware so domain errors (e.g. HTTPError with a status) survive
//     the runtime boundary.
//   - Route data: one Value per route wrapping a record of per-field Values.
//     The recursion is exactly two levels deep; anything nested further is
//     application data and passes through untouched.
//
// Encoding is driven by an Encoder (which knows whether stack traces may be
// exposed), decoding by a Decoder (which consults an application override
// hook before the built-in subtype table).
package wire

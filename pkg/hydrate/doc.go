// Package hydrate resumes a server-rendered page on the client.
//
// The server builds a Payload (route matches, per-route loader/action data
// in wire form, per-route errors) and embeds it in the page. On load, the
// Coordinator reads that payload exactly once, decodes it through the wire
// codecs, pre-resolves the lazy modules of the matched routes, and hands the
// rebuilt tree plus the decoded state to the rendering runtime. The final
// commit is scheduled as an interruptible background update.
package hydrate

// Package event defines the closed execution event union shared by every
// harness adapter and transport consumer.
//
// # Background
//
// Each harness backend emits its own native stream shape (subprocess NDJSON
// messages, server-sent events, provider message blocks). Adapters translate
// those native shapes into this package's event union so that consumers can
// handle any backend with one exhaustive type switch.
//
// # Design
//
// The union is intentionally small and closed: ten event kinds, discriminated
// by a string type tag on the wire. Unknown kinds are skipped at decode time
// rather than surfaced as errors, so a newer server can add kinds without
// breaking older consumers.
//
// A well-formed stream is an ordered, finite sequence terminated by exactly
// one DoneEvent or ErrorEvent. Tool invocations follow a start → [delta] →
// [result] → end lifecycle per tool-call id; LifecycleTracker implements the
// state machine and Validator layers the stream-level termination rules on
// top for conformance checking.
package event

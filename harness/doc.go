// Package harness defines the adapter contract every backend integration
// implements: identity, a declared capability set, single-shot and streaming
// execution against the event union, and optional tool-management operations
// with documented default failures. It also provides the registry a host
// process uses to wire multiple adapters.
package harness

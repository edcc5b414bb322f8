// Package client is the caller-facing façade for a remote harness service.
// It wraps a transport.Transport and exposes typed operations for every
// domain the service models: harness discovery, agents, skills, tools, MCP
// servers, execution, sessions, memory, subagents, files, hooks, todos and
// models. Streaming execution decodes server-sent events back into the
// event package's union.
package client

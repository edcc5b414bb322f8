// Package goose adapts a remote Goose agent server to the harness contract.
//
// Executions run against the server's session API: the adapter starts an
// agent session, posts the prompt to /reply, and translates the resulting
// server-sent-event stream into execution events. Tools live in the server's
// MCP extension configuration, so tool registration is not supported here.
package goose

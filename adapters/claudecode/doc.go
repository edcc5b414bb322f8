// Package claudecode adapts the Claude Code CLI to the harness contract.
//
// Each execution spawns one `claude --print --output-format stream-json`
// process, reads the NDJSON messages it emits on stdout, and translates
// them into the execution event union: assistant content blocks become
// text, thinking and tool_call_start events, tool_result blocks become
// tool_result plus tool_call_end, and the final result message becomes a
// done event carrying usage. The process group is signaled on cancellation
// so tool subprocesses cannot outlive the harness.
package claudecode

package claudecode

import (
	"context"

	"github.com/openharness/harness-go/harness"
)

// builtinTools is the CLI's fixed tool catalogue. Additional tools arrive
// through MCP servers, not through tool registration.
var builtinTools = []harness.Tool{
	{
		ID: "Read", Name: "Read", Source: "builtin",
		Description: "Read file contents from the filesystem",
		InputSchema: objectSchema(map[string]any{
			"file_path": prop("string", "Absolute path to the file to read"),
		}, "file_path"),
	},
	{
		ID: "Write", Name: "Write", Source: "builtin",
		Description: "Write content to a file",
		InputSchema: objectSchema(map[string]any{
			"file_path": prop("string", "Absolute path to the file to write"),
			"content":   prop("string", "Content to write to the file"),
		}, "file_path", "content"),
	},
	{
		ID: "Edit", Name: "Edit", Source: "builtin",
		Description: "Replace an exact string in a file",
		InputSchema: objectSchema(map[string]any{
			"file_path":  prop("string", "Absolute path to the file to edit"),
			"old_string": prop("string", "Text to replace"),
			"new_string": prop("string", "Replacement text"),
		}, "file_path", "old_string", "new_string"),
	},
	{
		ID: "Bash", Name: "Bash", Source: "builtin",
		Description: "Run a shell command",
		InputSchema: objectSchema(map[string]any{
			"command": prop("string", "Command to execute"),
			"timeout": prop("number", "Timeout in milliseconds"),
		}, "command"),
	},
	{
		ID: "Glob", Name: "Glob", Source: "builtin",
		Description: "Match files by glob pattern",
		InputSchema: objectSchema(map[string]any{
			"pattern": prop("string", "Glob pattern to match"),
			"path":    prop("string", "Directory to search in"),
		}, "pattern"),
	},
	{
		ID: "Grep", Name: "Grep", Source: "builtin",
		Description: "Search file contents with a regular expression",
		InputSchema: objectSchema(map[string]any{
			"pattern": prop("string", "Regular expression to search for"),
			"path":    prop("string", "File or directory to search in"),
		}, "pattern"),
	},
	{
		ID: "WebSearch", Name: "WebSearch", Source: "builtin",
		Description: "Search the web",
		InputSchema: objectSchema(map[string]any{
			"query": prop("string", "Search query"),
		}, "query"),
	},
	{
		ID: "WebFetch", Name: "WebFetch", Source: "builtin",
		Description: "Fetch and summarize a web page",
		InputSchema: objectSchema(map[string]any{
			"url":    prop("string", "URL to fetch"),
			"prompt": prop("string", "What to extract from the page"),
		}, "url", "prompt"),
	},
	{
		ID: "Task", Name: "Task", Source: "builtin",
		Description: "Delegate a task to a subagent",
		InputSchema: objectSchema(map[string]any{
			"description": prop("string", "Short task description"),
			"prompt":      prop("string", "Full prompt for the subagent"),
		}, "description", "prompt"),
	},
	{
		ID: "TodoWrite", Name: "TodoWrite", Source: "builtin",
		Description: "Update the planning todo list",
		InputSchema: objectSchema(map[string]any{
			"todos": map[string]any{"type": "array", "description": "Todo items"},
		}, "todos"),
	},
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// ListTools returns the builtin tool catalogue, narrowed to AllowedTools
// when configured.
func (a *Adapter) ListTools(ctx context.Context) ([]harness.Tool, error) {
	if len(a.config.AllowedTools) == 0 {
		return append([]harness.Tool(nil), builtinTools...), nil
	}
	allowed := make(map[string]bool, len(a.config.AllowedTools))
	for _, name := range a.config.AllowedTools {
		allowed[name] = true
	}
	var tools []harness.Tool
	for _, tool := range builtinTools {
		if allowed[tool.Name] {
			tools = append(tools, tool)
		}
	}
	return tools, nil
}

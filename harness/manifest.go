package harness

// CapabilityInfo is one entry of a capability manifest.
type CapabilityInfo struct {
	ID        string `json:"id"`
	Supported bool   `json:"supported"`
	Notes     string `json:"notes,omitempty"`
}

// Manifest lists the capabilities an adapter exposes, keyed by stable
// capability ids.
type Manifest struct {
	HarnessID    string           `json:"harness_id"`
	Version      string           `json:"version"`
	Capabilities []CapabilityInfo `json:"capabilities"`
}

// capabilityIDs is the fixed mapping from capability flags to manifest entry
// ids. Order matters: manifests list entries in this order.
var capabilityIDs = []struct {
	id        string
	supported func(Capabilities) bool
}{
	{"execution.run", func(c Capabilities) bool { return c.Execution }},
	{"execution.stream", func(c Capabilities) bool { return c.Streaming }},
	{"sessions.create", func(c Capabilities) bool { return c.Sessions }},
	{"memory.blocks", func(c Capabilities) bool { return c.Memory }},
	{"subagents.spawn", func(c Capabilities) bool { return c.Subagents }},
	{"mcp.servers", func(c Capabilities) bool { return c.MCP }},
	{"files.access", func(c Capabilities) bool { return c.Files }},
	{"hooks.events", func(c Capabilities) bool { return c.Hooks }},
	{"planning.todos", func(c Capabilities) bool { return c.Planning }},
	{"skills.system", func(c Capabilities) bool { return c.Skills }},
	{"agents.crud", func(c Capabilities) bool { return c.Agents }},
	{"transport.websocket", func(c Capabilities) bool { return c.WebSocket }},
	{"transport.multipart", func(c Capabilities) bool { return c.Multipart }},
	{"transport.binary_download", func(c Capabilities) bool { return c.BinaryDownload }},
}

// DefaultManifest derives a manifest from an adapter's capability flags.
// Adapters may publish richer, backend-specific manifests but must not
// contradict the flags.
func DefaultManifest(a Adapter) Manifest {
	caps := a.Capabilities()
	entries := make([]CapabilityInfo, 0, len(capabilityIDs))
	for _, m := range capabilityIDs {
		if m.supported(caps) {
			entries = append(entries, CapabilityInfo{ID: m.id, Supported: true})
		}
	}
	return Manifest{
		HarnessID:    a.ID(),
		Version:      a.Version(),
		Capabilities: entries,
	}
}

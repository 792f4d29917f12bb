// ABOUTME: Data types for installed mod records held by a catalog snapshot
// ABOUTME: Defines ComponentRecord, Environment and ordered contact entries

package catalog

// Environment describes where a mod is able to run.
type Environment string

const (
	EnvUniversal Environment = "universal"
	EnvClient    Environment = "client"
	EnvServer    Environment = "server"
)

// Describe returns a short human readable explanation of the environment.
func (e Environment) Describe() string {
	switch e {
	case EnvClient:
		return "Only runs on the client."
	case EnvServer:
		return "Only runs on dedicated servers."
	default:
		return "Can run on the client or on dedicated servers."
	}
}

// ParseEnvironment maps loader manifest values ("client", "server", "*", "")
// onto an Environment. Unknown values are treated as universal.
func ParseEnvironment(s string) Environment {
	switch s {
	case "client", "CLIENT":
		return EnvClient
	case "server", "SERVER", "dedicated_server", "DEDICATED_SERVER":
		return EnvServer
	default:
		return EnvUniversal
	}
}

// ContactEntry is a single contact key/value pair ("homepage", "issues", ...).
type ContactEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ComponentRecord represents one installed mod.
type ComponentRecord struct {
	ID          string
	Name        string
	Version     string
	Description string
	Type        string // "fabric", "quilt", "forge", "builtin", "category"

	Authors      []string
	Contributors []string
	Licenses     []string
	Contact      []ContactEntry
	Environment  Environment

	Parent       string   // parent mod id, empty for top-level mods
	Children     []string // child mod ids in display order
	Provides     []string
	Dependencies []string

	Source string // archive the record was read from, informational
}

// DisplayName returns the name to show for the record, falling back to the id.
func (r *ComponentRecord) DisplayName() string {
	if r.Name == "" {
		return r.ID
	}
	return r.Name
}

// IsTopLevel reports whether the record has no parent.
func (r *ComponentRecord) IsTopLevel() bool {
	return r.Parent == ""
}

// HasChildren reports whether the record has child mods.
func (r *ComponentRecord) HasChildren() bool {
	return len(r.Children) > 0
}

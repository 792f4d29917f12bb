// ABOUTME: Tree generation for the child mods of a record
// ABOUTME: Outputs unicode box-drawing formatted parent/child tree
package modview

import (
	"strings"

	"github.com/modscmd/modscmd/internal/catalog"
	"github.com/modscmd/modscmd/internal/ui"
)

// GenerateTree creates a tree of the descendants of id.
// Returns the tree string and the number of mods in it.
func GenerateTree(s *catalog.Snapshot, id string) (string, int) {
	var sb strings.Builder
	count := generateTreeWithPrefix(&sb, s, id, "", map[string]bool{id: true})
	return sb.String(), count
}

// generateTreeWithPrefix writes the children of id with a given prefix for
// nested content. seen guards against malformed parent links.
func generateTreeWithPrefix(sb *strings.Builder, s *catalog.Snapshot, id, prefix string, seen map[string]bool) int {
	children := s.Children(id)
	count := 0

	for i, child := range children {
		if seen[child.ID] {
			continue
		}
		seen[child.ID] = true
		count++

		isLast := i == len(children)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		line := ui.Name(child.DisplayName()) + " " + ui.Muted("("+child.ID+")")
		if child.Version != "" {
			line += " " + ui.Version("v"+child.Version)
		}
		sb.WriteString(prefix + connector + line + "\n")

		childPrefix := prefix + "│   "
		if isLast {
			childPrefix = prefix + "    "
		}
		count += generateTreeWithPrefix(sb, s, child.ID, childPrefix, seen)
	}

	return count
}

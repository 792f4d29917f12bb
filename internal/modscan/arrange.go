// ABOUTME: Groups mods into parent/child trees and fixes the snapshot order
// ABOUTME: Applies Mod Menu parents, QSL, Quilted/Fabric API modules and Loom-generated grouping

package modscan

import (
	"sort"
	"strings"

	"github.com/modscmd/modscmd/internal/catalog"
)

const (
	qslID              = "qsl"
	fabricAPIID        = "fabric-api"
	legacyFabricAPIID  = "fabric"
	quiltedFabricAPIID = "quilted_fabric_api"
	loomGeneratedID    = "loom-generated"
)

// arrange assigns parents in place and returns the records in snapshot
// order: top-level mods sorted by id, each followed depth first by its
// children. Synthetic category records are added where needed.
func arrange(descs map[string]*descriptor) []catalog.ComponentRecord {
	parentByModMenu(descs)
	groupQSL(descs)
	groupModules(descs, quiltedFabricAPIID, func(d *descriptor) bool {
		return d.hasMarker(markerFabricAPIModule) && strings.HasPrefix(d.record.ID, "quilted_")
	})
	for _, id := range []string{fabricAPIID, legacyFabricAPIID} {
		if _, ok := descs[id]; ok {
			groupModules(descs, id, func(d *descriptor) bool {
				return d.hasMarker(markerFabricAPIModule)
			})
			break
		}
	}
	groupLoomGenerated(descs)
	breakCycles(descs)

	children := make(map[string][]string)
	var roots []string
	for id, d := range descs {
		if d.record.Parent == "" {
			roots = append(roots, id)
			continue
		}
		children[d.record.Parent] = append(children[d.record.Parent], id)
	}
	sort.Strings(roots)
	for _, ids := range children {
		sort.Strings(ids)
	}

	out := make([]catalog.ComponentRecord, 0, len(descs))
	var visit func(id string)
	visit = func(id string) {
		rec := descs[id].record
		rec.Children = children[id]
		out = append(out, rec)
		for _, child := range children[id] {
			visit(child)
		}
	}
	for _, id := range roots {
		visit(id)
	}
	return out
}

// parentByModMenu uses custom.modmenu.parent when the named parent is installed.
func parentByModMenu(descs map[string]*descriptor) {
	for id, d := range descs {
		p := d.modMenuParent
		if p == "" || p == id || p == qslID {
			continue
		}
		if _, ok := descs[p]; ok {
			d.record.Parent = p
		}
	}
}

// groupQSL puts QSL modules under "qsl", creating it when only the modules
// are installed (Quilted Fabric API ships QSL without the parent mod).
func groupQSL(descs map[string]*descriptor) {
	var modules []*descriptor
	for id, d := range descs {
		if d.modMenuParent == qslID && id != qslID && d.record.Parent == "" {
			modules = append(modules, d)
		}
	}
	if len(modules) == 0 {
		return
	}
	if _, ok := descs[qslID]; !ok {
		descs[qslID] = &descriptor{
			record: catalog.ComponentRecord{
				ID:          qslID,
				Name:        "Quilt Standard Libraries",
				Type:        "quilt",
				Description: "A set of libraries to assist in making Quilt mods.",
				Authors:     []string{"QuiltMC: QSL Team"},
				Environment: catalog.EnvUniversal,
			},
		}
	}
	for _, d := range modules {
		d.record.Parent = qslID
	}
}

// groupModules moves top-level mods accepted by isModule under parentID, if
// that parent is installed.
func groupModules(descs map[string]*descriptor, parentID string, isModule func(*descriptor) bool) {
	if _, ok := descs[parentID]; !ok {
		return
	}
	for id, d := range descs {
		if id == parentID || d.record.Parent != "" {
			continue
		}
		if isModule(d) {
			d.record.Parent = parentID
		}
	}
}

// groupLoomGenerated puts library mods generated by Loom under a synthetic
// "loom-generated" category.
func groupLoomGenerated(descs map[string]*descriptor) {
	var generated []*descriptor
	for _, d := range descs {
		if d.record.Parent == "" && d.hasMarker(markerLoomGenerated) {
			generated = append(generated, d)
		}
	}
	if len(generated) == 0 {
		return
	}
	if _, ok := descs[loomGeneratedID]; !ok {
		descs[loomGeneratedID] = &descriptor{
			record: catalog.ComponentRecord{
				ID:          loomGeneratedID,
				Name:        "Loom Generated",
				Type:        "category",
				Description: "Parent mod to all Loom-generated library mods.",
				Environment: catalog.EnvUniversal,
			},
		}
	}
	for _, d := range generated {
		if d.record.ID != loomGeneratedID {
			d.record.Parent = loomGeneratedID
		}
	}
}

// breakCycles detaches mods whose parent chain loops back on itself so every
// record stays reachable from a top-level mod.
func breakCycles(descs map[string]*descriptor) {
	ids := make([]string, 0, len(descs))
	for id := range descs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		seen := map[string]bool{}
		cur := descs[id].record.Parent
		for cur != "" && !seen[cur] {
			if cur == id {
				descs[id].record.Parent = ""
				break
			}
			seen[cur] = true
			p, ok := descs[cur]
			if !ok {
				break
			}
			cur = p.record.Parent
		}
	}
}

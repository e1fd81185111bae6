// =============================================================================
// XLSX to OSCAL Catalog - Catalog Aggregator
// =============================================================================
//
// This module folds the flat sequence of worksheet rows into the three-level
// OSCAL tree:
//
//   Group (group_id)
//   └── Subgroup (subgroup_id, unique within its group)
//       └── Control (one per row, never deduplicated)
//
// GROUPING LOGIC:
//   Groups and subgroups are looked up by identifier with an exact,
//   case-sensitive match. The first row that names an identifier creates the
//   node (and fixes its title); later rows reuse it. Each node keeps an
//   ordered slice of children next to an id-keyed index so that lookups are
//   O(1) while output order stays the order of first occurrence.
//
// =============================================================================

package catalog

import (
	"strings"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/types"
)

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator accumulates rows into a group tree.
// It is not safe for concurrent use; a run owns exactly one Aggregator.
type Aggregator struct {
	// groups is the catalog-level group sequence in first-seen order.
	groups []*oscal.Group

	// groupIndex maps a group id to its node in groups.
	groupIndex map[string]*oscal.Group

	// subgroupIndex maps a group node to the id index of its subgroups.
	subgroupIndex map[*oscal.Group]map[string]*oscal.Group

	stats Stats
}

// Stats counts the nodes created so far.
type Stats struct {
	Rows      int
	Groups    int
	Subgroups int
	Controls  int
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		groupIndex:    make(map[string]*oscal.Group),
		subgroupIndex: make(map[*oscal.Group]map[string]*oscal.Group),
	}
}

// Add folds one row record into the tree.
func (a *Aggregator) Add(row types.Row) {
	a.AddControl(
		row.GroupID,
		row.GroupTitle,
		row.SubgroupID,
		row.SubgroupTitle,
		row.ControlID,
		row.ControlTitle,
		row.ControlDescription,
	)
}

// AddControl places one control under its group and subgroup, creating either
// container the first time its id is seen.
//
// PARAMETERS:
//   - groupID, groupTitle: the top-level group. The title is only used when
//     the group is created.
//   - subgroupID, subgroupTitle: the subgroup within the group. The title is
//     only used when the subgroup is created.
//   - controlID, controlTitle: the new control.
//   - controlDescription: free text; whitespace-normalized and attached as a
//     Control_Description property when non-empty.
//
// Identifiers are not validated here. An empty or differently-cased id simply
// creates its own node; see the validation package for the warnings.
func (a *Aggregator) AddControl(
	groupID, groupTitle string,
	subgroupID, subgroupTitle string,
	controlID, controlTitle string,
	controlDescription string,
) {
	a.stats.Rows++

	group := a.group(groupID, groupTitle)
	subgroup := a.subgroup(group, subgroupID, subgroupTitle)

	control := &oscal.Control{
		ID:    controlID,
		Title: controlTitle,
	}
	if value := NormalizeDescription(controlDescription); value != "" {
		control.Props = []oscal.Property{{
			Name:  oscal.PropControlDescription,
			Value: value,
		}}
	}

	subgroup.Controls = append(subgroup.Controls, control)
	a.stats.Controls++
}

// group finds or creates the top-level group with the given id.
func (a *Aggregator) group(id, title string) *oscal.Group {
	if g, ok := a.groupIndex[id]; ok {
		return g
	}

	g := &oscal.Group{ID: id, Title: title}
	a.groups = append(a.groups, g)
	a.groupIndex[id] = g
	a.subgroupIndex[g] = make(map[string]*oscal.Group)
	a.stats.Groups++

	return g
}

// subgroup finds or creates the subgroup with the given id inside parent.
func (a *Aggregator) subgroup(parent *oscal.Group, id, title string) *oscal.Group {
	index := a.subgroupIndex[parent]
	if sg, ok := index[id]; ok {
		return sg
	}

	sg := &oscal.Group{ID: id, Title: title}
	parent.Groups = append(parent.Groups, sg)
	index[id] = sg
	a.stats.Subgroups++

	return sg
}

// Groups returns the accumulated group sequence. The slice is shared with
// the Aggregator, not copied.
func (a *Aggregator) Groups() []*oscal.Group {
	return a.groups
}

// Stats returns node counts for the rows added so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// Catalog assembles the catalog root from the accumulated groups.
// Every call generates a new uuid; the group tree is attached by reference.
func (a *Aggregator) Catalog(meta oscal.Metadata) *oscal.Catalog {
	return Assemble(a.groups, meta)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// NormalizeDescription trims s and collapses every internal whitespace run
// to a single space.
func NormalizeDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// =============================================================================
// XLSX to OSCAL Catalog - Data-Quality Checks
// =============================================================================
//
// This module inspects an assembled catalog and reports data-quality findings
// without changing it. The aggregator deliberately keeps exact-match
// identifier semantics; the findings below make the resulting drift visible:
//
//   - empty-id        : a group, subgroup or control with an empty identifier
//   - case-variant    : sibling identifiers that differ only by letter case
//   - duplicate-id    : a control id repeated inside one subgroup
//   - empty-title     : a group, subgroup or control without a title
//
// SEVERITY:
//   Every finding is a warning. The converter fails the run on findings only
//   in strict mode.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Kind classifies a finding.
type Kind string

const (
	KindEmptyID     Kind = "empty-id"
	KindCaseVariant Kind = "case-variant"
	KindDuplicateID Kind = "duplicate-id"
	KindEmptyTitle  Kind = "empty-title"
)

// Level names the tree level a finding refers to.
type Level string

const (
	LevelGroup    Level = "group"
	LevelSubgroup Level = "subgroup"
	LevelControl  Level = "control"
)

// Issue is a single data-quality finding.
type Issue struct {
	Kind  Kind
	Level Level

	// Path locates the node as slash-separated ids, e.g. "G1/S1/C3".
	// Empty ids appear as "".
	Path string

	Message string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("[%s] %s %s: %s", i.Kind, i.Level, i.Path, i.Message)
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options selects which checks run.
type Options struct {
	// SkipTitles disables the empty-title check.
	SkipTitles bool
}

// Validator walks a catalog and collects findings.
type Validator struct {
	options Options
	issues  []Issue
}

// New creates a Validator with the given options.
func New(options Options) *Validator {
	return &Validator{options: options}
}

// Check runs every check with default options.
func Check(c *oscal.Catalog) []Issue {
	return New(Options{}).Check(c)
}

// Check walks c and returns the findings in document order.
func (v *Validator) Check(c *oscal.Catalog) []Issue {
	v.issues = nil
	if c == nil {
		return nil
	}

	v.siblings(LevelGroup, "", groupIDs(c.Groups))
	for _, g := range c.Groups {
		groupPath := pathOf(g.ID)
		v.node(LevelGroup, groupPath, g.ID, g.Title)

		v.siblings(LevelSubgroup, groupPath+"/", groupIDs(g.Groups))
		for _, sg := range g.Groups {
			subgroupPath := groupPath + "/" + pathOf(sg.ID)
			v.node(LevelSubgroup, subgroupPath, sg.ID, sg.Title)

			v.controls(subgroupPath, sg.Controls)
		}
	}

	return v.issues
}

// controls checks one subgroup's controls, including repeated ids.
func (v *Validator) controls(parentPath string, controls []*oscal.Control) {
	ids := make([]string, 0, len(controls))
	seen := make(map[string]int)

	for _, c := range controls {
		controlPath := parentPath + "/" + pathOf(c.ID)
		v.node(LevelControl, controlPath, c.ID, c.Title)

		seen[c.ID]++
		if seen[c.ID] == 2 {
			v.add(KindDuplicateID, LevelControl, controlPath,
				fmt.Sprintf("control id %q appears more than once in this subgroup; controls are not merged", c.ID))
		}
		if seen[c.ID] == 1 {
			ids = append(ids, c.ID)
		}
	}

	v.siblings(LevelControl, parentPath+"/", ids)
}

// node checks one node's own id and title.
func (v *Validator) node(level Level, path, id, title string) {
	if id == "" {
		v.add(KindEmptyID, level, path, fmt.Sprintf("%s has an empty identifier", level))
	}
	if !v.options.SkipTitles && strings.TrimSpace(title) == "" {
		v.add(KindEmptyTitle, level, path, fmt.Sprintf("%s has no title", level))
	}
}

// siblings reports distinct ids under one parent that are equal ignoring case.
func (v *Validator) siblings(level Level, parentPath string, ids []string) {
	first := make(map[string]string)
	for _, id := range ids {
		if id == "" {
			continue
		}
		key := strings.ToLower(id)
		prev, ok := first[key]
		if !ok {
			first[key] = id
			continue
		}
		if prev != id {
			v.add(KindCaseVariant, level, parentPath+id,
				fmt.Sprintf("%s id %q differs from %q only by case; kept as separate %ss", level, id, prev, level))
		}
	}
}

func (v *Validator) add(kind Kind, level Level, path, message string) {
	v.issues = append(v.issues, Issue{
		Kind:    kind,
		Level:   level,
		Path:    path,
		Message: message,
	})
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Count returns the number of issues of the given kind.
func Count(issues []Issue, kind Kind) int {
	n := 0
	for _, i := range issues {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

func groupIDs(groups []*oscal.Group) []string {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// pathOf renders an id as a path segment.
func pathOf(id string) string {
	if id == "" {
		return `""`
	}
	return id
}

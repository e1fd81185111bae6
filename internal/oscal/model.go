// =============================================================================
// XLSX to OSCAL Catalog - OSCAL Catalog Model
// =============================================================================
//
// This package holds the subset of the OSCAL 1.1 catalog model produced by the
// builder. The same structs serialize to all three OSCAL formats:
//
//   JSON / YAML : hyphenated keys, wrapped in a top-level "catalog" object
//   XML         : <catalog xmlns="http://csrc.nist.gov/ns/oscal/1.0" uuid="...">
//
// DOCUMENT SHAPE:
//
//   catalog
//   ├── uuid
//   ├── metadata (title, last-modified, version, oscal-version)
//   └── groups[]            <- top-level groups
//       └── groups[]        <- subgroups
//           └── controls[]
//               └── props[] (name="Control_Description")
//
// =============================================================================

package oscal

import "encoding/xml"

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// Version is the OSCAL schema version stamped into metadata.
	Version = "1.1.2"

	// Namespace is the OSCAL XML namespace.
	Namespace = "http://csrc.nist.gov/ns/oscal/1.0"

	// PropControlDescription is the property name carrying a control's
	// normalized description text.
	PropControlDescription = "Control_Description"
)

// =============================================================================
// MODEL TYPES
// =============================================================================

// Catalog is the root OSCAL catalog document.
type Catalog struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"http://csrc.nist.gov/ns/oscal/1.0 catalog"`

	UUID     string   `json:"uuid" yaml:"uuid" xml:"uuid,attr"`
	Metadata Metadata `json:"metadata" yaml:"metadata" xml:"metadata"`
	Groups   []*Group `json:"groups,omitempty" yaml:"groups,omitempty" xml:"group,omitempty"`
}

// Metadata describes the catalog document itself.
// Element order follows the OSCAL metadata assembly.
type Metadata struct {
	Title        string `json:"title" yaml:"title" xml:"title"`
	LastModified string `json:"last-modified" yaml:"last-modified" xml:"last-modified"`
	Version      string `json:"version" yaml:"version" xml:"version"`
	OSCALVersion string `json:"oscal-version" yaml:"oscal-version" xml:"oscal-version"`
}

// Group is a container of subgroups or controls. Top-level groups hold
// subgroups; subgroups hold controls.
type Group struct {
	ID       string     `json:"id" yaml:"id" xml:"id,attr"`
	Title    string     `json:"title" yaml:"title" xml:"title"`
	Groups   []*Group   `json:"groups,omitempty" yaml:"groups,omitempty" xml:"group,omitempty"`
	Controls []*Control `json:"controls,omitempty" yaml:"controls,omitempty" xml:"control,omitempty"`
}

// Control is a single requirement or practice.
type Control struct {
	ID    string     `json:"id" yaml:"id" xml:"id,attr"`
	Title string     `json:"title" yaml:"title" xml:"title"`
	Props []Property `json:"props,omitempty" yaml:"props,omitempty" xml:"prop,omitempty"`
}

// Property is a name/value annotation on a control.
type Property struct {
	Name  string `json:"name" yaml:"name" xml:"name,attr"`
	Value string `json:"value" yaml:"value" xml:"value,attr"`
}

// Document wraps a catalog under the "catalog" root key used by the OSCAL
// JSON and YAML formats.
type Document struct {
	Catalog *Catalog `json:"catalog" yaml:"catalog"`
}

// Prop returns the value of the named property and whether it was present.
func (c *Control) Prop(name string) (string, bool) {
	for _, p := range c.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

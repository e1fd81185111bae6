// =============================================================================
// XLSX to OSCAL Catalog - XML Writer Module
// =============================================================================
//
// This module renders a catalog in the OSCAL XML format.
//
// XML STRUCTURE:
//
//   <catalog xmlns="http://csrc.nist.gov/ns/oscal/1.0" uuid="...">
//     <metadata>
//       <title>AI RMF</title>
//       <last-modified>2024-05-01T12:30:00+00:00</last-modified>
//       <version>1.0</version>
//       <oscal-version>1.1.2</oscal-version>
//     </metadata>
//     <group id="G1">                        <!-- top-level group -->
//       <title>Governance</title>
//       <group id="S1">                      <!-- subgroup -->
//         <title>Policies</title>
//         <control id="C1">
//           <title>Policy A</title>
//           <prop name="Control_Description" value="Do the thing"/>
//         </control>
//       </group>
//     </group>
//   </catalog>
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders the catalog as an OSCAL XML document.
func Generate(c *oscal.Catalog) ([]byte, error) {
	return GenerateWithOptions(c, DefaultGenerateOptions())
}

// GenerateWithOptions renders the catalog with custom options.
func GenerateWithOptions(c *oscal.Catalog, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, c, options); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write streams the XML document to w.
func Write(w io.Writer, c *oscal.Catalog, options GenerateOptions) error {
	if c == nil {
		return fmt.Errorf("failed to marshal XML: nil catalog")
	}

	if options.IncludeXMLDeclaration {
		if _, err := fmt.Fprintf(w, "<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding); err != nil {
			return fmt.Errorf("failed to write XML declaration: %w", err)
		}
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", options.Indent)

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to marshal XML: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}

	return nil
}

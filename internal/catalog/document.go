package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
)

// TimestampLayout is ISO-8601 with a numeric UTC offset and whole seconds,
// e.g. 2024-05-01T12:30:00+00:00.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// NewMetadata builds catalog metadata for a run. lastModified is converted to
// UTC and truncated to whole seconds.
func NewMetadata(title, version string, lastModified time.Time) oscal.Metadata {
	return oscal.Metadata{
		Title:        title,
		LastModified: FormatTimestamp(lastModified),
		Version:      version,
		OSCALVersion: oscal.Version,
	}
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

// Assemble attaches metadata and a freshly generated uuid to groups.
// Same groups and metadata give the same document apart from the uuid.
func Assemble(groups []*oscal.Group, meta oscal.Metadata) *oscal.Catalog {
	return &oscal.Catalog{
		UUID:     uuid.NewString(),
		Metadata: meta,
		Groups:   groups,
	}
}

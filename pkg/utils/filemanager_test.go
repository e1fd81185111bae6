package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/pkg/utils"
)

func sampleCatalog() *oscal.Catalog {
	return &oscal.Catalog{
		UUID: "7c8e2a52-3c0f-4f6e-8d5c-1d2b3a4c5e6f",
		Metadata: oscal.Metadata{
			Title:        "AI RMF",
			LastModified: "2024-05-01T12:30:00+00:00",
			Version:      "1.0",
			OSCALVersion: oscal.Version,
		},
		Groups: []*oscal.Group{{
			ID:    "G1",
			Title: "Governance",
			Groups: []*oscal.Group{{
				ID:    "S1",
				Title: "Policies",
				Controls: []*oscal.Control{
					{ID: "C1", Title: "Policy A", Props: []oscal.Property{{Name: "Control_Description", Value: "Do the thing"}}},
					{ID: "C2", Title: "Policy B"},
				},
			}},
		}},
	}
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, utils.Encode(&buf, sampleCatalog(), "json"))

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	c := raw["catalog"]
	require.NotNil(t, c)
	assert.Equal(t, "7c8e2a52-3c0f-4f6e-8d5c-1d2b3a4c5e6f", c["uuid"])

	meta := c["metadata"].(map[string]any)
	assert.Equal(t, "AI RMF", meta["title"])
	assert.Equal(t, "2024-05-01T12:30:00+00:00", meta["last-modified"])
	assert.Equal(t, "1.0", meta["version"])
	assert.Equal(t, "1.1.2", meta["oscal-version"])

	out := buf.String()
	assert.Contains(t, out, "\n  \"catalog\": {\n    \"uuid\"")
	assert.NotContains(t, out, "XMLName")
	assert.Equal(t, 1, strings.Count(out, `"props"`), "empty props are omitted")
	assert.Equal(t, 1, strings.Count(out, `"controls"`), "top-level groups carry no controls")
}

func TestEncode_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, utils.Encode(&buf, sampleCatalog(), "json"))

	var doc oscal.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Catalog.Groups, 1)
	sg := doc.Catalog.Groups[0].Groups[0]
	assert.Equal(t, "S1", sg.ID)
	require.Len(t, sg.Controls, 2)
	assert.Equal(t, []oscal.Property{{Name: "Control_Description", Value: "Do the thing"}}, sg.Controls[0].Props)
	assert.Nil(t, sg.Controls[1].Props)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, utils.Encode(&buf, sampleCatalog(), "yaml"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "catalog:\n  uuid: 7c8e2a52"))
	assert.Contains(t, out, "last-modified:")
	assert.Contains(t, out, "oscal-version: 1.1.2")

	var doc oscal.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Policy B", doc.Catalog.Groups[0].Groups[0].Controls[1].Title)
}

func TestEncode_XML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, utils.Encode(&buf, sampleCatalog(), "xml"))
	assert.Contains(t, buf.String(), `<catalog xmlns="http://csrc.nist.gov/ns/oscal/1.0"`)
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	err := utils.Encode(io.Discard, sampleCatalog(), "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestWriteCatalog_CreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalogs", "AI_RMF")
	fm := utils.NewFileManager(dir, "JSON")

	path, err := fm.WriteCatalog(sampleCatalog())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "catalog.json"), path)
	assert.True(t, utils.FileExists(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteCatalog_Overwrites(t *testing.T) {
	dir := t.TempDir()
	fm := utils.NewFileManager(dir, "yaml")

	_, err := fm.WriteCatalog(sampleCatalog())
	require.NoError(t, err)

	c := sampleCatalog()
	c.Metadata.Title = "Second"
	path, err := fm.WriteCatalog(c)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Second")
}

func TestWriteFileAtomic_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	boom := errors.New("boom")

	err := utils.WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("{partial"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomic_KeepsExistingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	err := utils.WriteFileAtomic(path, func(w io.Writer) error {
		return errors.New("encode failed")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestWriteCatalog_UnwritableOutput(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	fm := utils.NewFileManager(filepath.Join(blocker, "out"), "json")
	_, err := fm.WriteCatalog(sampleCatalog())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}

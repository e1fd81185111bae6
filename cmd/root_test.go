package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/config"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/converter"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/oscal"
	"github.com/ginjaninja78/xlsx-to-oscal-catalog/internal/xlsxparser"
)

// workspace writes data/AI-RMF.xlsx and data/AI-RMF.yaml under a temp root.
func workspace(t *testing.T, rows ...[]interface{}) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("AI RMF")
	require.NoError(t, err)

	header := make([]interface{}, 0, len(xlsxparser.Columns))
	for _, c := range xlsxparser.Columns {
		header = append(header, c)
	}
	require.NoError(t, f.SetSheetRow("AI RMF", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow("AI RMF", cell, &values))
	}
	require.NoError(t, f.SaveAs(filepath.Join(root, config.DefaultInput)))

	meta := "sheet-name: AI RMF\ntitle: AI RMF\nversion: \"1.0\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultYAML), []byte(meta), 0o644))
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "disabled"))
	err := root.Execute()
	return out.String(), err
}

func TestBuild_Defaults(t *testing.T) {
	root := workspace(t,
		[]interface{}{"G1", "Governance", "S1", "Policies", "C1", "Policy A", "desc"},
		[]interface{}{"G1", "Governance", "S2", "Roles", "C2", "Policy B", ""},
	)

	out, err := execute(t, "build", "--root", root)
	require.NoError(t, err)

	want := filepath.Join(root, "catalogs", "AI_RMF", "catalog.json")
	assert.Contains(t, out, "output: "+want)
	assert.Contains(t, out, "groups: 1  subgroups: 2  controls: 2  warnings: 0")
	assert.FileExists(t, want)
}

func TestBuild_FlagsOverridePaths(t *testing.T) {
	root := workspace(t, []interface{}{"G1", "g", "S1", "s", "C1", "c", ""})
	output := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "build", "--root", root, "--output", output, "--format", "XML")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(output, "catalog.xml"))
}

func TestBuild_EnvironmentOverride(t *testing.T) {
	root := workspace(t, []interface{}{"G1", "g", "S1", "s", "C1", "c", ""})
	t.Setenv("CATALOG_ROOT", root)
	t.Setenv("CATALOG_FORMAT", "yaml")

	_, err := execute(t, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "catalogs", "AI_RMF", "catalog.yaml"))
}

func TestBuild_InvalidFormat(t *testing.T) {
	root := workspace(t)

	_, err := execute(t, "build", "--root", root, "--format", "csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidFormat))
}

func TestBuild_MissingInput(t *testing.T) {
	root := workspace(t)

	_, err := execute(t, "build", "--root", root, "--input", "data/nope.xlsx")
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(root, "catalogs"))
}

func TestBuild_StrictFails(t *testing.T) {
	root := workspace(t,
		[]interface{}{"G1", "g", "S1", "s", "C1", "c", ""},
		[]interface{}{"G1", "g", "S1", "s", "C1", "c", ""},
	)

	_, err := execute(t, "build", "--root", root, "--strict")
	require.Error(t, err)
	assert.True(t, errors.Is(err, converter.ErrDataQuality))
	assert.NoDirExists(t, filepath.Join(root, "catalogs"))
}

func TestBuild_DryRun(t *testing.T) {
	root := workspace(t, []interface{}{"G1", "g", "S1", "s", "C1", "c", ""})

	out, err := execute(t, "build", "--root", root, "--dry-run")
	require.NoError(t, err)
	assert.NotContains(t, out, "output:")
	assert.NoDirExists(t, filepath.Join(root, "catalogs"))
}

func TestValidate(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		root := workspace(t, []interface{}{"G1", "g", "S1", "s", "C1", "c", ""})

		out, err := execute(t, "validate", "--root", root)
		require.NoError(t, err)
		assert.Contains(t, out, "1 row(s), 0 finding(s)")
		assert.NoDirExists(t, filepath.Join(root, "catalogs"))
	})

	t.Run("findings", func(t *testing.T) {
		root := workspace(t,
			[]interface{}{"G1", "g", "S1", "s", "C1", "c", ""},
			[]interface{}{"G1", "g", "S1", "s", "C1", "c", ""},
		)

		out, err := execute(t, "validate", "--root", root)
		require.Error(t, err)
		assert.True(t, errors.Is(err, converter.ErrDataQuality))
		assert.Contains(t, out, "[duplicate-id] control G1/S1/C1")
		assert.Contains(t, out, "2 row(s), 1 finding(s)")
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "XLSX to OSCAL Catalog")
	assert.Contains(t, out, "OSCAL Version: "+oscal.Version)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squarePlanYAML = `
name: Square Site
type: layout
layout_boundary:
  coordinates:
    - {id: A, easting: 0, northing: 0}
    - {id: B, easting: 100, northing: 0}
    - {id: C, easting: 100, northing: 100}
    - {id: D, easting: 0, northing: 100}
layout_parameters:
  plot_width: 20
  plot_depth: 25
  min_parcel_area: 100
  include_green_spaces: false
`

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"generate", "validate", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "layout-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestOutputPrefix(t *testing.T) {
	assert.Equal(t, "riverside_estate", outputPrefix("Riverside Estate", "plan.yaml"))
	assert.Equal(t, "site_2", outputPrefix("", "/plans/Site 2.yaml"))
	assert.Equal(t, "lot-7a", outputPrefix("Lot-7A!", ""))
}

// execute runs the root command with a throwaway config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		generateOut, generatePrefix, generateFormats = "", "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGenerateCommand(t *testing.T) {
	planPath := writePlan(t, squarePlanYAML)
	outDir := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "generate", planPath, "--out", outDir, "--format", "geojson,wkt")
	require.NoError(t, err, out)
	assert.Contains(t, out, "20 parcels")

	for _, name := range []string{"square_site.geojson", "square_site_parcels.wkt"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	wkt, err := os.ReadFile(filepath.Join(outDir, "square_site_parcels.wkt"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(wkt)), "\n"), 20)
}

func TestGenerateCommand_UnknownFormat(t *testing.T) {
	planPath := writePlan(t, squarePlanYAML)
	_, err := execute(t, "generate", planPath, "--out", t.TempDir(), "--format", "dxf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", writePlan(t, squarePlanYAML))
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok (4 vertices, grid layout)")
}

func TestValidateCommand_RejectsBadPlan(t *testing.T) {
	bad := strings.Replace(squarePlanYAML, "min_parcel_area: 100", "min_parcel_area: 5000", 1)
	_, err := execute(t, "validate", writePlan(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_parcel_area")
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarcum/roman-xmatch/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", newVersionCmd().Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "roman-xmatch version test-version-1.0.0")
}

func TestSurveysCmd_ListsAllSurveys(t *testing.T) {
	out, err := execute(t, "surveys")
	require.NoError(t, err)

	assert.Contains(t, out, "hlwas")
	assert.Contains(t, out, "hltds")
	assert.Contains(t, out, "gbtds")
	assert.Contains(t, out, "High Latitude Wide Area Survey")
	assert.Contains(t, out, "ELAIS-N1")
}

func TestCatalogsCmd_ListsAllCatalogs(t *testing.T) {
	out, err := execute(t, "catalogs")
	require.NoError(t, err)

	for _, key := range []string{"abell", "sdss", "2masx", "ngc", "ned", "custom"} {
		assert.Contains(t, out, key)
	}
}

func TestRunCmd_Flags(t *testing.T) {
	settings := config.DefaultSettings()
	runCmd := newRunCmd(&settings)

	for flag, shorthand := range map[string]string{
		"survey":     "s",
		"catalogs":   "c",
		"mask":       "m",
		"output-dir": "o",
		"row-limit":  "r",
	} {
		f := runCmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %s", flag)
		assert.Equal(t, shorthand, f.Shorthand, "flag %s", flag)
	}

	assert.NotNil(t, runCmd.Flags().Lookup("custom-file"))
	assert.NotNil(t, runCmd.Flags().Lookup("custom-ra-col"))
	assert.NotNil(t, runCmd.Flags().Lookup("custom-dec-col"))
}

func TestRunCmd_UnknownSurveyFails(t *testing.T) {
	_, err := execute(t, "run", "--survey", "euclid", "--catalogs", "abell")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown survey")
}

func TestRunCmd_UnknownCatalogFails(t *testing.T) {
	_, err := execute(t, "run", "--survey", "hlwas", "--catalogs", "gaia")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown catalog")
}

func TestExecutionsDoNotShareFlagState(t *testing.T) {
	// Slice flags append on repeat within one parse; a value passed to
	// an earlier execution must not leak into a later one.
	_, err := execute(t, "run", "--survey", "euclid", "--catalogs", "abell")
	require.Error(t, err)

	_, err = execute(t, "run", "--survey", "hlwas", "--catalogs", "gaia")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "euclid")
	assert.Contains(t, err.Error(), "unknown catalog")
}

func TestDescribeFootprintSkyCuts(t *testing.T) {
	out, err := execute(t, "surveys")
	require.NoError(t, err)
	assert.Contains(t, out, "|b| >= 20°")
	assert.Contains(t, out, "dec <= 30°")
}

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/spark/indexer"
	"github.com/bamsammich/spark/sparkline"
)

// TestMain points the config lookup at an empty directory so a developer's
// own config file cannot leak into the tests.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "spark-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(stdin)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeUserConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "spark"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spark", "config.toml"), []byte(content), 0o644))
}

func TestRoot_Args(t *testing.T) {
	out, err := execute(t, nil, "1", "2", "3", "4", "5", "6", "7", "8")
	require.NoError(t, err)
	assert.Equal(t, "▁▂▃▄▅▆▇█\n", out)
}

func TestRoot_Stdin(t *testing.T) {
	out, err := execute(t, strings.NewReader("1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, "▁▅█\n", out)
}

func TestRoot_SkipsNonNumeric(t *testing.T) {
	out, err := execute(t, strings.NewReader("1 x 2 NaN 3"))
	require.NoError(t, err)
	assert.Equal(t, "▁▅█\n", out)
}

func TestRoot_EmptyInput(t *testing.T) {
	out, err := execute(t, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestRoot_NegativeArgsAfterDashes(t *testing.T) {
	out, err := execute(t, nil, "--", "-3", "-2", "-1")
	require.NoError(t, err)
	assert.Equal(t, "▁▅█\n", out)
}

func TestRoot_FixedRange(t *testing.T) {
	out, err := execute(t, nil, "--min", "2", "--max", "3", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, "▁▁██\n", out)
}

func TestRoot_RangeTableStrategy(t *testing.T) {
	out, err := execute(t, strings.NewReader("1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16"), "--strategy", "range-table")
	require.NoError(t, err)
	assert.Equal(t, "▁▁▂▂▃▃▄▄▅▅▆▆▇▇██\n", out)
}

func TestRoot_CustomRampAndWidth(t *testing.T) {
	out, err := execute(t, nil, "--ramp", "abc", "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", out)

	out, err = execute(t, nil, "--width", "3", "1", "2", "3", "4", "5", "6", "7", "8")
	require.NoError(t, err)
	assert.Equal(t, "▁▅█\n", out)
}

func TestRoot_Errors(t *testing.T) {
	_, err := execute(t, nil, "--strategy", "btree", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown indexer strategy")

	_, err = execute(t, nil, "--min", "1", "2")
	require.Error(t, err)

	_, err = execute(t, nil, "--min", "3", "--max", "1", "2")
	require.ErrorIs(t, err, sparkline.ErrInvalidRange)

	_, err = execute(t, nil, "--ramp", "", "1")
	require.ErrorIs(t, err, sparkline.ErrEmptyRamp)

	_, err = execute(t, nil, "-v", "-q", "1")
	require.Error(t, err)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRoot_ReadFailure(t *testing.T) {
	_, err := execute(t, brokenReader{})
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
}

func TestRoot_Version(t *testing.T) {
	out, err := execute(t, nil, "--version")
	require.NoError(t, err)
	assert.Equal(t, "spark dev\n", out)
}

func TestRoot_ConfigDefaults(t *testing.T) {
	writeUserConfig(t, `
[defaults]
ramp = "xyz"
strategy = "table"
min = 0.0
max = 10.0
`)

	out, err := execute(t, nil, "0", "5", "10", "20")
	require.NoError(t, err)
	assert.Equal(t, "xyzz\n", out)

	// Flags win over the config file.
	out, err = execute(t, nil, "--ramp", "ab", "--min", "0", "--max", "20", "0", "5", "10", "20")
	require.NoError(t, err)
	assert.Equal(t, "aabb\n", out)
}

func TestRoot_ConfigHalfRange(t *testing.T) {
	writeUserConfig(t, "[defaults]\nmin = 1.0\n")

	_, err := execute(t, nil, "1", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both min and max")
}

func TestRoot_ConfigBadStrategy(t *testing.T) {
	writeUserConfig(t, "[defaults]\nstrategy = \"btree\"\n")

	_, err := execute(t, nil, "1", "2")
	require.ErrorIs(t, err, indexer.ErrUnknownStrategy)
}

func TestRoot_ExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spark.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nwidth = 2\n"), 0o644))

	out, err := execute(t, nil, "--config", path, "1", "2", "3", "9", "10")
	require.NoError(t, err)
	assert.Equal(t, "▁█\n", out)

	_, err = execute(t, nil, "--config", filepath.Join(t.TempDir(), "typo.toml"), "1", "2")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoot_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "spark.log")

	_, err := execute(t, nil, "--log", logPath, "1", "oops", "3")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"skipped non-numeric input"`)
	assert.Contains(t, string(data), `"msg":"rendering"`)
	assert.Contains(t, string(data), `"strategy":"algorithmic"`)
}

func TestGenDocs(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, nil, "gen-docs", "--dir", dir, "--format", "markdown")
	require.NoError(t, err)
	md, err := os.ReadFile(filepath.Join(dir, "spark.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "--strategy")
	assert.NotContains(t, string(md), "Auto generated")

	manDir := filepath.Join(t.TempDir(), "man")
	_, err = execute(t, nil, "gen-docs", "--dir", manDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(manDir, "spark.1"))

	pdfDir := filepath.Join(t.TempDir(), "pdf")
	_, err = execute(t, nil, "gen-docs", "--dir", pdfDir, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of: man, markdown")
	assert.NoDirExists(t, pdfDir)
}

func TestSymbolCells(t *testing.T) {
	assert.Equal(t, 1, symbolCells(sparkline.DefaultRamp()))
	assert.Equal(t, 2, symbolCells(sparkline.ParseRamp("a🌕")))
}

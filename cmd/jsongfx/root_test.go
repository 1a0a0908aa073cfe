package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kjarosh/jsongfx/sceneio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScene = `{
	"palette": {"red": "#FF0000"},
	"screen": {"width": 10, "height": 10, "background": "#000000"},
	"figures": [{"type": "point", "x": 5, "y": 5, "color": "red"}]
}`

const sceneWithLegacyField = `{
	"palette": {},
	"screen": {"width": 10, "height": 10, "background": "#000000", "fg": "#ffffff"},
	"figures": []
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stderr bytes.Buffer
	code := execute(args, &stderr)
	return code, stderr.String()
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", validScene)
	output := filepath.Join(dir, "scene.png")

	code, stderr := runCLI(t, input, "-o", output)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stderr)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}

func TestMissingInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "nope.json")
	code, stderr := runCLI(t, input, "-o", "out.png")
	assert.Equal(t, exitError, code)
	assert.Equal(t, fmt.Sprintf("File '%s' not found\n", input), stderr)
}

func TestInvalidInput(t *testing.T) {
	dir := t.TempDir()
	for _, doc := range []string{
		`{"palette": {}`,
		`{"palette": {}, "screen": {"width": 10, "height": 10, "background": "nope"}, "figures": []}`,
		`{"palette": {}, "screen": {"width": 10, "height": 10, "background": "#000000"}, "figures": [{"type": "point", "x": 1, "y": 1}]}`,
	} {
		input := writeFile(t, dir, "scene.json", doc)
		code, stderr := runCLI(t, input, "-o", filepath.Join(dir, "out.png"))
		assert.Equal(t, exitError, code, doc)
		assert.True(t, strings.HasPrefix(stderr, "Invalid file format: "), stderr)
		assert.Equal(t, 1, strings.Count(stderr, "\n"), stderr)
		assert.NoFileExists(t, filepath.Join(dir, "out.png"))
	}
}

func TestInvalidOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", validScene)
	for _, output := range []string{
		filepath.Join(dir, "out.txt"),
		filepath.Join(dir, "out"),
		filepath.Join(dir, "missing", "out.png"),
	} {
		code, stderr := runCLI(t, input, "-o", output)
		assert.Equal(t, exitError, code, output)
		assert.True(t, strings.HasPrefix(stderr, "Invalid output file name: "), stderr)
		assert.NoFileExists(t, output)
	}
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", validScene)
	for _, args := range [][]string{
		{},
		{input, input},
		{input, "--no-such-flag"},
		{input, "--strict", "--warn-unknown"},
	} {
		code, stderr := runCLI(t, args...)
		assert.Equal(t, exitUsage, code, "%v", args)
		assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
	}
}

func TestErrorModeFlags(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", sceneWithLegacyField)
	output := filepath.Join(dir, "out.png")

	code, stderr := runCLI(t, input, "-o", output)
	assert.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stderr)

	code, stderr = runCLI(t, input, "-o", output, "--warn-unknown")
	assert.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "ignoring unknown field")
	assert.Contains(t, stderr, "fg")

	code, stderr = runCLI(t, input, "-o", output, "--strict")
	assert.Equal(t, exitError, code)
	assert.Equal(t, "Invalid file format: screen: unknown field \"fg\"\n", stderr)
}

func TestEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", sceneWithLegacyField)
	output := filepath.Join(dir, "out.bmp")
	t.Setenv("JSONGFX_OUTPUT", output)

	code, stderr := runCLI(t, input)
	require.Equal(t, exitOK, code, stderr)
	assert.FileExists(t, output)

	t.Setenv("JSONGFX_STRICT", "true")
	code, _ = runCLI(t, input)
	assert.Equal(t, exitError, code)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", validScene)
	output := filepath.Join(dir, "out.pdf")
	cfg := writeFile(t, dir, "jsongfx.yaml", fmt.Sprintf("output: %q\nlog-level: error\n", output))

	code, stderr := runCLI(t, input, "--config", cfg)
	require.Equal(t, exitOK, code, stderr)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	// flags take precedence over the file
	flagOutput := filepath.Join(dir, "flag.png")
	code, stderr = runCLI(t, input, "--config", cfg, "-o", flagOutput)
	require.Equal(t, exitOK, code, stderr)
	assert.FileExists(t, flagOutput)
}

func TestBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", validScene)
	code, stderr := runCLI(t, input, "-o", filepath.Join(dir, "out.png"), "--log-level", "loud")
	assert.Equal(t, exitError, code)
	assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
}

func TestMissingConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", validScene)
	cfg := filepath.Join(dir, "nocfg.yaml")

	code, stderr := runCLI(t, input, "-o", filepath.Join(dir, "out.png"), "--config", cfg)
	assert.Equal(t, exitError, code)
	assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
	assert.Contains(t, stderr, "nocfg.yaml")
	assert.NotContains(t, stderr, "scene.json")
	assert.NoFileExists(t, filepath.Join(dir, "out.png"))
}

func TestDescribe(t *testing.T) {
	notFound := &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}

	outErr := &sceneio.OutputError{Path: "a.png", Err: fs.ErrNotExist}
	assert.Equal(t, "Invalid output file name: a.png: file does not exist", describe(outErr))
	assert.Equal(t, "File 'in.json' not found", describe(&inputError{path: "in.json", err: notFound}))
	// a missing file other than the scene keeps its own message
	assert.Equal(t, "Error: open x: file does not exist", describe(notFound))
	assert.Equal(t, "Error: boom", describe(errors.New("boom")))
}

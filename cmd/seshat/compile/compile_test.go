package compile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarebyte/seshat-compendium/internal/manifestfile"
	"github.com/flarebyte/seshat-compendium/internal/testutil"
)

func fixtureTree(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	testutil.WriteTree(t, src, map[string]string{
		"a.ts":          "export const a = 1;",
		"nested/b.tsx":  "<div>hello</div>\n\nworld",
		"notes.md":      "# Notes",
		"empty-dir/":    "",
		"nested/c.json": "{}",
	})
	return src
}

func execute(t *testing.T, manifest bool, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCmd()
	if manifest {
		cmd = NewManifestCmd()
	}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompile_PositionalSourceAndOut(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "deep", "combined.txt")

	_, stderr, err := execute(t, false, src, out)
	require.NoError(t, err)

	text := testutil.MustRead(t, out)
	assert.True(t, strings.HasPrefix(text, "=== TS/TSX Content Compilation ==="))
	assert.Contains(t, text, "Total files found: 2\n")
	assert.Contains(t, text, "=== File: a.ts ===\n\nexport const a = 1;")
	assert.Contains(t, text, "=== File: nested/b.tsx ===\n\nhello world")
	assert.NotContains(t, text, "notes.md")
	assert.NotContains(t, text, "c.json")
	assert.Contains(t, stderr, "Successfully combined 2 TS/TSX files")
}

func TestCompile_FlagsAndManifestSidecar(t *testing.T) {
	src := fixtureTree(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	sidecar := filepath.Join(dir, "meta", "manifest.yaml")

	_, _, err := execute(t, false, "--source", src, "--out", out, "--manifest", sidecar, "--workers", "2", "-q")
	require.NoError(t, err)

	m, err := manifestfile.Read(sidecar)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalFiles)
	assert.Equal(t, []string{"a.ts", "nested/b.tsx"}, m.RelativePaths)
}

func TestCompile_Stdout(t *testing.T) {
	src := fixtureTree(t)
	stdout, _, err := execute(t, false, "-q", src, "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "=== TS/TSX Content Compilation ==="))
	assert.True(t, strings.HasSuffix(stdout, "hello world\n"))
}

func TestCompile_EnvironmentOverridesDefaults(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("SESHAT_SUFFIX", ".md")
	t.Setenv("SESHAT_NORMALIZE", "none")

	_, _, err := execute(t, false, "-q", src, out)
	require.NoError(t, err)
	text := testutil.MustRead(t, out)
	assert.Contains(t, text, "=== File: notes.md ===\n\n# Notes")
	assert.NotContains(t, text, "a.ts")
}

func TestCompile_FlagBeatsEnvironment(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("SESHAT_SUFFIX", ".md")

	_, _, err := execute(t, false, "-q", "--suffix", ".json", src, out)
	require.NoError(t, err)
	assert.Contains(t, testutil.MustRead(t, out), "=== File: nested/c.json ===")
}

func TestCompile_CUEConfig(t *testing.T) {
	src := fixtureTree(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "from-config.txt")
	cfgPath := filepath.Join(dir, "seshat.cue")
	cfg := "configVersion: \"1\"\n" +
		"source: root: " + quote(src) + "\n" +
		"output: out: " + quote(out) + "\n" +
		"discovery: suffixes: [\".ts\"]\n" +
		"normalize: mode: \"none\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, err := execute(t, false, "-q", "--config", cfgPath)
	require.NoError(t, err)
	text := testutil.MustRead(t, out)
	assert.Contains(t, text, "Total files found: 1\n")
	assert.Contains(t, text, "=== File: a.ts ===")
}

func TestCompile_LuaFilter(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	_, _, err := execute(t, false, "-q", "--filter", "ext == '.tsx'", src, out)
	require.NoError(t, err)
	text := testutil.MustRead(t, out)
	assert.Contains(t, text, "Total files found: 1\n")
	assert.Contains(t, text, "- nested/b.tsx")
}

func TestCompile_ExitCodes(t *testing.T) {
	emptyTree := t.TempDir()
	testutil.WriteTree(t, emptyTree, map[string]string{"readme.md": "x"})
	missing := filepath.Join(t.TempDir(), "missing")

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"empty result", []string{"-q", emptyTree}, exitCodeEmpty},
		{"not found", []string{"-q", missing}, exitCodeNotFound},
		{"bad normalize", []string{"--normalize", "html", emptyTree}, exitCodeUsage},
		{"negative workers", []string{"--workers", "-1", emptyTree}, exitCodeUsage},
		{"bad lua", []string{"--filter", "name ==", emptyTree}, exitCodeUsage},
		{"missing config", []string{"--config", filepath.Join(emptyTree, "nope.cue")}, exitCodeUsage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.txt")
			_, _, err := execute(t, false, append(tc.args, "--out", out)...)
			assertExitCode(t, err, tc.code)
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no artifact expected")
		})
	}
}

func TestManifestCommand_PrintsYAML(t *testing.T) {
	src := fixtureTree(t)
	stdout, _, err := execute(t, true, "-q", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "totalFiles: 2\n")
	assert.Contains(t, stdout, "- a.ts\n")
	assert.Contains(t, stdout, "- nested/b.tsx\n")
	assert.Contains(t, stdout, "sourceRoot: "+src)
}

func TestManifestCommand_EmptyTree(t *testing.T) {
	_, _, err := execute(t, true, "-q", t.TempDir())
	assertExitCode(t, err, exitCodeEmpty)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}

func TestManifestCommand_IgnoresNormalizeSettings(t *testing.T) {
	src := fixtureTree(t)
	t.Setenv("SESHAT_NORMALIZE", "bogus")
	stdout, _, err := execute(t, true, "-q", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "totalFiles: 2\n")

	cfgPath := filepath.Join(t.TempDir(), "seshat.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte("configVersion: \"1\"\nnormalize: mode: \"bogus\"\n"), 0o644))
	_, _, err = execute(t, true, "-q", "--config", cfgPath, src)
	require.NoError(t, err)
}

func TestCompile_RejectsUnknownNormalizeMode(t *testing.T) {
	src := fixtureTree(t)
	out := filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("SESHAT_NORMALIZE", "bogus")
	_, _, err := execute(t, false, "-q", src, out)
	assertExitCode(t, err, exitCodeUsage)

	t.Setenv("SESHAT_NORMALIZE", "")
	cfgPath := filepath.Join(t.TempDir(), "seshat.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte("configVersion: \"1\"\nnormalize: mode: \"html\"\n"), 0o644))
	_, _, err = execute(t, false, "-q", "--config", cfgPath, src, out)
	assertExitCode(t, err, exitCodeUsage)
	assert.Contains(t, err.Error(), `invalid normalize mode: "html"`)
}

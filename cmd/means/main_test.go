package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/means"
)

// runCLI runs the command with --no-color and captures its output.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--no-color"}, args...)
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunExpr(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-e", "x = 1 + 2; y = x * 4;")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "12\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "prog.means", "r = 2.5;\narea = r * r * 3;\n")
	code, stdout, _ := runCLI(t, "", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "18.75\n", stdout)
}

func TestRunStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, "x = 7 % 4;")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "3\n", stdout)

	code, stdout, _ = runCLI(t, "x = -1;", "-")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "-1\n", stdout)
}

func TestRunEmptyProgramPrintsNothing(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-e", " ")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
}

func TestParseErrors(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-e", "x = ;\ny = * 2;")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "<expr>:1:5: "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "<expr>:2:5: "), lines[1])
}

func TestCompileError(t *testing.T) {
	code, _, stderr := runCLI(t, "", "-e", "x = y;")
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "<expr>:1:5: undefined variable \"y\"\n", stderr)
}

func TestRuntimeFault(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "--stack-size", "1", "-e", "a = 1; b = 2;")
	assert.Equal(t, exitFault, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "stack overflow at 0002 (Constant)")
}

func TestDiagnosticsAreWarnings(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-e", "x = 4 @;")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "4\n", stdout)
	assert.Equal(t, "<expr>:1:7: warning: skipped \"@\"\n", stderr)
}

func TestDumpAST(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-d", "-e", "x = 1 + 2 * 3;")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "x = (+ 1 (* 2 3));\n", stderr)
}

func TestDisassemble(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "-a", "-e", "x = 1; y = -x;")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "=== Code ===")
	assert.Contains(t, stderr, "0002: Local [0]")
	assert.Contains(t, stderr, "0004: Negate")
}

func TestOptimize(t *testing.T) {
	code, _, stderr := runCLI(t, "", "-O", "-a", "-e", "x = 2 * 3 + 1;")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "[0] = 7")
	assert.NotContains(t, stderr, "Mul")
}

func TestTrace(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "--trace", "-e", "x = 5;")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "5\n", stdout)
	assert.Equal(t, "0000 Constant 0\tsp=0\n", stderr)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "means.yaml", "stack_size: 1\n")

	code, _, _ := runCLI(t, "", "--config", path, "-e", "a = 1; b = 2;")
	assert.Equal(t, exitFault, code)

	// Command-line flags override the file.
	code, stdout, _ := runCLI(t, "", "--config", path, "--stack-size", "4", "-e", "a = 1; b = 2;")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "2\n", stdout)
}

func TestBadConfigFile(t *testing.T) {
	path := writeFile(t, "means.yaml", "stack_size: [1\n")
	code, _, stderr := runCLI(t, "", "--config", path, "-e", "x = 1;")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "failed to load config")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"file and expr", []string{"-e", "x = 1;", "prog.means"}},
		{"missing file", []string{filepath.Join(os.TempDir(), "means-does-not-exist.means")}},
		{"missing config", []string{"-c", filepath.Join(os.TempDir(), "means-does-not-exist.yaml"), "-e", "x = 1;"}},
		{"negative stack size", []string{"--stack-size=-1", "-e", "x = 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.True(t, strings.HasPrefix(stderr, "means: "), stderr)
		})
	}
}

func TestMissingConfigIsUsageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	code, stdout, stderr := runCLI(t, "", "-c", path, "-e", "x = 1;")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "failed to load config")
	assert.Contains(t, stderr, "absent.yaml")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version+"\n", stdout)
	assert.Equal(t, means.Version, version)
}

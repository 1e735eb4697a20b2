package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "", "") })

	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)
}

func TestLayoutCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "layout", "100", "60", "24", "--levels", "3,1,1")
	require.NoError(t, err)

	lower := strings.ToLower(out)
	assert.Contains(t, lower, "27 panels")
	assert.Contains(t, out, "box/separator-1")
	assert.Contains(t, out, "level0/drawer2/front")
	assert.Contains(t, out, "level2/drawer0/side-left")
	assert.Contains(t, out, "7.200", "level height")
	assert.NotContains(t, lower, "triangles")
}

func TestLayoutCommandStyles(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "layout", "40", "30", "10", "--style", "full")
	require.NoError(t, err)
	assert.Contains(t, out, "level0/drawer0/bottom")

	out, _, err = run(t, "", "layout", "40", "30", "10", "--style", "tray")
	require.NoError(t, err)
	assert.NotContains(t, out, "level0/drawer0/front")
	assert.Contains(t, out, "level0/drawer0/side-right")
}

func TestLayoutCommandErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad dimension", []string{"layout", "abc", "60", "24"}, "invalid dimension"},
		{"infinite dimension", []string{"layout", "100", "inf", "24"}, "not finite"},
		{"NaN dimension", []string{"layout", "NaN", "60", "24"}, "not finite"},
		{"unknown style", []string{"layout", "100", "60", "24", "--style", "open"}, "unknown drawer style"},
		{"missing args", []string{"layout", "100", "60"}, "accepts 3 arg(s)"},
		{"unknown kernel", []string{"layout", "100", "60", "24", "--kernel", "cgal"}, "unknown kernel"},
		{"bad params", []string{"layout", "100", "60", "24", "--finger-width", "0.4"}, "margin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLayoutCommandArrangementError(t *testing.T) {
	t.Chdir(t.TempDir())

	_, stderr, err := run(t, "", "layout", "100", "60", "2", "--levels", "1,1,1,1")
	require.Error(t, err)
	assert.Contains(t, stderr, "arrangement")
}

func TestLayoutCommandMesh(t *testing.T) {
	if testing.Short() {
		t.Skip("meshing is slow")
	}
	t.Chdir(t.TempDir())

	// Cells must stay well below the 0.6 panel thickness.
	out, stderr, err := run(t, "", "layout", "12", "10", "6", "--style", "tray", "--mesh", "--mesh-cells", "48")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "triangles")
	assert.Contains(t, stderr, "meshed 7 panels")
}

func TestEvalCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "d.lisp")
	require.NoError(t, os.WriteFile(path, []byte(`(assembly "d" (drawer :width 20 :depth 30 :height 7 :style :full))`), 0o644))

	out, _, err := run(t, "", "eval", path)
	require.NoError(t, err)
	assert.Contains(t, out, "d/drawer1/bottom")
	assert.Contains(t, strings.ToLower(out), "5 panels")
}

func TestEvalCommandStdin(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, `(assembly "t" (drawer :width 20 :depth 30 :height 7 :style :tray))`, "eval", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "t/drawer1/side-left")
	assert.Contains(t, strings.ToLower(out), "2 panels")
}

func TestEvalCommandErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "", "eval", filepath.Join(t.TempDir(), "missing.lisp"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read script")

	_, stderr, err := run(t, "(+ 1", "eval", "-")
	require.Error(t, err)
	assert.NotEmpty(t, stderr)
}

func TestParamsCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "air_gap: 0.125\n")
	t.Setenv("DRAWERBOX_PULL_HEIGHT", "1.75")

	out, _, err := run(t, "", "params", "--finger-width", "1.2")
	require.NoError(t, err)

	assert.Contains(t, out, "finger_width")
	assert.Contains(t, out, "1.2")
	assert.Contains(t, out, "0.125")
	assert.Contains(t, out, "1.75")
	assert.Contains(t, out, "drawerbox.yaml")
	assert.Contains(t, out, "1.7776", "saw chord")
}

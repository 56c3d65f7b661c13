package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chordwheel/pkg/config"
	"github.com/matzehuels/chordwheel/pkg/graph"
)

const moodCSV = `text,value,node
hope,4,0
calm,1,1
dread,-3,2
rage,-5,2
`

// setupCLI isolates config and cache lookups in a temp dir and returns it
// as the working directory.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(config.EnvPath, "")
	t.Chdir(dir)
	if err := os.WriteFile("mood.csv", []byte(moodCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	setupCLI(t)

	if _, err := run(t, "render", "mood.csv", "-f", "svg,json", "--title", "Mood"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile("mood.svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("Mood")) {
		t.Error("svg missing title")
	}
	if _, err := os.Stat("mood.scene.json"); err != nil {
		t.Errorf("scene json not written: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join("cache", appName))
	if err != nil || len(entries) == 0 {
		t.Errorf("file cache not populated: %v", err)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	setupCLI(t)

	if _, err := run(t, "layout", "mood.csv", "--style", "handdrawn", "--no-cache"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile("mood.layout.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Arcs) != 3 || l.Style != "handdrawn" {
		t.Errorf("layout arcs=%d style=%q", len(l.Arcs), l.Style)
	}

	if _, err := run(t, "visualize", "mood.layout.json", "--no-cache"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if _, err := os.Stat("mood.svg"); err != nil {
		t.Errorf("svg not written: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "mood.csv", "-f", "gif"}},
		{"bad style", []string{"render", "mood.csv", "--style", "neon", "--no-cache"}},
		{"missing file", []string{"render", "nope.csv"}},
		{"bad extension", []string{"render", "mood.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfigFlagAppliesDefaults(t *testing.T) {
	setupCLI(t)
	if err := os.WriteFile("custom.toml", []byte("[render]\nstyle = \"simple\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--config", "custom.toml", "layout", "mood.csv", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	l, err := graph.ReadLayoutFile("mood.layout.json")
	if err != nil {
		t.Fatal(err)
	}
	if l.Style != "simple" {
		t.Errorf("Style = %q, want simple from config", l.Style)
	}

	if _, err := run(t, "--config", "missing.toml", "layout", "mood.csv"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestConvertCommand(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "convert", "mood.csv", "--to", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "text: hope") {
		t.Errorf("yaml output missing words:\n%s", out)
	}

	if _, err := run(t, "convert", "mood.csv", "mood.toml"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "layout", "mood.toml", "-o", "from-toml.json", "--no-cache"); err != nil {
		t.Fatalf("layout from converted file: %v", err)
	}
}

func TestInspectCommandPlain(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "inspect", "mood.csv", "--plain", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"hope", "rage", "Flow"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q", want)
		}
	}
}

func TestConfigCommands(t *testing.T) {
	dir := setupCLI(t)

	out, err := run(t, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[render]") || !strings.Contains(out, `style = "gradient"`) {
		t.Errorf("config show:\n%s", out)
	}

	if _, err := run(t, "config", "init"); err != nil {
		t.Fatal(err)
	}
	userPath := filepath.Join(dir, "config", appName, "config.toml")
	if _, err := os.Stat(userPath); err != nil {
		t.Fatalf("config init did not write %s: %v", userPath, err)
	}

	out, err = run(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != userPath {
		t.Errorf("config path = %q, want %q", out, userPath)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := setupCLI(t)

	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	if _, err := run(t, "render", "mood.csv"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "cache", appName))
	if len(entries) != 0 {
		t.Errorf("cache not cleared: %d entries left", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	setupCLI(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}

	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const profileManifest = `
name = "profile"

[[binding]]
member = "user"
source = "name"
target = "title"
`

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.toml", profileManifest)
	bad := writeFile(t, dir, "bad.yaml", "bindings:\n  - source: a\n  - target: b\n")

	out, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.Contains(out, `good.toml: ok ("profile", 1 bindings)`) {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "validate", "-q", good, bad)
	if !errors.Is(err, errInvalidManifests) {
		t.Fatalf("err = %v, want errInvalidManifests", err)
	}
	if !strings.Contains(out, "bad.yaml: FAIL") {
		t.Errorf("output = %q", out)
	}
	if got := strings.Count(out, "binding "); got != 2 {
		t.Errorf("reported %d entry errors, want 2:\n%s", got, out)
	}
}

func TestValidate_NeedsArgs(t *testing.T) {
	if _, err := run(t, "validate"); err == nil {
		t.Error("validate without arguments succeeded")
	}
}

func TestWatch_Once(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "profile.toml", profileManifest)
	model := writeFile(t, dir, "model.json", `{"user":{"name":"Ada"}}`)

	out, err := run(t, "watch", "--once", "--model", model, path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	want := "{\n  \"title\": \"Ada\"\n}\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestWatch_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "profile.toml", profileManifest+"type = \"sideways\"\n")

	if _, err := run(t, "watch", "--once", path); err == nil {
		t.Error("watch with an invalid manifest succeeded")
	}
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	want := []string{
		"field: Ada",
		`document: {"customer":{"name":"Ada Lovelace","city":"Zürich"}}`,
		"cities: [Aarhus Ávila Bergen Écija Zürich]",
		"listed: 5 of 6",
	}
	if got := strings.Split(strings.TrimSpace(out), "\n"); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("output:\n%s\nwant:\n%s", out, strings.Join(want, "\n"))
	}
}

func TestDemo_BadFilter(t *testing.T) {
	if _, err := run(t, "demo", "--filter", "city +"); err == nil {
		t.Error("demo with a malformed filter succeeded")
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bindkit.toml", "[manifest]\nstrict = true\n")

	out, err := run(t, "--config", path, "config")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "strict = true") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "--log-level", "loud", "config"); err == nil {
		t.Error("unknown log level accepted")
	}
	if _, err := run(t, "--config", filepath.Join(dir, "missing.toml"), "config"); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/dshills/bindkit/internal/logging"
	"github.com/dshills/bindkit/internal/manifest"
	"github.com/dshills/bindkit/internal/script"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bindkit.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if time.Duration(c.Manifest.Debounce) != manifest.DefaultDebounce {
		t.Errorf("debounce = %v", c.Manifest.Debounce)
	}
	if time.Duration(c.Script.Timeout) != script.DefaultTimeout {
		t.Errorf("timeout = %v", c.Script.Timeout)
	}
	if c.Language() != language.English {
		t.Errorf("language = %v", c.Language())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[manifest]
strict = true
debounce = "250ms"

[collation]
language = "sv"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Path != path || c.Log.Level != "debug" || !c.Manifest.Strict {
		t.Errorf("config = %+v", c)
	}
	if time.Duration(c.Manifest.Debounce) != 250*time.Millisecond {
		t.Errorf("debounce = %v", time.Duration(c.Manifest.Debounce))
	}
	if time.Duration(c.Script.Timeout) != script.DefaultTimeout {
		t.Error("unset timeout should keep its default")
	}
	if c.Language() != language.Swedish {
		t.Errorf("language = %v", c.Language())
	}
}

func TestLoad_Missing(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	c, err := Load(DefaultFile)
	if err != nil || c.Path != "" {
		t.Errorf("Load(default) = %+v, %v", c, err)
	}
	if _, err := Load(filepath.Join(dir, "other.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
		parse   bool
	}{
		{"syntax", "[log\nlevel = 1", nil, true},
		{"unknown key", "[log]\ncolour = \"red\"\n", nil, true},
		{"bad duration", "[script]\ntimeout = \"soon\"\n", nil, true},
		{"bad level", "[log]\nlevel = \"loud\"\n", ErrInvalidValue, false},
		{"negative debounce", "[manifest]\ndebounce = \"-1s\"\n", ErrInvalidValue, false},
		{"bad language", "[collation]\nlanguage = \"not a tag\"\n", ErrInvalidValue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
			var perr *ParseError
			if errors.As(err, &perr) != tt.parse {
				t.Errorf("error = %v (%T), parse error expected: %v", err, err, tt.parse)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BINDKIT_LOG_LEVEL":          "warn",
		"BINDKIT_MANIFEST_STRICT":    "yes",
		"BINDKIT_MANIFEST_DEBOUNCE":  "1s",
		"BINDKIT_SCRIPT_TIMEOUT":     "3s",
		"BINDKIT_COLLATION_LANGUAGE": "de",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c := Default()
	if err := c.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if c.Log.Level != "warn" || !c.Manifest.Strict || c.Collation.Language != "de" {
		t.Errorf("config = %+v", c)
	}
	if time.Duration(c.Manifest.Debounce) != time.Second || time.Duration(c.Script.Timeout) != 3*time.Second {
		t.Errorf("durations = %v, %v", c.Manifest.Debounce, c.Script.Timeout)
	}

	env = map[string]string{"BINDKIT_MANIFEST_STRICT": "maybe", "BINDKIT_SCRIPT_TIMEOUT": "x"}
	err := Default().ApplyEnv(lookup)
	var serr *SettingError
	if !errors.As(err, &serr) || serr.Source != "BINDKIT_MANIFEST_STRICT" || !errors.Is(err, ErrInvalidValue) {
		t.Errorf("ApplyEnv() = %v", err)
	}
	if !strings.Contains(err.Error(), "script.timeout") {
		t.Errorf("expected both problems, got %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"debug\"\n")
	t.Setenv("BINDKIT_LOG_LEVEL", "error")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Log.Level != "error" {
		t.Errorf("level = %q, want error", c.Log.Level)
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("collation.language"); got != "BINDKIT_COLLATION_LANGUAGE" {
		t.Errorf("EnvName() = %q", got)
	}
}

func TestLogger(t *testing.T) {
	c := Default()
	c.Log.Level = "warn"
	var buf bytes.Buffer
	l := c.Logger(&buf)

	l.Info("hidden")
	l.Warn("shown")
	if l.Level() != logging.LevelWarn || strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, buf.String())
	c, err := Load(path)
	if err != nil {
		t.Fatalf("round trip failed: %v\n%s", err, buf.String())
	}
	if c.Script.Timeout != Default().Script.Timeout {
		t.Errorf("timeout = %v", c.Script.Timeout)
	}
}

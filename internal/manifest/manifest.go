package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/bindkit/internal/binding"
)

// Format is a manifest encoding.
type Format int

// Supported formats.
const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatOf selects a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Manifest is a named list of descriptors.
type Manifest struct {
	Name        string               `toml:"name" yaml:"name"`
	Descriptors []binding.Descriptor `toml:"binding" yaml:"bindings"`

	// Path is the file the manifest was loaded from, or "<input>".
	Path string `toml:"-" yaml:"-"`
}

// Option configures parsing.
type Option func(*options)

type options struct {
	strict bool
	path   string
}

// WithStrict rejects unknown keys and duplicate descriptors.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithPath sets the name reported in errors for Parse.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// Load reads and validates the manifest at path.
func Load(path string, opts ...Option) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, format, append([]Option{WithPath(path)}, opts...)...)
}

// Parse decodes and validates a manifest.
func Parse(data []byte, format Format, opts ...Option) (*Manifest, error) {
	o := options{path: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manifest{}
	var err error
	switch format {
	case FormatTOML:
		err = decodeTOML(data, m, o)
	case FormatYAML:
		err = decodeYAML(data, m, o)
	case FormatJSON:
		err = decodeJSON(data, m, o)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
	if err != nil {
		return nil, err
	}

	m.Path = o.path
	if err := m.Validate(o.strict); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks every descriptor. In strict mode repeated descriptors are
// rejected too. All problems are reported.
func (m *Manifest) Validate(strict bool) error {
	var errs []error
	for i, d := range m.Descriptors {
		if err := d.Validate(); err != nil {
			errs = append(errs, &EntryError{Path: m.Path, Index: i, Err: err})
			continue
		}
		if strict && slices.Contains(m.Descriptors[:i], d) {
			errs = append(errs, &EntryError{Path: m.Path, Index: i, Err: fmt.Errorf("%w: %s", ErrDuplicate, d)})
		}
	}
	return errors.Join(errs...)
}

// Bind binds the manifest between host and target. See
// binding.Engine.BindManifest.
func (m *Manifest) Bind(e *binding.Engine, host, target any) ([]*binding.Binding, error) {
	return e.BindManifest(host, target, m.Descriptors)
}

func decodeTOML(data []byte, m *Manifest, o options) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	if o.strict {
		dec.DisallowUnknownFields()
	}
	err := dec.Decode(m)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: o.path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		perr.Line, perr.Column = serr.Errors[0].Position()
		perr.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
	}
	return perr
}

func decodeYAML(data []byte, m *Manifest, o options) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(o.strict)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: o.path, Message: err.Error(), Err: err}
	}
	return nil
}

var jsonKeys = []string{"member", "source", "target", "type"}

func decodeJSON(data []byte, m *Manifest, o options) error {
	if !gjson.ValidBytes(data) {
		return &ParseError{Path: o.path, Message: "malformed json", Err: ErrInvalid}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return &ParseError{Path: o.path, Message: "manifest must be an object", Err: ErrInvalid}
	}
	if o.strict {
		if err := knownKeys(root, "name", "bindings"); err != nil {
			return &ParseError{Path: o.path, Message: err.Error(), Err: ErrInvalid}
		}
	}

	m.Name = root.Get("name").String()
	for i, entry := range root.Get("bindings").Array() {
		if o.strict {
			if err := knownKeys(entry, jsonKeys...); err != nil {
				return &ParseError{Path: o.path, Message: fmt.Sprintf("binding %d: %v", i, err), Err: ErrInvalid}
			}
		}
		t, err := binding.ParseType(entry.Get("type").String())
		if err != nil {
			return &EntryError{Path: o.path, Index: i, Err: err}
		}
		m.Descriptors = append(m.Descriptors, binding.Descriptor{
			Member: entry.Get("member").String(),
			Source: entry.Get("source").String(),
			Target: entry.Get("target").String(),
			Type:   t,
		})
	}
	return nil
}

func knownKeys(obj gjson.Result, keys ...string) error {
	var err error
	obj.ForEach(func(key, _ gjson.Result) bool {
		if !slices.Contains(keys, key.String()) {
			err = fmt.Errorf("unknown key %q", key.String())
			return false
		}
		return true
	})
	return err
}

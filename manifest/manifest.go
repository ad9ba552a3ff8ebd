package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/rickchristie/wphook"
	"gopkg.in/yaml.v3"
)

// ErrUnknownCallback is returned by Apply when an entry names a callback the
// catalog does not provide for its hook type.
var ErrUnknownCallback = errors.New("unknown callback")

// Manifest is a decoded hook manifest.
type Manifest struct {
	Hooks []Registration `yaml:"hooks"`
}

// Registration is a single manifest entry.
type Registration struct {
	Type     wphook.HookType `yaml:"type"`
	Hook     string          `yaml:"hook"`
	Callback string          `yaml:"callback"`

	// Tag is nil when the entry has no tag, so the registry assigns one.
	Tag *string `yaml:"tag,omitempty"`

	// Args are handed to the callback factory.
	Args []any `yaml:"args,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse validates and decodes a YAML manifest.
// Returns a *ValidationError when the document does not match the schema.
func Parse(data []byte) (*Manifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// Apply registers every entry of m on r using callbacks from c, in document
// order.
//
// All entries are resolved first. If any callback is unknown or its factory
// rejects the args, Apply returns the error and registers nothing.
func (m *Manifest) Apply(r *wphook.Registry, c *Catalog) error {
	type resolved struct {
		reg Registration
		fn  wphook.Func
	}

	out := make([]resolved, 0, len(m.Hooks))
	for i, reg := range m.Hooks {
		fn, err := c.build(reg.Type, reg.Callback, reg.Args)
		if err != nil {
			return fmt.Errorf("hooks[%d] (%s %q): %w", i, reg.Type, reg.Hook, err)
		}
		out = append(out, resolved{reg: reg, fn: fn})
	}

	for _, res := range out {
		if res.reg.Tag != nil {
			r.AddHook(res.reg.Type, res.reg.Hook, res.fn, *res.reg.Tag)
		} else {
			r.AddHook(res.reg.Type, res.reg.Hook, res.fn)
		}
	}
	return nil
}

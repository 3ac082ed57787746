package preset

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/linetrace/pkg/errors"
)

//go:embed presets/*.toml
var builtinFS embed.FS

// Library is an ordered set of presets. Builtins come first in file order;
// user presets follow, replacing builtins that share their name.
type Library struct {
	presets map[string]*Preset
	names   []string
}

// Builtins returns the presets embedded in the binary.
func Builtins() (*Library, error) {
	lib := &Library{presets: make(map[string]*Preset)}

	entries, err := fs.ReadDir(builtinFS, "presets")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := builtinFS.ReadFile("presets/" + e.Name())
		if err != nil {
			return nil, err
		}
		p, err := Parse(data)
		if err != nil {
			return nil, err
		}
		lib.add(p)
	}
	return lib, nil
}

// LoadLibrary returns the builtin presets overlaid with user presets from
// [UserDir]. A missing user directory is not an error; an unparseable user
// preset is.
func LoadLibrary() (*Library, error) {
	lib, err := Builtins()
	if err != nil {
		return nil, err
	}
	dir, err := UserDir()
	if err != nil {
		return lib, nil
	}
	if err := lib.loadDir(dir); err != nil {
		return nil, err
	}
	return lib, nil
}

// UserDir returns the directory scanned for user presets.
func UserDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "linetrace", "presets"), nil
}

// Get returns the preset with the given name.
func (l *Library) Get(name string) (*Preset, error) {
	if p, ok := l.presets[name]; ok {
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q (have: %s)", name, strings.Join(l.Names(), ", "))
}

// Names lists the preset names in library order.
func (l *Library) Names() []string {
	return append([]string(nil), l.names...)
}

// All lists the presets in library order.
func (l *Library) All() []*Preset {
	out := make([]*Preset, len(l.names))
	for i, name := range l.names {
		out[i] = l.presets[name]
	}
	return out
}

// loadDir merges every *.toml file in dir into the library. A missing
// directory is not an error.
func (l *Library) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		p, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		l.add(p)
	}
	return nil
}

func (l *Library) add(p *Preset) {
	if _, ok := l.presets[p.Name]; !ok {
		l.names = append(l.names, p.Name)
	}
	l.presets[p.Name] = p
}

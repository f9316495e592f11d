package config

import (
	_ "embed"
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/paths"
)

//go:embed defaults.toml
var defaultSettings []byte

// Settings holds app-level behavior knobs, distinct from the declarative
// model: built-in defaults overlaid by an optional user settings file.
type Settings struct {
	Store  StoreSettings  `koanf:"store" toml:"store"`
	Apply  ApplySettings  `koanf:"apply" toml:"apply"`
	Output OutputSettings `koanf:"output" toml:"output"`
}

// StoreSettings configures the repository store.
type StoreSettings struct {
	Path string `koanf:"path" toml:"path"`
}

// ApplySettings configures default apply behavior.
type ApplySettings struct {
	Prune            bool `koanf:"prune" toml:"prune"`
	CleanupEmptyDirs bool `koanf:"cleanup_empty_dirs" toml:"cleanup_empty_dirs"`
}

// OutputSettings configures terminal output.
type OutputSettings struct {
	Color string `koanf:"color" toml:"color"`
}

// rawBytesProvider lets koanf load embedded config bytes
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}

// LoadSettings loads the built-in defaults, overlaid by the user settings
// file when one exists at the standard location.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(paths.SettingsFilePath())
}

// LoadSettingsFrom loads settings with an explicit overlay path, mainly for
// tests.
func LoadSettingsFrom(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", path)
			}
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}
	return &s, nil
}

package config

import (
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/gro/pkg/errors"
)

// GenerateSettingsTOML renders the effective settings as a TOML document,
// suitable for seeding a user settings file.
func GenerateSettingsTOML(s *Settings) ([]byte, error) {
	out, err := gotoml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render settings")
	}
	return out, nil
}

// DefaultSettingsTOML renders the built-in defaults as TOML.
func DefaultSettingsTOML() ([]byte, error) {
	s, err := LoadSettingsFrom("")
	if err != nil {
		return nil, err
	}
	return GenerateSettingsTOML(s)
}

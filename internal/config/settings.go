package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SourceSettings selects where the analysis payload comes from.
type SourceSettings struct {
	Mode      string `yaml:"mode"`       // "local" or "web"
	LocalPath string `yaml:"local_path"` // path to analysis_results.json
	URL       string `yaml:"url"`        // payload endpoint for web mode
	User      string `yaml:"user"`       // HTTP Basic Auth username
	Password  string `yaml:"password"`   // optional; keyring is consulted when empty
}

// ServerSettings controls the dashboard HTTP listener.
type ServerSettings struct {
	Port string `yaml:"port"`
}

// UISettings holds presentation defaults applied when no query override is present.
type UISettings struct {
	Language string `yaml:"language"` // ISO 639-1, must be a supported language
	Theme    string `yaml:"theme"`    // "dark" or "light"
	OrgName  string `yaml:"org_name"` // overrides the payload org name when set
}

// Settings is the file-backed application configuration.
type Settings struct {
	Source     SourceSettings `yaml:"source"`
	Server     ServerSettings `yaml:"server"`
	UI         UISettings     `yaml:"ui"`
	RefreshMin int            `yaml:"refresh_interval_min"`
}

// DefaultSettings returns the configuration used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Source: SourceSettings{
			Mode:      SourceModeLocal,
			LocalPath: DefaultPayloadPath,
		},
		Server:     ServerSettings{Port: DefaultPort},
		UI:         UISettings{Language: DefaultLanguage, Theme: DefaultTheme},
		RefreshMin: DefaultRefreshMin,
	}
}

// LoadSettings reads and validates the YAML settings file.
// Missing fields fall back to defaults; an empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return s, errors.New(ErrSettingsRead + ": " + err.Error())
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, errors.New(ErrSettingsParse + ": " + err.Error())
	}

	s.applyFallbacks()
	return s, s.validate()
}

func (s *Settings) applyFallbacks() {
	if s.Source.Mode == "" {
		s.Source.Mode = SourceModeLocal
	}
	if s.Source.Mode == SourceModeLocal && s.Source.LocalPath == "" {
		s.Source.LocalPath = DefaultPayloadPath
	}
	if s.Server.Port == "" {
		s.Server.Port = DefaultPort
	}
	if s.UI.Language == "" {
		s.UI.Language = DefaultLanguage
	}
	if s.UI.Theme != ThemeDark && s.UI.Theme != ThemeLight {
		s.UI.Theme = DefaultTheme
	}
	if s.RefreshMin < 0 {
		s.RefreshMin = DefaultRefreshMin
	}
}

func (s *Settings) validate() error {
	if s.Source.Mode != SourceModeLocal && s.Source.Mode != SourceModeWeb {
		return errors.New(ErrModeUnsupport)
	}
	if err := ValidatePort(s.Server.Port); err != nil {
		return err
	}
	return nil
}

// ValidatePort checks that the string is a port number within the valid range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}

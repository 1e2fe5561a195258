// Package i18n loads the embedded locale bundle and exposes a per-request
// translator for the dashboard labels.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-eventboard/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds the loaded message bundle and the languages detected from the
// embedded locale files. It is immutable after Load and safe for concurrent
// use by request handlers.
type Catalog struct {
	bundle    *goi18n.Bundle
	Languages []string
}

// Load parses every embedded locale file into a bundle. Files that fail to
// load are logged and skipped so one bad locale never takes down the app.
func Load() *Catalog {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return &Catalog{bundle: bundle}
	}

	var detected []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		path := "locales/" + name
		if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return &Catalog{bundle: bundle, Languages: detected}
}

// Supported reports whether a language code has a loaded locale.
func (c *Catalog) Supported(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Translator resolves a localizer for the requested language, falling back to
// the default when the language is unknown.
func (c *Catalog) Translator(lang string) *Translator {
	if !c.Supported(lang) {
		lang = config.DefaultLanguage
	}
	return &Translator{
		Lang:      lang,
		localizer: goi18n.NewLocalizer(c.bundle, lang),
	}
}

// Translator localizes message keys for one language.
type Translator struct {
	Lang      string
	localizer *goi18n.Localizer
}

// GetMsg translates a key safely: a missing translation returns the key
// itself so the page always renders something.
func (t *Translator) GetMsg(key string) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

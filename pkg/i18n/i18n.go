// Package i18n translates user-facing strings. Tables are compiled in; any
// language without a table, and any key missing from a table, falls back to
// the default (Spanish) table.
package i18n

import (
	"golang.org/x/text/language"
)

// Default is the language used when nothing better matches.
var Default = language.Spanish

var tables = map[language.Tag]map[string]string{
	language.Spanish: es,
	language.English: en,
}

// matcher lists Default first so it wins on no confidence.
var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

// Translator looks up strings for one language.
// Immutable
type Translator struct {
	tag   language.Tag
	table map[string]string
}

// New returns a Translator for the best match of lang (e.g. "en", "en-US", "es_CR").
func New(lang string) *Translator {
	tag := Match(lang)
	return &Translator{tag: tag, table: tables[tag]}
}

// Match resolves lang onto a supported language, falling back to Default.
func Match(lang string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return []language.Tag{language.Spanish, language.English}[idx]
}

// Lang returns the language of the translator.
func (t *Translator) Lang() language.Tag {
	return t.tag
}

// T returns the translation of key, or key itself when no table has it.
func (t *Translator) T(key string) string {
	if s, ok := t.table[key]; ok {
		return s
	}
	if s, ok := tables[Default][key]; ok {
		return s
	}
	return key
}

// Package i18n renders query errors as localized, tagged strings.
//
// The rendered form is "#<message>" followed by ":<context>" when the
// error carries context, e.g. "#Syntax error:?{}". The leading '#' lets
// callers that only see strings tell errors from results.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leonfyr/jisho/internal/ir"
)

//go:embed locales/*.yaml
var locales embed.FS

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Languages lists the supported catalog languages.
var Languages = []string{"en", "ja", "zh"}

// Catalog holds the messages of one language.
type Catalog struct {
	Lang     string
	messages map[string]string
}

// New loads the catalog for lang. An empty lang selects DefaultLanguage.
// Unknown languages are a KindUnsupportedLanguage error.
func New(lang string) (*Catalog, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	lang = strings.ToLower(lang)
	if !slices.Contains(Languages, lang) {
		return nil, ir.NewError(ir.KindUnsupportedLanguage, lang)
	}

	data, err := locales.ReadFile("locales/" + lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", lang, err)
	}
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", lang, err)
	}
	return &Catalog{Lang: lang, messages: messages}, nil
}

// Message returns the localized message for kind, falling back to the
// kind itself.
func (c *Catalog) Message(kind ir.ErrorKind) string {
	if m, ok := c.messages[string(kind)]; ok {
		return m
	}
	return string(kind)
}

// Format renders err. Errors that are not query errors render as the
// internal message with the error text as context.
func (c *Catalog) Format(err error) string {
	var qe *ir.QueryError
	if !errors.As(err, &qe) {
		return "#" + c.messages["internal"] + ":" + err.Error()
	}
	s := "#" + c.Message(qe.Kind)
	if qe.Context != "" {
		s += ":" + qe.Context
	}
	return s
}

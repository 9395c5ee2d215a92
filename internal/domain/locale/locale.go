// Package locale carries the request language and text direction and looks
// up static console labels.
package locale

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Direction is the text direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Locale is a supported console language.
type Locale struct {
	Tag       language.Tag `json:"-"`
	Code      string       `json:"code"`
	Direction Direction    `json:"dir"`
}

var (
	English = Locale{Tag: language.English, Code: "en", Direction: LTR}
	Arabic  = Locale{Tag: language.Arabic, Code: "ar", Direction: RTL}
)

// Supported lists the locales in matcher preference order.
var Supported = []Locale{English, Arabic}

var matcher = language.NewMatcher([]language.Tag{English.Tag, Arabic.Tag})

// Lookup returns the supported locale for code.
func Lookup(code string) (Locale, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range Supported {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// Negotiate picks a supported locale from an explicit code or an
// Accept-Language header, falling back when neither matches.
func Negotiate(accept string, fallback Locale) Locale {
	if accept == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		if tag, perr := language.Parse(accept); perr == nil {
			tags = []language.Tag{tag}
		} else {
			return fallback
		}
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Supported[idx]
}

type ctxKey struct{}

// WithLocale stores l on ctx.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the locale stored on ctx, or English.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(ctxKey{}).(Locale); ok {
		return l
	}
	return English
}

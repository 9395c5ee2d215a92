// Package portal holds the careers portal configuration and its editor.
package portal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrUnknownSetting = errors.New("unknown portal setting")
	ErrInvalidValue   = errors.New("invalid portal setting value")
)

// Section names.
const (
	SectionBranding = "branding"
	SectionContent  = "content"
	SectionLayout   = "layout"
	SectionSocial   = "social"
)

// Layout templates.
const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateMinimal = "minimal"
)

const (
	minJobsPerPage = 1
	maxJobsPerPage = 100
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Branding struct {
	CompanyName    string `json:"companyName"`
	LogoURL        string `json:"logoUrl"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
}

type Content struct {
	Headline   string `json:"headline"`
	Tagline    string `json:"tagline"`
	AboutUs    string `json:"aboutUs"` // markdown
	Benefits   string `json:"benefits"`
	ContactURL string `json:"contactUrl"`
}

type Layout struct {
	Template         string `json:"template"`
	JobsPerPage      int    `json:"jobsPerPage"`
	ShowSalary       bool   `json:"showSalary"`
	ShowDepartment   bool   `json:"showDepartment"`
	EnableSearch     bool   `json:"enableSearch"`
	EnableQuickApply bool   `json:"enableQuickApply"`
}

type Social struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// Settings is the whole portal configuration.
type Settings struct {
	Branding Branding `json:"branding"`
	Content  Content  `json:"content"`
	Layout   Layout   `json:"layout"`
	Social   Social   `json:"social"`
}

// Defaults returns the settings a fresh console starts with.
func Defaults() Settings {
	return Settings{
		Branding: Branding{
			CompanyName:    "Talent Desk",
			PrimaryColor:   "#1f6feb",
			SecondaryColor: "#0f172a",
			FontFamily:     "Inter",
		},
		Content: Content{
			Headline: "Join our team",
			Tagline:  "Build what comes next with us.",
			AboutUs:  "We are a **small, focused** team shipping products people rely on.",
			Benefits: "Remote friendly, learning budget, health cover",
		},
		Layout: Layout{
			Template:       TemplateModern,
			JobsPerPage:    10,
			ShowDepartment: true,
			EnableSearch:   true,
		},
	}
}

// Apply returns a copy of s with section.key set to value. Strings, bools
// and numbers are accepted in their JSON forms.
func (s Settings) Apply(section, key string, value any) (Settings, error) {
	out := s
	var err error
	switch section {
	case SectionBranding:
		err = applyBranding(&out.Branding, key, value)
	case SectionContent:
		err = applyContent(&out.Content, key, value)
	case SectionLayout:
		err = applyLayout(&out.Layout, key, value)
	case SectionSocial:
		err = applySocial(&out.Social, key, value)
	default:
		return s, fmt.Errorf("%w: section %q", ErrUnknownSetting, section)
	}
	if err != nil {
		return s, err
	}
	return out, nil
}

func applyBranding(b *Branding, key string, value any) error {
	switch key {
	case "companyName":
		return setString(&b.CompanyName, key, value)
	case "logoUrl":
		return setString(&b.LogoURL, key, value)
	case "primaryColor":
		return setColor(&b.PrimaryColor, key, value)
	case "secondaryColor":
		return setColor(&b.SecondaryColor, key, value)
	case "fontFamily":
		return setString(&b.FontFamily, key, value)
	}
	return unknown(SectionBranding, key)
}

func applyContent(c *Content, key string, value any) error {
	switch key {
	case "headline":
		return setString(&c.Headline, key, value)
	case "tagline":
		return setString(&c.Tagline, key, value)
	case "aboutUs":
		return setString(&c.AboutUs, key, value)
	case "benefits":
		return setString(&c.Benefits, key, value)
	case "contactUrl":
		return setString(&c.ContactURL, key, value)
	}
	return unknown(SectionContent, key)
}

func applyLayout(l *Layout, key string, value any) error {
	switch key {
	case "template":
		var v string
		if err := setString(&v, key, value); err != nil {
			return err
		}
		switch v {
		case TemplateClassic, TemplateModern, TemplateMinimal:
			l.Template = v
			return nil
		}
		return fmt.Errorf("%w: template %q", ErrInvalidValue, v)
	case "jobsPerPage":
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		if n < minJobsPerPage || n > maxJobsPerPage {
			return fmt.Errorf("%w: jobsPerPage %d outside [%d,%d]", ErrInvalidValue, n, minJobsPerPage, maxJobsPerPage)
		}
		l.JobsPerPage = n
		return nil
	case "showSalary":
		return setBool(&l.ShowSalary, key, value)
	case "showDepartment":
		return setBool(&l.ShowDepartment, key, value)
	case "enableSearch":
		return setBool(&l.EnableSearch, key, value)
	case "enableQuickApply":
		return setBool(&l.EnableQuickApply, key, value)
	}
	return unknown(SectionLayout, key)
}

func applySocial(s *Social, key string, value any) error {
	switch key {
	case "linkedin":
		return setString(&s.LinkedIn, key, value)
	case "twitter":
		return setString(&s.Twitter, key, value)
	case "facebook":
		return setString(&s.Facebook, key, value)
	case "instagram":
		return setString(&s.Instagram, key, value)
	}
	return unknown(SectionSocial, key)
}

func unknown(section, key string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownSetting, section, key)
}

func setString(dst *string, key string, value any) error {
	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s wants a string, got %T", ErrInvalidValue, key, value)
	}
	*dst = strings.TrimSpace(v)
	return nil
}

func setColor(dst *string, key string, value any) error {
	var v string
	if err := setString(&v, key, value); err != nil {
		return err
	}
	if !colorPattern.MatchString(v) {
		return fmt.Errorf("%w: %s %q is not #rrggbb", ErrInvalidValue, key, v)
	}
	*dst = strings.ToLower(v)
	return nil
}

func setBool(dst *bool, key string, value any) error {
	switch v := value.(type) {
	case bool:
		*dst = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		*dst = b
	default:
		return fmt.Errorf("%w: %s wants a bool, got %T", ErrInvalidValue, key, value)
	}
	return nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, fmt.Errorf("unsupported type %T", value)
}

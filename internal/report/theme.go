package report

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vidcheck/vidcheck/internal/factcheck"
)

// DefaultTheme is used when no theme is configured or the name is unknown.
const DefaultTheme = "pink"

//go:embed themes.yaml
var themesYAML []byte

type StatusStyle struct {
	Text       string `yaml:"text"`
	Border     string `yaml:"border"`
	Background string `yaml:"background"`
	Icon       string `yaml:"icon"`
	Label      string `yaml:"label"`
}

// Classes joins the border and background classes for a transcript line.
func (s StatusStyle) Classes() string {
	return s.Border + " " + s.Background
}

type Theme struct {
	Name       string `yaml:"name"`
	Page       string `yaml:"page"`
	Panel      string `yaml:"panel"`
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	Body       string `yaml:"body"`
	Button     string `yaml:"button"`
	Tab        string `yaml:"tab"`
	ActiveTab  string `yaml:"active_tab"`

	Statuses struct {
		Verified   StatusStyle `yaml:"verified"`
		False      StatusStyle `yaml:"false"`
		Unverified StatusStyle `yaml:"unverified"`
	} `yaml:"statuses"`
}

// For returns the classes used to draw a claim with the given status.
func (t Theme) For(status factcheck.Status) StatusStyle {
	switch status {
	case factcheck.Verified:
		return t.Statuses.Verified
	case factcheck.False:
		return t.Statuses.False
	default:
		return t.Statuses.Unverified
	}
}

// TabClass picks the tab or active tab classes.
func (t Theme) TabClass(active bool) string {
	if active {
		return t.ActiveTab
	}
	return t.Tab
}

type themeFile struct {
	Themes []Theme `yaml:"themes"`
}

// ParseThemes decodes a themes document. Every theme needs a unique name.
func ParseThemes(data []byte) (map[string]Theme, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse themes: %w", err)
	}
	themes := make(map[string]Theme, len(f.Themes))
	for _, t := range f.Themes {
		if t.Name == "" {
			return nil, fmt.Errorf("parse themes: theme without a name")
		}
		if _, dup := themes[t.Name]; dup {
			return nil, fmt.Errorf("parse themes: duplicate theme %q", t.Name)
		}
		themes[t.Name] = t
	}
	return themes, nil
}

// LoadThemes returns the themes bundled into the binary.
func LoadThemes() (map[string]Theme, error) {
	return ParseThemes(themesYAML)
}

// ThemeByName looks up a bundled theme, falling back to DefaultTheme. The
// boolean reports whether name itself was found.
func ThemeByName(name string) (Theme, bool, error) {
	themes, err := LoadThemes()
	if err != nil {
		return Theme{}, false, err
	}
	if t, ok := themes[name]; ok {
		return t, true, nil
	}
	t, ok := themes[DefaultTheme]
	if !ok {
		return Theme{}, false, fmt.Errorf("default theme %q missing", DefaultTheme)
	}
	return t, false, nil
}

// ThemeNames lists the bundled theme names in order.
func ThemeNames() []string {
	themes, err := LoadThemes()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

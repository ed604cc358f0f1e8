package report

import (
	"testing"

	"github.com/vidcheck/vidcheck/internal/factcheck"
)

func TestLoadThemes(t *testing.T) {
	themes, err := LoadThemes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"pink", "slate"} {
		theme, ok := themes[name]
		if !ok {
			t.Fatalf("theme %q missing", name)
		}
		if theme.Panel == "" || theme.Heading == "" || theme.Button == "" {
			t.Errorf("theme %q has empty classes: %+v", name, theme)
		}
		for _, s := range []factcheck.Status{factcheck.Verified, factcheck.False, factcheck.Unverified} {
			style := theme.For(s)
			if style.Text == "" || style.Border == "" || style.Icon == "" || style.Label == "" {
				t.Errorf("theme %q status %s has empty style: %+v", name, s, style)
			}
		}
	}
}

func TestTheme_ForDistinguishesStatuses(t *testing.T) {
	theme, _, err := ThemeByName("pink")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verified := theme.For(factcheck.Verified)
	falseStyle := theme.For(factcheck.False)
	unverified := theme.For(factcheck.Unverified)

	if verified.Icon != "✓" || falseStyle.Icon != "✗" {
		t.Errorf("icons = %q / %q", verified.Icon, falseStyle.Icon)
	}
	if verified.Text == falseStyle.Text || falseStyle.Text == unverified.Text {
		t.Error("expected distinct text classes per status")
	}
	if got := verified.Classes(); got != "border-green bg-green" {
		t.Errorf("classes = %q, want %q", got, "border-green bg-green")
	}
}

func TestThemeByName_FallsBack(t *testing.T) {
	theme, found, err := ThemeByName("neon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected unknown theme not to be found")
	}
	if theme.Name != DefaultTheme {
		t.Errorf("theme = %q, want %q", theme.Name, DefaultTheme)
	}
}

func TestParseThemes_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "themes: [unclosed"},
		{"missing name", "themes:\n  - panel: p\n"},
		{"duplicate", "themes:\n  - name: a\n  - name: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseThemes([]byte(tt.data)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 || names[0] != "pink" || names[1] != "slate" {
		t.Errorf("names = %v, want [pink slate]", names)
	}
}

package animation

import (
	"testing"

	"chronomap/pkg/model"
)

func TestStaticColorRules(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Abduction Site", staticColors.red},
		{"Subject A Last Seen", staticColors.red},
		{"Route 45 Cell Tower", staticColors.yellow},
		{"Remains Found Here", staticColors.darkRed},
		{"Crossgate ATM", staticColors.green},
		{"Mile Marker 3", staticColors.yellow},
		{"Creek Bridge", staticColors.blue},
		{"", staticColors.blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StaticColor(tt.name); got != tt.want {
				t.Errorf("StaticColor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestEventColorCoversAllCategories(t *testing.T) {
	cats := []model.Category{
		model.CategoryTimeline,
		model.CategoryNarrative,
		model.CategoryPhoneA,
		model.CategoryPhoneB,
		model.CategoryEvidence,
		model.CategoryUnknown,
	}

	seen := map[string]model.Category{}
	for _, cat := range cats {
		c := EventColor(cat)
		if c == "" {
			t.Fatalf("no color for category %q", cat)
		}
		if prev, dup := seen[c]; dup {
			t.Fatalf("categories %q and %q share color %q", prev, cat, c)
		}
		seen[c] = cat
	}
}

func TestEventColorUnknownFallback(t *testing.T) {
	if got := EventColor(model.Category("bogus")); got != eventColors[model.CategoryUnknown] {
		t.Errorf("unmapped category = %q, want unknown fallback", got)
	}
}

// The static palette is keyed by names, the animated palette by category
// tags. They are defined independently; a shared hex value would be a sign
// one was derived from the other.
func TestPalettesAreIndependent(t *testing.T) {
	if staticColors.blue == eventColors[model.CategoryTimeline] {
		t.Error("static default and timeline category must not share a palette entry")
	}
}

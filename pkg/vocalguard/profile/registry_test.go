package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	for _, lang := range SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			prof, err := reg.Route(lang)
			if err != nil {
				t.Fatalf("Route(%q) failed: %v", lang, err)
			}
			if prof.Name != lang {
				t.Errorf("profile name = %q, want %q", prof.Name, lang)
			}
			if prof.ModelVariant == "" {
				t.Error("profile has no model variant")
			}
		})
	}

	if got := len(reg.Languages()); got != len(SupportedLanguages) {
		t.Errorf("Languages() returned %d entries, want %d", got, len(SupportedLanguages))
	}
}

func TestRouteCaseInsensitive(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	for _, lang := range []string{"Tamil", "ENGLISH", "hInDi", " malayalam ", "TELUGU"} {
		if _, err := reg.Route(lang); err != nil {
			t.Errorf("Route(%q) failed: %v", lang, err)
		}
	}
}

func TestRouteUnsupportedLanguage(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	for _, lang := range []string{"french", "ta", "", "tamil-IN"} {
		_, err := reg.Route(lang)
		if got := fault.KindOf(err); got != fault.UnsupportedLanguage {
			t.Errorf("Route(%q) error kind = %s, want %s", lang, got, fault.UnsupportedLanguage)
		}
	}
}

func TestRouteDeterministic(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	first, _ := reg.Route("tamil")
	second, _ := reg.Route("tamil")
	if first != second {
		t.Error("Route returned different profile instances for the same language")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "not yaml",
			yaml: "{{{",
			want: "parsing profile config",
		},
		{
			name: "no languages",
			yaml: "languages: {}",
			want: "no languages",
		},
		{
			name: "missing required language",
			yaml: `
languages:
  tamil:
    model_variant: v1
    detector_weights: {spectral_artifact: 0.28, prosody_naturalness: 0.50, timbre_embedding: 0.22}
    calibration: {slope: 11, midpoint: 0.5, threshold_ai: 0.7, threshold_human: 0.35}
    normalization:
      pitch_mean: {mean: 170, std: 40}
`,
			want: "missing required language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("round trips the default table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		if err := os.WriteFile(path, defaultProfiles, 0o644); err != nil {
			t.Fatalf("writing temp profiles: %v", err)
		}
		reg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if _, err := reg.Route("telugu"); err != nil {
			t.Errorf("Route after LoadFile failed: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestProfileValidate(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	prof, _ := reg.Route("english")

	t.Run("weights sum to one", func(t *testing.T) {
		var sum float64
		for _, w := range prof.DetectorWeights {
			sum += w
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("detector weights sum = %f, want 1.0", sum)
		}
	})

	t.Run("thresholds ordered", func(t *testing.T) {
		c := prof.Calibration
		if !(0 < c.ThresholdHuman && c.ThresholdHuman < c.ThresholdAI && c.ThresholdAI < 1) {
			t.Errorf("thresholds out of order: human=%f ai=%f", c.ThresholdHuman, c.ThresholdAI)
		}
	})

	t.Run("normalization stds positive", func(t *testing.T) {
		for name, stat := range prof.Normalization {
			if stat.Std <= 0 {
				t.Errorf("feature %q has non-positive std %f", name, stat.Std)
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	prof, _ := reg.Route("english")

	stat := prof.Normalization["pitch_mean"]
	z, err := prof.Normalize("pitch_mean", stat.Mean+stat.Std)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if z < 0.999 || z > 1.001 {
		t.Errorf("z-score one std above mean = %f, want 1.0", z)
	}

	if _, err := prof.Normalize("no_such_feature", 1.0); err == nil {
		t.Error("expected error for unknown feature")
	}
}

package profile

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/karthikeya-ram/vocalguard/pkg/vocalguard/fault"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// SupportedLanguages is the language set every profile table must cover.
// Additional languages in a config file are accepted and routable.
var SupportedLanguages = []string{"tamil", "english", "hindi", "malayalam", "telugu"}

// Registry is the read-only language → profile table built once at startup.
type Registry struct {
	profiles map[string]*LanguageProfile
}

type profileFile struct {
	Languages map[string]*LanguageProfile `yaml:"languages"`
}

// Parse builds and validates a registry from YAML bytes.
func Parse(data []byte) (*Registry, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing profile config: %w", err)
	}
	if len(file.Languages) == 0 {
		return nil, fmt.Errorf("profile config defines no languages")
	}

	profiles := make(map[string]*LanguageProfile, len(file.Languages))
	for name, p := range file.Languages {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := profiles[key]; dup {
			return nil, fmt.Errorf("duplicate language %q in profile config", key)
		}
		p.Name = key
		if err := p.validate(); err != nil {
			return nil, err
		}
		profiles[key] = p
	}

	for _, required := range SupportedLanguages {
		if _, ok := profiles[required]; !ok {
			return nil, fmt.Errorf("profile config is missing required language %q", required)
		}
	}

	return &Registry{profiles: profiles}, nil
}

// LoadFile reads and validates a profile table from a YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile config: %w", err)
	}
	return Parse(data)
}

// Default returns the registry built from the embedded profile table.
func Default() (*Registry, error) {
	return Parse(defaultProfiles)
}

// Route resolves a declared language to its profile. Matching is
// case-insensitive and exact; anything outside the table is refused rather
// than guessed.
func (r *Registry) Route(language string) (*LanguageProfile, error) {
	key := strings.ToLower(strings.TrimSpace(language))
	p, ok := r.profiles[key]
	if !ok {
		return nil, fault.Newf(fault.UnsupportedLanguage, "profile.Route",
			"unsupported language %q", language)
	}
	return p, nil
}

// Languages returns the routable language names.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		out = append(out, name)
	}
	return out
}

package models

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// WelcomeManifest is the YAML description of a welcome card
type WelcomeManifest struct {
	ID         string `yaml:"id"`
	Username   string `yaml:"username"`
	Avatar     string `yaml:"avatar"`
	Background string `yaml:"background"`
	Members    string `yaml:"members"`
	Icon       string `yaml:"icon"`
	Banner     string `yaml:"banner"`
	Colors     struct {
		Welcome  string `yaml:"welcome"`
		Username string `yaml:"username"`
		Members  string `yaml:"members"`
	} `yaml:"colors"`

	// Runtime fields (not in manifest)
	FilePath string `yaml:"-"`
}

// LoadWelcomeManifest loads a welcome card manifest from a YAML file
func LoadWelcomeManifest(path string) (*WelcomeManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest WelcomeManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}

	manifest.FilePath = path
	if manifest.ID == "" {
		manifest.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &manifest, nil
}

// Builder converts the manifest into a welcome image builder. Colors use the
// same string forms accepted by ColorFromString.
func (m *WelcomeManifest) Builder() *WelcomeImageBuilder {
	b := NewWelcomeImageBuilder().
		WithMembersText(m.Members).
		WithIcon(m.Icon).
		WithBanner(m.Banner)

	// Missing required values are reported together by Build
	if m.Username != "" {
		b.WithUsername(m.Username)
	}
	if m.Avatar != "" {
		b.WithAvatar(m.Avatar)
	}
	if c, err := ColorFromString(m.Background); err == nil {
		b.WithBackgroundColor(c)
	}
	if c, err := ColorFromString(m.Colors.Welcome); err == nil {
		b.WithWelcomeColor(c)
	}
	if c, err := ColorFromString(m.Colors.Username); err == nil {
		b.WithUsernameColor(c)
	}
	if c, err := ColorFromString(m.Colors.Members); err == nil {
		b.WithMembersColor(c)
	}
	return b
}

// Build is shorthand for Builder().Build()
func (m *WelcomeManifest) Build() (*WelcomeImage, error) {
	img, err := m.Builder().Build()
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", m.ID, err)
	}
	return img, nil
}

// ManifestRegistry manages the collection of welcome manifests in a directory
type ManifestRegistry struct {
	manifests map[string]*WelcomeManifest
}

// NewManifestRegistry creates a new manifest registry
func NewManifestRegistry() *ManifestRegistry {
	return &ManifestRegistry{
		manifests: make(map[string]*WelcomeManifest),
	}
}

// LoadDir scans a directory for *.yaml and *.yml manifests. Files that fail
// to parse are skipped and reported in the returned slice.
func (r *ManifestRegistry) LoadDir(dir string) ([]error, error) {
	// Clear existing manifests
	r.manifests = make(map[string]*WelcomeManifest)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest directory: %w", err)
	}

	var skipped []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		manifest, err := LoadWelcomeManifest(filepath.Join(dir, entry.Name()))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", entry.Name(), err))
			continue
		}
		r.manifests[manifest.ID] = manifest
	}

	return skipped, nil
}

// Get returns a manifest by ID
func (r *ManifestRegistry) Get(id string) (*WelcomeManifest, bool) {
	m, exists := r.manifests[id]
	return m, exists
}

// IDs returns the sorted IDs of all loaded manifests
func (r *ManifestRegistry) IDs() []string {
	ids := make([]string, 0, len(r.manifests))
	for id := range r.manifests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

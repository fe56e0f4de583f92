package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package sources holds the data source configs (YAML/JSON) and their fetchers.

const (
	TypeLiveFeed    = "live_feed"
	TypeAPOD        = "apod"
	TypeMediaSearch = "media_search"

	ConfigCountKey     = "count"
	ConfigQueryKey     = "query"
	ConfigMediaTypeKey = "media_type"
	ConfigLimitKey     = "limit"

	DefaultAPODCount  = 5
	MaxAPODCount      = 100
	DefaultMediaLimit = 5
)

// Source is a single data source entry declared in the sources file.
type Source struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Type      string         `json:"type" yaml:"type"`
	SourceURL string         `json:"source_url" yaml:"source_url"`
	Enabled   *bool          `json:"enabled" yaml:"enabled"`
	Config    map[string]any `json:"config" yaml:"config"`
}

// EnabledValue returns the enabled flag defaulting to true.
func (s Source) EnabledValue() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

type registryFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry holds the validated sources in file order.
type Registry struct {
	sources []Source
	byType  map[string]Source
}

// DefaultSources returns the built-in endpoints used when no sources file exists.
func DefaultSources() []Source {
	return []Source{
		{
			ID:        "hubble_live",
			Name:      "Hubble Live Feed",
			Type:      TypeLiveFeed,
			SourceURL: "https://hubblesite.org/api/v3/live",
		},
		{
			ID:        "nasa_apod",
			Name:      "Latest NASA Space Images",
			Type:      TypeAPOD,
			SourceURL: "https://api.nasa.gov/planetary/apod",
			Config:    map[string]any{ConfigCountKey: DefaultAPODCount},
		},
		{
			ID:        "webb_search",
			Name:      "Latest Images from James Webb Space Telescope",
			Type:      TypeMediaSearch,
			SourceURL: "https://images-api.nasa.gov/search",
			Config: map[string]any{
				ConfigQueryKey:     "James Webb Telescope",
				ConfigMediaTypeKey: "image",
				ConfigLimitKey:     DefaultMediaLimit,
			},
		},
	}
}

// DefaultRegistry builds a registry from DefaultSources.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultSources())
	if err != nil {
		// built-in sources are static and valid
		panic(err)
	}
	return reg
}

// NewRegistry validates the given sources and indexes them by type.
func NewRegistry(list []Source) (*Registry, error) {
	if len(list) == 0 {
		return nil, errors.New("no sources configured")
	}

	reg := &Registry{
		sources: make([]Source, len(list)),
		byType:  make(map[string]Source, len(list)),
	}
	ids := make(map[string]struct{}, len(list))
	for i := range list {
		src := sanitizeSource(list[i])
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := ids[src.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", src.ID)
		}
		if _, exists := reg.byType[src.Type]; exists {
			return nil, fmt.Errorf("duplicate source type %q", src.Type)
		}
		ids[src.ID] = struct{}{}
		reg.sources[i] = src
		reg.byType[src.Type] = src
	}
	return reg, nil
}

// LoadRegistry loads the sources registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}
	return NewRegistry(parsed.Sources)
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		reg, err := unmarshalRegistry(d.name, data, d.fn)
		if err == nil {
			return reg, nil
		}
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return registryFile{}, errors.Join(errs...)
	}
	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s sources: %w", name, err)
	}
	return reg, nil
}

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.SourceURL = strings.TrimSpace(s.SourceURL)

	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Config == nil {
		s.Config = map[string]any{}
	}
	if s.Enabled == nil {
		def := true
		s.Enabled = &def
	}
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Type == "" {
		return fmt.Errorf("type is required for source %q", s.ID)
	}
	if s.SourceURL == "" {
		return fmt.Errorf("source_url is required for source %q", s.ID)
	}

	switch s.Type {
	case TypeLiveFeed:
	case TypeAPOD:
		if n := ConfigInt(s, ConfigCountKey, DefaultAPODCount); n < 1 || n > MaxAPODCount {
			return fmt.Errorf("config.count for source %q must be between 1 and %d, got %d", s.ID, MaxAPODCount, n)
		}
	case TypeMediaSearch:
		if n := ConfigInt(s, ConfigLimitKey, DefaultMediaLimit); n < 1 {
			return fmt.Errorf("config.limit for source %q must be positive, got %d", s.ID, n)
		}
	default:
		return fmt.Errorf("unsupported type %q for source %q", s.Type, s.ID)
	}
	return nil
}

// All returns all configured sources in file order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Enabled returns the sources whose enabled flag is set, in file order.
func (r *Registry) Enabled() []Source {
	all := r.All()
	out := make([]Source, 0, len(all))
	for _, s := range all {
		if s.EnabledValue() {
			out = append(out, s)
		}
	}
	return out
}

// ByType returns the source configured for typ, if any.
func (r *Registry) ByType(typ string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	s, ok := r.byType[strings.ToLower(strings.TrimSpace(typ))]
	return s, ok
}

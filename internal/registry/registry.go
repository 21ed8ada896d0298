// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry holds the parsed topic and publisher catalogs for the
// process lifetime. Definitions are loaded once and read-only thereafter.
// Implements: prd001-ingestion (Topic Registry);
//
//	docs/ARCHITECTURE § Topic Registry.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

const (
	topicsFile     = "topics.yaml"
	publishersFile = "publishers.yaml"
)

// Registry is the process-wide topic and publisher lookup.
type Registry struct {
	topics     []types.TopicDefinition
	publishers []types.PublisherDefinition
	byKey      map[string]*types.TopicDefinition
}

// New builds a registry from already-parsed definitions. Duplicate topic
// keys are a configuration error.
func New(topics []types.TopicDefinition, publishers []types.PublisherDefinition) (*Registry, error) {
	r := &Registry{
		topics:     topics,
		publishers: publishers,
		byKey:      make(map[string]*types.TopicDefinition, len(topics)),
	}
	for i := range topics {
		key := topics[i].Key
		if key == "" {
			return nil, fmt.Errorf("topic %q has no key", topics[i].Name)
		}
		if _, exists := r.byKey[key]; exists {
			return nil, fmt.Errorf("duplicate topic key %q", key)
		}
		r.byKey[key] = &r.topics[i]
	}
	return r, nil
}

// Load reads topics.yaml and publishers.yaml from configDir.
func Load(configDir string) (*Registry, error) {
	var topicsDoc struct {
		Topics []types.TopicDefinition `yaml:"topics"`
	}
	if err := readYAML(filepath.Join(configDir, topicsFile), &topicsDoc); err != nil {
		return nil, err
	}

	var publishersDoc struct {
		Publishers []types.PublisherDefinition `yaml:"publishers"`
	}
	if err := readYAML(filepath.Join(configDir, publishersFile), &publishersDoc); err != nil {
		return nil, err
	}

	return New(topicsDoc.Topics, publishersDoc.Publishers)
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return nil
}

// Topic returns the definition for key, or nil when unknown.
func (r *Registry) Topic(key string) *types.TopicDefinition {
	return r.byKey[key]
}

// Topics returns all topic definitions in catalog order.
func (r *Registry) Topics() []types.TopicDefinition {
	return r.topics
}

// Publishers returns all publisher definitions in catalog order.
func (r *Registry) Publishers() []types.PublisherDefinition {
	return r.publishers
}

// ResolvePublishers maps the caller's publisher selection (canonical names
// or aliases, any casing) to canonical names plus the union of their DOI
// prefixes. Selections that match no catalog entry pass through unchanged so
// ad-hoc publisher names still filter.
func (r *Registry) ResolvePublishers(selected []string) (names []string, prefixes []string) {
	added := make(map[string]bool)
	prefixSet := make(map[string]bool)

	for _, s := range selected {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		def := r.findPublisher(s)
		if def == nil {
			if key := strings.ToLower(s); !added[key] {
				added[key] = true
				names = append(names, s)
			}
			continue
		}
		if key := strings.ToLower(def.Name); !added[key] {
			added[key] = true
			names = append(names, def.Name)
		}
		for _, p := range def.Prefixes {
			prefixSet[p] = true
		}
	}

	for p := range prefixSet {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return names, prefixes
}

// findPublisher matches a selection against catalog names and aliases.
func (r *Registry) findPublisher(selection string) *types.PublisherDefinition {
	for i := range r.publishers {
		pub := &r.publishers[i]
		if strings.EqualFold(pub.Name, selection) {
			return pub
		}
		for _, alias := range pub.Aliases {
			if strings.EqualFold(alias, selection) {
				return pub
			}
		}
	}
	return nil
}

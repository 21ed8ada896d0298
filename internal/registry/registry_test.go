// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

const testTopicsYAML = `topics:
  - key: silicon_photonics
    name: Silicon Photonics
    keywords:
      - silicon photonics
    synonyms:
      - SOI photonics
    negative_keywords:
      - solar cell
  - key: lidar
    name: LiDAR
    keywords:
      - lidar
`

const testPublishersYAML = `publishers:
  - name: SPIE
    aliases:
      - Society of Photo-Optical Instrumentation Engineers
    prefixes:
      - "10.1117"
  - name: Optica Publishing Group
    aliases:
      - OSA
      - Optica
    prefixes:
      - "10.1364"
`

func writeCatalogs(t *testing.T, topics, publishers string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics.yaml"), []byte(topics), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "publishers.yaml"), []byte(publishers), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeCatalogs(t, testTopicsYAML, testPublishersYAML)

	reg, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, reg.Topics(), 2)
	assert.Len(t, reg.Publishers(), 2)

	topic := reg.Topic("silicon_photonics")
	require.NotNil(t, topic)
	assert.Equal(t, "Silicon Photonics", topic.Name)
	assert.Equal(t, []string{"solar cell"}, topic.NegativeKeywords)

	assert.Nil(t, reg.Topic("unknown"))
}

func TestLoadMissingCatalog(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := writeCatalogs(t, "topics: [broken", testPublishersYAML)
	_, err := Load(dir)
	require.Error(t, err)
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	_, err := New([]types.TopicDefinition{
		{Key: "lidar", Name: "One"},
		{Key: "lidar", Name: "Two"},
	}, nil)
	require.Error(t, err)
}

func TestNewRejectsEmptyKey(t *testing.T) {
	_, err := New([]types.TopicDefinition{{Name: "Anonymous"}}, nil)
	require.Error(t, err)
}

func TestResolvePublishers(t *testing.T) {
	reg, err := New(nil, []types.PublisherDefinition{
		{Name: "SPIE", Aliases: []string{"Society of Photo-Optical Instrumentation Engineers"}, Prefixes: []string{"10.1117"}},
		{Name: "Optica Publishing Group", Aliases: []string{"OSA", "Optica"}, Prefixes: []string{"10.1364"}},
	})
	require.NoError(t, err)

	tests := []struct {
		name         string
		selected     []string
		wantNames    []string
		wantPrefixes []string
	}{
		{
			name:         "canonical name",
			selected:     []string{"SPIE"},
			wantNames:    []string{"SPIE"},
			wantPrefixes: []string{"10.1117"},
		},
		{
			name:         "alias resolves to canonical",
			selected:     []string{"osa"},
			wantNames:    []string{"Optica Publishing Group"},
			wantPrefixes: []string{"10.1364"},
		},
		{
			name:         "alias and canonical dedupe",
			selected:     []string{"Optica", "Optica Publishing Group"},
			wantNames:    []string{"Optica Publishing Group"},
			wantPrefixes: []string{"10.1364"},
		},
		{
			name:         "unknown name passes through",
			selected:     []string{"Tiny Press"},
			wantNames:    []string{"Tiny Press"},
			wantPrefixes: nil,
		},
		{
			name:         "mixed selection unions prefixes",
			selected:     []string{"SPIE", "OSA"},
			wantNames:    []string{"SPIE", "Optica Publishing Group"},
			wantPrefixes: []string{"10.1117", "10.1364"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, prefixes := reg.ResolvePublishers(tt.selected)
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantPrefixes, prefixes)
		})
	}
}

package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/rigcam/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Level is a named scene: an ordered list of entities to build.
type Level struct {
	Name     string                    `yaml:"name"`
	Entities []prefabs.EntityBuildSpec `yaml:"entities"`
}

// Load reads a level by name ("courtyard" or "courtyard.yaml"), preferring a
// file of that name on disk.
func Load(name string) (*Level, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(clean)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, filepath.Base(clean))
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	seen := make(map[string]bool, len(lvl.Entities))
	for i, e := range lvl.Entities {
		if e.Name == "" {
			continue
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("levels: entity %d: %w: %q", i, ErrDuplicateName, e.Name)
		}
		seen[e.Name] = true
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gambo/ecs/internal/core/ecs"
)

// SpawnComponent names a component and the arguments for its factory.
type SpawnComponent struct {
	Type string `yaml:"type"`
	Args []any  `yaml:"args"`
}

// SpawnEntry describes Count identical entities.
type SpawnEntry struct {
	Note       string           `yaml:"note"`
	Count      int              `yaml:"count"`
	Components []SpawnComponent `yaml:"components"`
}

// SpawnList is a seed for a registry.
type SpawnList struct {
	entries []SpawnEntry
}

// LoadSpawnList loads spawn_list.yaml.
func LoadSpawnList(path string) (*SpawnList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	return ParseSpawnList(raw)
}

func ParseSpawnList(raw []byte) (*SpawnList, error) {
	var entries []SpawnEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	for i := range entries {
		if entries[i].Count == 0 {
			entries[i].Count = 1
		}
		if entries[i].Count < 0 {
			return nil, fmt.Errorf("spawn entry %d: negative count %d", i, entries[i].Count)
		}
	}
	return &SpawnList{entries: entries}, nil
}

// Count returns the number of entities the list spawns.
func (l *SpawnList) Count() int {
	n := 0
	for _, e := range l.entries {
		n += e.Count
	}
	return n
}

// Apply creates the listed entities on r. Component names are resolved with
// lookup. On error the entities created so far are left in place.
func (l *SpawnList) Apply(r *ecs.Registry, lookup func(string) (ecs.ComponentType, bool)) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, l.Count())
	for i, entry := range l.entries {
		types := make([]ecs.ComponentType, len(entry.Components))
		for j, c := range entry.Components {
			t, ok := lookup(c.Type)
			if !ok {
				return out, fmt.Errorf("spawn entry %d: unknown component type %q", i, c.Type)
			}
			types[j] = t
		}
		for range entry.Count {
			e := r.CreateEntity()
			out = append(out, e)
			for j, c := range entry.Components {
				if _, err := r.AddComponent(types[j], e, c.Args...); err != nil {
					return out, fmt.Errorf("spawn entry %d (%s): %w", i, entry.Note, err)
				}
			}
		}
	}
	return out, nil
}

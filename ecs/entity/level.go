package entity

import (
	"fmt"

	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/levels"
)

// BuildLevel builds every entity of lvl in order. On error the entities
// already built are destroyed.
func BuildLevel(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("build level: level is nil")
	}
	built := make([]ecs.Entity, 0, len(lvl.Entities))
	for i, spec := range lvl.Entities {
		e, err := BuildEntity(w, spec, lvl.Name)
		if err != nil {
			for _, b := range built {
				ecs.DestroyEntity(w, b)
			}
			return nil, fmt.Errorf("build level %s: entity %d: %w", lvl.Name, i, err)
		}
		built = append(built, e)
	}
	return built, nil
}

// FindByName returns the live entity called name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.EntityNameComponent.Kind(), func(e ecs.Entity, n *component.EntityName) {
		if !found.Valid() && n.Name == name {
			found = e
		}
	})
	return found, found.Valid()
}

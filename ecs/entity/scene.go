package entity

import (
	"fmt"

	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/config"
	"github.com/milk9111/flycam/ecs"
)

// LoadScene creates the camera and every scene prefab. It returns the
// camera entity.
func LoadScene(w *ecs.World, cfg *config.Config, cursor camera.CursorControl) (ecs.Entity, error) {
	cam, err := NewCamera(w, cfg, cursor)
	if err != nil {
		return 0, err
	}
	for _, name := range cfg.Scene.Prefabs {
		if _, err := BuildEntity(w, name); err != nil {
			return 0, fmt.Errorf("scene: %w", err)
		}
	}
	return cam, nil
}

package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a wireframe: model-space vertices and index pairs.
type Mesh struct {
	Name     string
	Vertices []mgl64.Vec3
	Edges    [][2]int
	Color    color.Color
	Width    float32
}

var MeshComponent = NewComponent[Mesh]()

package component

import (
	"image/color"

	"github.com/milk9111/brawler/ecs"
)

// RenderLayer fills an entity's collision shape with Color. Lower Index
// layers are drawn first; ties draw in entity order.
type RenderLayer struct {
	Index int
	Color color.RGBA
}

var RenderLayerComponent = ecs.NewComponent[RenderLayer]("RenderLayer")

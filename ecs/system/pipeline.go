package system

import (
	"fmt"

	"github.com/milk9111/brawler/ecs"
)

// Options configures the default system pipeline.
type Options struct {
	CellSize float64
	// Matrix defaults to DefaultCollisionMatrix.
	Matrix []ColliderRule
	Brains BrainFactory
	// Input registers the input system when set.
	Input InputSource
	// Debug starts the collision overlay enabled.
	Debug bool
}

// Pipeline holds the registered systems other code needs to reach.
type Pipeline struct {
	SpatialHash *SpatialHash
	Detection   *CollisionDetection
	AI          *AISystem
	Render      *RenderSystem
	Debug       *CollisionDebugSystem
}

type registration struct {
	priority int
	system   ecs.System
}

// RegisterDefaults registers every built-in system at its default priority.
func RegisterDefaults(w *ecs.World, opts Options) (*Pipeline, error) {
	matrix := opts.Matrix
	if matrix == nil {
		matrix = DefaultCollisionMatrix()
	}

	p := &Pipeline{
		SpatialHash: NewSpatialHash(opts.CellSize),
		AI:          NewAISystem(opts.Brains),
		Render:      NewRenderSystem(),
	}
	p.Detection = NewCollisionDetection(p.SpatialHash, matrix)
	p.Debug = NewCollisionDebugSystem(p.Detection)

	systems := []registration{
		{PriorityAI, p.AI},
		{PriorityPlayerControl, NewPlayerControlSystem()},
		{PriorityMovement, NewMovementSystem()},
		{PriorityPhysicsRegion, NewPhysicsRegionSystem()},
		{PrioritySpatialHash, p.SpatialHash},
		{PriorityCollisionDetection, p.Detection},
		{PriorityCollisionMovement, NewCollisionMovementSystem()},
		{PriorityProjectileStop, NewProjectileStopSystem()},
		{PriorityDamage, NewDamageSystem()},
		{PriorityPickupCollect, NewPickupCollectSystem()},
		{PriorityTTL, NewTTLSystem()},
		{PriorityHealth, NewHealthSystem()},
		{PriorityRender, p.Render},
		{PriorityCollisionDebug, p.Debug},
	}
	if opts.Input != nil {
		systems = append(systems, registration{PriorityInput, NewInputSystem(opts.Input)})
	}
	for _, entry := range systems {
		if err := w.AddSystem(entry.priority, entry.system); err != nil {
			return nil, fmt.Errorf("register %s: %w", entry.system.Name(), err)
		}
	}

	if !opts.Debug {
		if err := w.DisableSystem(p.Debug); err != nil {
			return nil, err
		}
	}
	return p, nil
}

package main

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

const (
	layerGround = iota
	layerItems
	layerBodies
	layerEffects
)

var (
	wallColor     = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	playerColor   = color.RGBA{R: 60, G: 140, B: 255, A: 255}
	chaserColor   = color.RGBA{R: 230, G: 70, B: 60, A: 255}
	dummyColor    = color.RGBA{R: 180, G: 140, B: 90, A: 255}
	coinColor     = color.RGBA{R: 250, G: 210, B: 40, A: 255}
	windColor     = color.RGBA{R: 40, G: 160, B: 170, A: 70}
	turretColor   = color.RGBA{R: 150, G: 60, B: 200, A: 255}
	shotColor     = color.RGBA{R: 255, G: 120, B: 220, A: 255}
	swingColor    = color.RGBA{R: 255, G: 255, B: 255, A: 120}
	shieldColor   = color.RGBA{R: 120, G: 220, B: 255, A: 180}
	wallThickness = 24.0
)

// scene holds the handles the game loop needs after the arena is built.
type scene struct {
	player ecs.Entity
	turret turret
}

type turret struct {
	entity     ecs.Entity
	at         cp.Vector
	everyMs    float64
	speed      float64
	sinceShot  float64
	shotsFired int
}

// entitySpec lists the components of one entity. Nil entries are skipped.
type entitySpec struct {
	pos       *component.Position
	vel       *component.Velocity
	shape     *component.CollisionShape
	layer     *component.RenderLayer
	health    *component.Health
	ai        *component.AI
	attack    *component.Attack
	pickup    *component.Pickup
	collector *component.Collector
	region    *component.PhysicsRegion
	input     *component.Input
	fighter   *component.Fighter
	shot      *component.Projectile
	ttl       *component.TTL
}

func spawnEntity(w *ecs.World, spec entitySpec) (ecs.Entity, error) {
	e := w.AddEntity()
	steps := []func() error{
		func() error { return addIf(w, e, component.PositionComponent, spec.pos) },
		func() error { return addIf(w, e, component.VelocityComponent, spec.vel) },
		func() error { return addIf(w, e, component.CollisionShapeComponent, spec.shape) },
		func() error { return addIf(w, e, component.RenderLayerComponent, spec.layer) },
		func() error { return addIf(w, e, component.HealthComponent, spec.health) },
		func() error { return addIf(w, e, component.AIComponent, spec.ai) },
		func() error { return addIf(w, e, component.AttackComponent, spec.attack) },
		func() error { return addIf(w, e, component.PickupComponent, spec.pickup) },
		func() error { return addIf(w, e, component.CollectorComponent, spec.collector) },
		func() error { return addIf(w, e, component.PhysicsRegionComponent, spec.region) },
		func() error { return addIf(w, e, component.InputComponent, spec.input) },
		func() error { return addIf(w, e, component.FighterComponent, spec.fighter) },
		func() error { return addIf(w, e, component.ProjectileComponent, spec.shot) },
		func() error { return addIf(w, e, component.TTLComponent, spec.ttl) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			w.RemoveEntity(e)
			return 0, err
		}
	}
	return e, nil
}

func addIf[T any](w *ecs.World, e ecs.Entity, handle ecs.ComponentHandle[T], v *T) error {
	if v == nil {
		return nil
	}
	return ecs.Add(w, e, handle.Kind(), v)
}

// buildScene fills w with a walled arena of the given size.
func buildScene(w *ecs.World, width, height float64) (*scene, error) {
	sc := &scene{}
	solidWall := component.CollisionSolid | component.CollisionWall

	walls := []struct{ x, y, w, h float64 }{
		{width / 2, wallThickness / 2, width, wallThickness},
		{width / 2, height - wallThickness/2, width, wallThickness},
		{wallThickness / 2, height / 2, wallThickness, height},
		{width - wallThickness/2, height / 2, wallThickness, height},
		{width * 0.45, height * 0.35, 40, 160},
		{width * 0.65, height * 0.7, 200, 32},
	}
	for _, wall := range walls {
		if _, err := spawnEntity(w, entitySpec{
			pos:   component.NewPosition(wall.x, wall.y),
			shape: component.NewRectangle(wall.w, wall.h, cp.Vector{}, solidWall),
			layer: &component.RenderLayer{Index: layerGround, Color: wallColor},
		}); err != nil {
			return nil, err
		}
	}

	// a triangular pillar to show off polygon shapes
	tri, err := component.NewPolygon([]cp.Vector{{X: 0, Y: -40}, {X: 40, Y: 30}, {X: -40, Y: 30}}, cp.Vector{}, solidWall)
	if err != nil {
		return nil, err
	}
	if _, err := spawnEntity(w, entitySpec{
		pos:   component.NewPosition(width*0.25, height*0.7),
		shape: tri,
		layer: &component.RenderLayer{Index: layerGround, Color: wallColor},
	}); err != nil {
		return nil, err
	}

	if _, err := spawnEntity(w, entitySpec{
		pos:    component.NewPosition(width*0.8, height*0.3),
		shape:  component.NewRectangle(220, 160, cp.Vector{}, component.CollisionRegion),
		layer:  &component.RenderLayer{Index: layerGround, Color: windColor},
		region: &component.PhysicsRegion{VelocityScale: 0.5, Push: cp.Vector{Y: -120}},
	}); err != nil {
		return nil, err
	}

	sc.player, err = spawnEntity(w, entitySpec{
		pos:       component.NewPosition(width*0.15, height*0.4),
		vel:       &component.Velocity{},
		shape:     component.NewRectangle(24, 24, cp.Vector{}, component.CollisionSolid|component.CollisionMobile|component.CollisionVulnerable|component.CollisionCollector),
		layer:     &component.RenderLayer{Index: layerBodies, Color: playerColor},
		health:    component.NewHealth(5),
		collector: &component.Collector{},
		input:     &component.Input{},
		fighter: &component.Fighter{
			Speed:        220,
			AttackDamage: 1,
			Knockback:    320,
			Reach:        26,
			AttackSize:   cp.Vector{X: 26, Y: 26},
			AttackMs:     120,
			CooldownMs:   250,
		},
	})
	if err != nil {
		return nil, err
	}

	for i, at := range []cp.Vector{{X: width * 0.6, Y: height * 0.2}, {X: width * 0.85, Y: height * 0.8}, {X: width * 0.35, Y: height * 0.85}} {
		if _, err := spawnEntity(w, entitySpec{
			pos:    component.NewPosition(at.X, at.Y),
			vel:    &component.Velocity{},
			shape:  component.NewRectangle(22, 22, cp.Vector{}, component.CollisionSolid|component.CollisionMobile|component.CollisionVulnerable),
			layer:  &component.RenderLayer{Index: layerBodies, Color: chaserColor},
			health: component.NewHealth(3),
			ai: &component.AI{
				Script:       "chaser.tengo",
				ThinkEveryMs: 100 + float64(i)*20,
				MoveSpeed:    80 + float64(i)*15,
				Target:       sc.player,
			},
		}); err != nil {
			return nil, err
		}
	}

	if _, err := spawnEntity(w, entitySpec{
		pos:    component.NewPosition(width*0.2, height*0.2),
		shape:  component.NewRectangle(30, 30, cp.Vector{}, component.CollisionSolid|component.CollisionVulnerable),
		layer:  &component.RenderLayer{Index: layerBodies, Color: dummyColor},
		health: component.NewHealth(20),
		ai:     &component.AI{Script: "idle.tengo", ThinkEveryMs: 500},
	}); err != nil {
		return nil, err
	}

	for i := range 6 {
		if _, err := spawnEntity(w, entitySpec{
			pos:    component.NewPosition(width*(0.3+0.08*float64(i)), height*0.5),
			shape:  component.NewRectangle(10, 10, cp.Vector{}, component.CollisionItem),
			layer:  &component.RenderLayer{Index: layerItems, Color: coinColor},
			pickup: &component.Pickup{Kind: "coin", Value: 10},
		}); err != nil {
			return nil, err
		}
	}

	sc.turret.at = cp.Vector{X: width - 60, Y: height / 2}
	sc.turret.everyMs = 1500
	sc.turret.speed = 260
	sc.turret.entity, err = spawnEntity(w, entitySpec{
		pos:   component.NewPosition(sc.turret.at.X, sc.turret.at.Y),
		shape: component.NewRectangle(28, 28, cp.Vector{}, component.CollisionSolid),
		layer: &component.RenderLayer{Index: layerBodies, Color: turretColor},
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// tick fires a projectile at target every everyMs of game time.
func (t *turret) tick(w *ecs.World, dt float64, target ecs.Entity) error {
	t.sinceShot += dt
	if t.sinceShot < t.everyMs {
		return nil
	}
	t.sinceShot = 0

	pos, ok := ecs.Get(w, target, component.PositionComponent.Kind())
	if !ok {
		return nil
	}
	dir := pos.Vec().Sub(t.at)
	if dir.LengthSq() == 0 {
		return nil
	}
	dir = dir.Normalize()
	from := t.at.Add(dir.Mult(24))

	_, err := spawnEntity(w, entitySpec{
		pos:    component.NewPosition(from.X, from.Y),
		vel:    &component.Velocity{Vector: dir.Mult(t.speed)},
		shape:  component.NewRectangle(8, 8, cp.Vector{}, component.CollisionProjectile|component.CollisionAttack),
		layer:  &component.RenderLayer{Index: layerEffects, Color: shotColor},
		attack: &component.Attack{Damage: 1, Knockback: 180, Owner: t.entity, HitFreezeMs: 50, InvulnerableMs: 500},
		shot:   &component.Projectile{Owner: t.entity},
		ttl:    &component.TTL{RemainingMs: 4000},
	})
	if err == nil {
		t.shotsFired++
	}
	return err
}

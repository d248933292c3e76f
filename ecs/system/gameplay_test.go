package system_test

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func add[T any](t *testing.T, w *ecs.World, e ecs.Entity, handle ecs.ComponentHandle[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, handle.Kind(), v))
}

func eventTypes(events []ecs.Event) []string {
	var out []string
	for _, evt := range events {
		out = append(out, evt.Type)
	}
	return out
}

func TestAttackLandsOncePerVictim(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewDamageSystem())

	victim := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionVulnerable))
	health := component.NewHealth(10)
	add(t, cw.World, victim, component.HealthComponent, health)

	attack := cw.spawn(t, 5, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionAttack))
	add(t, cw.World, attack, component.AttackComponent, &component.Attack{Damage: 3})

	for i := 0; i < 4; i++ {
		cw.step()
	}

	assert.Equal(t, 7.0, health.Current)
	atkShape := shapeOf(t, cw.World, attack)
	assert.True(t, atkShape.Resolved().Has(victim))
	assert.False(t, atkShape.Fresh().Has(victim), "resolved pairs never become fresh again")
	assert.Positive(t, cw.detection.Stats().ResolvedSkips)
	assert.Equal(t, []string{system.EventDamage}, eventTypes(cw.Events().Drain()))
}

func TestAttackIgnoresOwner(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewDamageSystem())

	owner := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionVulnerable))
	health := component.NewHealth(10)
	add(t, cw.World, owner, component.HealthComponent, health)

	attack := cw.spawn(t, 5, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionAttack))
	add(t, cw.World, attack, component.AttackComponent, &component.Attack{Damage: 3, Owner: owner})

	cw.step()
	assert.Equal(t, 10.0, health.Current)
}

func TestShieldBlocksAttack(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewDamageSystem())

	victim := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionVulnerable))
	health := component.NewHealth(10)
	add(t, cw.World, victim, component.HealthComponent, health)

	shieldEnt := cw.spawn(t, 8, 0, component.NewRectangle(4, 30, cp.Vector{}, component.CollisionShield))
	shield := &component.Shield{Owner: victim}
	add(t, cw.World, shieldEnt, component.ShieldComponent, shield)

	attack := cw.spawn(t, 12, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionAttack))
	add(t, cw.World, attack, component.AttackComponent, &component.Attack{Damage: 3})

	cw.step()
	cw.step()

	assert.Equal(t, 10.0, health.Current)
	assert.Equal(t, 1, shield.Blocked)
	assert.Equal(t, []string{system.EventBlocked}, eventTypes(cw.Events().Drain()))
}

func TestLethalHitRemovesVictimAndFreezes(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewDamageSystem())

	victim := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionVulnerable))
	add(t, cw.World, victim, component.HealthComponent, component.NewHealth(2))
	vel := &component.Velocity{}
	add(t, cw.World, victim, component.VelocityComponent, vel)

	attack := cw.spawn(t, 5, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionAttack))
	add(t, cw.World, attack, component.AttackComponent, &component.Attack{Damage: 5, Knockback: 100, HitFreezeMs: 50})

	cw.step()
	assert.False(t, cw.Alive(victim))
	assert.Less(t, vel.X, 0.0, "knocked away from the attack")
	assert.Equal(t, []string{system.EventDamage, system.EventDeath}, eventTypes(cw.Events().Drain()))
	assert.Zero(t, cw.Update(16, 16, 1000), "hit freeze stops the next step")
}

func TestPickupCollect(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewPickupCollectSystem())

	collectorEnt := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionCollector))
	collector := &component.Collector{}
	add(t, cw.World, collectorEnt, component.CollectorComponent, collector)

	var items []ecs.Entity
	for _, x := range []float64{5, -5, 200} {
		item := cw.spawn(t, x, 0, component.NewRectangle(8, 8, cp.Vector{}, component.CollisionItem))
		add(t, cw.World, item, component.PickupComponent, &component.Pickup{Kind: "coin", Value: 5})
		items = append(items, item)
	}

	cw.step()
	assert.Equal(t, 10, collector.Score)
	assert.Equal(t, 2, collector.Collected)
	assert.False(t, cw.Alive(items[0]))
	assert.False(t, cw.Alive(items[1]))
	assert.True(t, cw.Alive(items[2]))
}

func TestProjectileStopsAtWall(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewProjectileStopSystem())
	shot := cw.spawn(t, 0, 0, component.NewRectangle(4, 4, cp.Vector{}, component.CollisionProjectile))
	add(t, cw.World, shot, component.ProjectileComponent, &component.Projectile{})
	cw.spawn(t, 3, 0, component.NewRectangle(4, 40, cp.Vector{}, component.CollisionWall))

	cw.step()
	assert.False(t, cw.Alive(shot))
	assert.Equal(t, []string{system.EventProjectileStop}, eventTypes(cw.Events().Drain()))
}

func TestContactConsumersWatchShapes(t *testing.T) {
	for _, s := range []interface{ Watches() []ecs.ComponentID }{
		system.NewDamageSystem(),
		system.NewPickupCollectSystem(),
		system.NewProjectileStopSystem(),
	} {
		assert.Equal(t, ecs.Kinds(component.CollisionShapeComponent), s.Watches())
	}
}

func TestStandingContactIsSeenEveryFrame(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewProjectileStopSystem())
	shot := cw.spawn(t, 0, 0, component.NewRectangle(4, 4, cp.Vector{}, component.CollisionProjectile))
	cw.spawn(t, 3, 0, component.NewRectangle(4, 40, cp.Vector{}, component.CollisionWall))

	cw.step()
	cw.step()
	require.True(t, cw.Alive(shot))
	require.Equal(t, 1, shapeOf(t, cw.World, shot).Fresh().Len())

	add(t, cw.World, shot, component.ProjectileComponent, &component.Projectile{})
	cw.step()
	assert.False(t, cw.Alive(shot), "a contact that never changed still reaches the consumer")
	assert.Equal(t, []string{system.EventProjectileStop}, eventTypes(cw.Events().Drain()))
}

func TestLateArrivalIsCollected(t *testing.T) {
	cw := newCollisionWorld(t, 64, system.NewPickupCollectSystem())
	collectorEnt := cw.spawn(t, 0, 0, component.NewRectangle(20, 20, cp.Vector{}, component.CollisionCollector))
	collector := &component.Collector{}
	add(t, cw.World, collectorEnt, component.CollectorComponent, collector)

	cw.step()
	cw.step()
	require.Zero(t, collector.Collected)

	item := cw.spawn(t, 4, 0, component.NewRectangle(8, 8, cp.Vector{}, component.CollisionItem))
	add(t, cw.World, item, component.PickupComponent, &component.Pickup{Kind: "coin", Value: 2})
	cw.step()
	assert.Equal(t, 1, collector.Collected)
	assert.False(t, cw.Alive(item))
}

func TestPhysicsRegionPushesMobiles(t *testing.T) {
	w := ecs.NewWorld()
	hash := system.NewSpatialHash(64)
	require.NoError(t, w.AddSystem(system.PriorityPhysicsRegion, system.NewPhysicsRegionSystem()))
	require.NoError(t, w.AddSystem(system.PrioritySpatialHash, hash))
	require.NoError(t, w.AddSystem(system.PriorityCollisionDetection, system.NewCollisionDetection(hash, system.DefaultCollisionMatrix())))

	region := w.AddEntity()
	add(t, w, region, component.PositionComponent, component.NewPosition(0, 0))
	add(t, w, region, component.CollisionShapeComponent, component.NewRectangle(200, 200, cp.Vector{}, component.CollisionRegion))
	add(t, w, region, component.PhysicsRegionComponent, &component.PhysicsRegion{VelocityScale: 1, Push: cp.Vector{Y: 1000}})

	mobile := w.AddEntity()
	pos := component.NewPosition(0, 0)
	add(t, w, mobile, component.PositionComponent, pos)
	add(t, w, mobile, component.CollisionShapeComponent, component.NewRectangle(10, 10, cp.Vector{}, component.CollisionMobile))

	w.Update(100, 100, 100)
	assert.Equal(t, 0.0, pos.Y(), "contacts from the previous frame drive the push")
	w.Update(100, 100, 200)
	assert.InDelta(t, 100, pos.Y(), 1e-9)
}

func TestTTLExpires(t *testing.T) {
	w := ecs.NewWorld()
	require.NoError(t, w.AddSystem(system.PriorityTTL, system.NewTTLSystem()))
	e := w.AddEntity()
	add(t, w, e, component.TTLComponent, &component.TTL{RemainingMs: 40})

	for now := 16.0; now <= 48; now += 16 {
		w.Update(16, 16, now)
		w.FinishUpdate()
	}
	assert.False(t, w.Alive(e))
	assert.Equal(t, []string{system.EventExpired}, eventTypes(w.Events().Drain()))
}

func TestMovementUsesGameTime(t *testing.T) {
	w := ecs.NewWorld()
	require.NoError(t, w.AddSystem(system.PriorityMovement, system.NewMovementSystem()))
	e := w.AddEntity()
	pos := component.NewPosition(0, 0)
	add(t, w, e, component.PositionComponent, pos)
	add(t, w, e, component.VelocityComponent, &component.Velocity{Vector: cp.Vector{X: 100}})

	w.Update(500, 500, 500)
	assert.InDelta(t, 50, pos.X(), 1e-9)

	w.SetTimeScale(0.5)
	w.Update(500, 500, 1000)
	assert.InDelta(t, 75, pos.X(), 1e-9)

	w.Pause()
	w.Update(500, 500, 1500)
	assert.InDelta(t, 75, pos.X(), 1e-9)
}

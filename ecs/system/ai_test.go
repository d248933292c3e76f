package system_test

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBrain struct {
	thinks  int
	elapsed []float64
	err     error
}

func (b *countingBrain) Think(ctx *system.AIContext) error {
	b.thinks++
	b.elapsed = append(b.elapsed, ctx.Elapsed)
	return b.err
}

func TestAIThinksOnSchedule(t *testing.T) {
	brain := &countingBrain{}
	w := ecs.NewWorld()
	require.NoError(t, w.AddSystem(system.PriorityAI, system.NewAISystem(func(*component.AI) (system.Brain, error) {
		return brain, nil
	})))

	e := w.AddEntity()
	add(t, w, e, component.PositionComponent, component.NewPosition(0, 0))
	add(t, w, e, component.AIComponent, &component.AI{ThinkEveryMs: 50})

	for i := 1; i <= 5; i++ {
		w.Update(16, 16, float64(16*i))
	}
	assert.Equal(t, 2, brain.thinks)
	assert.Equal(t, []float64{66, 64}, brain.elapsed)

	w.Pause()
	for i := 6; i <= 20; i++ {
		w.Update(16, 16, float64(16*i))
	}
	assert.Equal(t, 2, brain.thinks, "paused game time does not advance brains")
}

func TestAIKeepsRunningAfterBrainErrors(t *testing.T) {
	brain := &countingBrain{err: errors.New("boom")}
	w := ecs.NewWorld()
	require.NoError(t, w.AddSystem(system.PriorityAI, system.NewAISystem(func(*component.AI) (system.Brain, error) {
		return brain, nil
	})))
	e := w.AddEntity()
	add(t, w, e, component.PositionComponent, component.NewPosition(0, 0))
	add(t, w, e, component.AIComponent, &component.AI{})

	w.Update(16, 16, 16)
	w.Update(16, 16, 32)
	assert.Equal(t, 2, brain.thinks)
}

func TestAIBrainFactoryFailure(t *testing.T) {
	w := ecs.NewWorld()
	ai := system.NewAISystem(func(*component.AI) (system.Brain, error) {
		return nil, errors.New("no such script")
	})
	require.NoError(t, w.AddSystem(system.PriorityAI, ai))
	e := w.AddEntity()
	add(t, w, e, component.PositionComponent, component.NewPosition(0, 0))
	add(t, w, e, component.AIComponent, &component.AI{})

	assert.NotPanics(t, func() { w.Update(16, 16, 16) })
}

func TestChaserScriptSteersTowardTarget(t *testing.T) {
	w := ecs.NewWorld()
	ai := system.NewAISystem(system.NewScriptBrainFactory(prefabs.LoadScript))
	require.NoError(t, w.AddSystem(system.PriorityAI, ai))

	target := w.AddEntity()
	targetPos := component.NewPosition(100, 0)
	add(t, w, target, component.PositionComponent, targetPos)

	chaser := w.AddEntity()
	vel := &component.Velocity{}
	add(t, w, chaser, component.PositionComponent, component.NewPosition(0, 0))
	add(t, w, chaser, component.VelocityComponent, vel)
	add(t, w, chaser, component.AIComponent, &component.AI{Script: "chaser.tengo", MoveSpeed: 50, Target: target})

	w.Update(16, 16, 16)
	assert.InDelta(t, 50, vel.X, 1e-9)
	assert.InDelta(t, 0, vel.Y, 1e-9)

	targetPos.Set(cp.Vector{X: 0, Y: -30})
	w.Update(16, 16, 32)
	assert.InDelta(t, 0, vel.X, 1e-9)
	assert.InDelta(t, -50, vel.Y, 1e-9)

	w.RemoveEntity(target)
	w.FinishUpdate()
	w.Update(16, 16, 48)
	assert.Equal(t, cp.Vector{}, vel.Vector, "stops once the target is gone")
}

func TestScriptBrainFactoryErrors(t *testing.T) {
	factory := system.NewScriptBrainFactory(func(name string) ([]byte, error) {
		switch name {
		case "broken.tengo":
			return []byte("think := func(engine, state) {"), nil
		case "thoughtless.tengo":
			return []byte("x := 1"), nil
		default:
			return nil, errors.New("missing")
		}
	})

	for _, name := range []string{"", "broken.tengo", "thoughtless.tengo", "missing.tengo"} {
		_, err := factory(&component.AI{Script: name})
		assert.Error(t, err, name)
	}
}

func TestAIReload(t *testing.T) {
	builds := 0
	w := ecs.NewWorld()
	ai := system.NewAISystem(func(*component.AI) (system.Brain, error) {
		builds++
		return &countingBrain{}, nil
	})
	require.NoError(t, w.AddSystem(system.PriorityAI, ai))
	e := w.AddEntity()
	add(t, w, e, component.PositionComponent, component.NewPosition(0, 0))
	add(t, w, e, component.AIComponent, &component.AI{})
	require.Equal(t, 1, builds)

	ai.RequestReload()
	w.Update(16, 16, 16)
	w.Update(16, 16, 32)
	assert.Equal(t, 2, builds)
}

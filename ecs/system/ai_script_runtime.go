package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs/component"
)

// ScriptLoader returns the source of a named brain script.
type ScriptLoader func(name string) ([]byte, error)

// scriptBrain runs a tengo script that defines think(engine, state). The
// state map persists between thinks of the same entity.
type scriptBrain struct {
	name      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

const aiThinkDispatchScript = `
if __think {
	think(__engine, __state)
}
`

// NewScriptBrainFactory compiles one script instance per AI entity.
func NewScriptBrainFactory(load ScriptLoader) BrainFactory {
	return func(ai *component.AI) (Brain, error) {
		if ai == nil || strings.TrimSpace(ai.Script) == "" {
			return nil, fmt.Errorf("ai: no script configured")
		}
		return compileScriptBrain(ai.Script, load)
	}
}

func compileScriptBrain(name string, load ScriptLoader) (*scriptBrain, error) {
	src, err := load(name)
	if err != nil {
		return nil, fmt.Errorf("ai: load script %s: %w", name, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + aiThinkDispatchScript))
	_ = script.Add("__think", false)
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile script %s: %w", name, err)
	}

	rt := &scriptBrain{
		name:      name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	// Run the top level once so script globals are initialised without
	// calling think.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("ai: init script %s: %w", name, err)
	}
	if !compiled.IsDefined("think") {
		return nil, fmt.Errorf("ai: script %s does not define think", name)
	}
	return rt, nil
}

func (rt *scriptBrain) Think(ctx *AIContext) error {
	if err := rt.compiled.Set("__think", true); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", buildAIScriptEngine(ctx)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("ai: script %s: %w", rt.name, err)
	}
	return nil
}

func buildAIScriptEngine(ctx *AIContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Position == nil {
			return vectorObject(cp.Vector{}), nil
		}
		return vectorObject(ctx.Position.Vec()), nil
	}}

	values["target_position"] = &tengo.UserFunction{Name: "target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		target, ok := ctx.TargetPosition()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(target), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
		}
		y, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
		}
		ctx.SetVelocity(cp.Vector{X: x, Y: y})
		return tengo.TrueValue, nil
	}}

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.AI == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: ctx.AI.MoveSpeed}, nil
	}}

	values["now"] = &tengo.UserFunction{Name: "now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.Clock.GameTime}, nil
	}}

	values["elapsed"] = &tengo.UserFunction{Name: "elapsed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.Elapsed}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

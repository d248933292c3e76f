package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// InputSource produces the input state for one frame.
type InputSource interface {
	Poll() component.Input
}

// KeyboardInput reads WASD or arrows, J to attack and K to shield, plus the
// first standard gamepad.
type KeyboardInput struct{}

func (KeyboardInput) Poll() component.Input {
	const stickDeadzone = 0.2

	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY += 1
	}
	in.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	in.ShieldHeld = ebiten.IsKeyPressed(ebiten.KeyK)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveX, in.MoveY = lx, ly
		}
		in.AttackPressed = in.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.ShieldHeld = in.ShieldHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	}
	return in
}

// InputSystem copies the polled state into every Input component. It is a
// debug system so a paused game still sees fresh input.
type InputSystem struct {
	ecs.SystemBase
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (s *InputSystem) Name() string { return "input" }

func (s *InputSystem) Debug() bool { return true }

func (s *InputSystem) Requires() []ecs.ComponentID {
	return ecs.Kinds(component.InputComponent)
}

func (s *InputSystem) Update(_ float64, aspects map[ecs.Entity]*ecs.Aspect, _ ecs.EntitySet, _ ecs.Clock) {
	if s.source == nil {
		return
	}
	polled := s.source.Poll()
	for _, a := range aspects {
		if input, ok := ecs.Read(a, component.InputComponent.Kind()); ok {
			*input = polled
		}
	}
}

package ecs

// Clock is the frame timing handed to every system. Times are milliseconds.
type Clock struct {
	// Now is the caller supplied timestamp of the frame.
	Now       float64
	WallTime  float64
	GameTime  float64
	WallDelta float64
	// Delta is the game step after time scale, slow motion and pause.
	Delta float64
	Frame uint64
}

func (c *Clock) advance(now, wallDelta, dt float64) {
	c.Now = now
	c.WallDelta = wallDelta
	c.Delta = dt
	c.WallTime += wallDelta
	c.GameTime += dt
	c.Frame++
}

// timeControl turns the caller's game delta into the step systems see.
type timeControl struct {
	scale         float64
	paused        bool
	slowScale     float64
	slowRemaining float64 // wall ms
}

func (t *timeControl) step(wallDelta, gameDelta float64) float64 {
	factor := t.scale
	if t.slowRemaining > 0 {
		factor *= t.slowScale
		t.slowRemaining -= wallDelta
		if t.slowRemaining <= 0 {
			t.slowRemaining = 0
			t.slowScale = 1
		}
	}
	if t.paused || factor <= 0 || gameDelta <= 0 {
		return 0
	}
	return gameDelta * factor
}

func (t *timeControl) slowMotion(scale, durationMs float64) {
	if durationMs <= 0 {
		return
	}
	if scale < 0 {
		scale = 0
	}
	if t.slowRemaining > 0 {
		scale = min(scale, t.slowScale)
		durationMs = max(durationMs, t.slowRemaining)
	}
	t.slowScale = scale
	t.slowRemaining = durationMs
}

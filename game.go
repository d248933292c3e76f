package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 24, B: 30, A: 255}
	hudColor        = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

const slowMotionMs = 1500

// change is sent by the file watcher and applied on the game goroutine.
type change struct {
	config  *config.Config
	scripts bool
	quit    bool
}

type Game struct {
	cfg      config.Config
	logger   *zap.Logger
	world    *ecs.World
	pipeline *system.Pipeline
	scene    *scene
	ui       *ebitenui.UI
	face     text.Face
	changes  chan change

	nowMs   float64
	paused  bool
	restart bool
	quit    bool
}

func NewGame(cfg config.Config, logger *zap.Logger, paused bool) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		logger:  logger,
		face:    text.NewGoXFace(basicfont.Face7x13),
		changes: make(chan change, 8),
	}

	g.world = ecs.NewWorld()
	g.world.SetLogger(logger)
	scripts := prefabs.Scripts{Dir: cfg.AI.ScriptDir}
	pipeline, err := system.RegisterDefaults(g.world, system.Options{
		CellSize: cfg.World.CellSize,
		Brains:   system.NewScriptBrainFactory(scripts.Load),
		Input:    system.KeyboardInput{},
		Debug:    cfg.World.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("register systems: %w", err)
	}
	g.pipeline = pipeline
	g.world.SetTimeScale(cfg.World.TimeScale)

	if err := g.reset(); err != nil {
		return nil, err
	}
	g.ui = NewPauseUI(g)
	if paused {
		g.pause()
	}
	return g, nil
}

// Changes is where the watcher delivers config and script updates.
func (g *Game) Changes() chan<- change {
	return g.changes
}

func (g *Game) reset() error {
	g.world.Clear()
	sc, err := buildScene(g.world, float64(g.cfg.Window.Width), float64(g.cfg.Window.Height))
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	g.scene = sc
	g.restart = false
	g.logger.Info("scene ready", zap.Int("entities", g.world.EntityCount()))
	return nil
}

func (g *Game) pause() {
	g.paused = true
	g.world.Pause()
}

func (g *Game) resume() {
	g.paused = false
	g.world.Resume()
}

func (g *Game) toggleDebug() {
	visible, err := g.world.ToggleSystem(g.pipeline.Debug)
	if err != nil {
		g.logger.Warn("toggle collision overlay", zap.Error(err))
		return
	}
	g.logger.Debug("collision overlay", zap.Bool("visible", visible))
}

func (g *Game) applyChanges() {
	for {
		select {
		case c := <-g.changes:
			if c.scripts {
				g.logger.Info("brain scripts changed, reloading")
				g.pipeline.AI.RequestReload()
			}
			if c.config != nil {
				g.applyConfig(*c.config)
			}
			if c.quit {
				g.quit = true
			}
		default:
			return
		}
	}
}

func (g *Game) applyConfig(cfg config.Config) {
	g.world.SetTimeScale(cfg.World.TimeScale)
	if cfg.World.Debug != g.pipeline.Debug.Enabled() {
		g.toggleDebug()
	}
	if cfg.TPS != g.cfg.TPS {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.World.CellSize != g.cfg.World.CellSize || cfg.Window != g.cfg.Window {
		g.logger.Info("cell size and window changes apply on restart")
		cfg.World.CellSize = g.cfg.World.CellSize
		cfg.Window = g.cfg.Window
	}
	g.cfg = cfg
	g.logger.Info("config reloaded", zap.Float64("time_scale", cfg.World.TimeScale), zap.Bool("debug", cfg.World.Debug))
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyP):
		if g.paused {
			g.resume()
		} else {
			g.pause()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.toggleDebug()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.world.SlowMotion(0.25, slowMotionMs)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart = true
	}
}

func (g *Game) Update() error {
	g.applyChanges()
	g.handleKeys()
	if g.quit {
		return ebiten.Termination
	}
	if g.restart {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if g.paused {
		g.ui.Update()
	}
	return g.step(1000 / float64(g.cfg.TPS))
}

// step advances the world one tick of stepMs wall time.
func (g *Game) step(stepMs float64) error {
	g.nowMs += stepMs
	dt := g.world.Update(stepMs, stepMs, g.nowMs)
	if dt > 0 {
		if err := g.scene.turret.tick(g.world, dt, g.scene.player); err != nil {
			g.logger.Warn("turret", zap.Error(err))
		}
	}
	g.handleEvents()
	g.world.FinishUpdate()

	if !g.world.Alive(g.scene.player) {
		g.logger.Info("player died, restarting")
		g.restart = true
	}
	return nil
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case system.EventSwing:
			g.decorate(evt.Other, layerEffects, swingColor)
		case system.EventShieldRaised:
			g.decorate(evt.Other, layerEffects, shieldColor)
		default:
			g.logger.Debug("event", zap.String("type", evt.Type), zap.Stringer("entity", evt.Entity), zap.Stringer("other", evt.Other))
		}
	}
}

func (g *Game) decorate(e ecs.Entity, layer int, clr color.RGBA) {
	if err := decorate(g.world, e, layer, clr); err != nil {
		g.logger.Warn("decorate", zap.Stringer("entity", e), zap.Error(err))
	}
}

// decorate gives a freshly spawned entity its render layer. Entities that
// died before their event was handled are skipped.
func decorate(w *ecs.World, e ecs.Entity, layer int, clr color.RGBA) error {
	if !w.Alive(e) {
		return nil
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer, Color: clr})
}

func (g *Game) hud() string {
	score, hp := 0, 0.0
	if c, ok := ecs.Get(g.world, g.scene.player, component.CollectorComponent.Kind()); ok {
		score = c.Score
	}
	if h, ok := ecs.Get(g.world, g.scene.player, component.HealthComponent.Kind()); ok {
		hp = h.Current
	}
	return fmt.Sprintf("score %d  hp %.0f  entities %d  fps %.0f\nWASD move  J attack  K shield  P pause  F1 collisions  F2 slow-mo  R restart",
		score, hp, g.world.EntityCount(), ebiten.ActualFPS())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.world.Draw(screen)

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(g.cfg.Window.Height)-36)
	op.LineSpacing = 15
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, g.hud(), g.face, op)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// brawler is a top-down arena demo driving the ECS collision engine.
//
// Usage:
//
//	brawler [--config engine.yaml] [--debug] [--paused]
//
// Keys: WASD move, J attack, K shield, P pause, F1 collision overlay,
// F2 slow motion, R restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/logging"
	"github.com/milk9111/brawler/prefabs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	flagConfig string
	flagDebug  bool
	flagPaused bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "brawler",
	Short:         "Arena demo for the ECS collision engine",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to an engine yaml file (default: embedded settings)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the collision overlay and log at debug level")
	rootCmd.Flags().BoolVar(&flagPaused, "paused", false, "Start with the pause menu open")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.World.Debug = true
	}

	logger, err := logging.New(flagDebug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(cfg, logger, flagPaused)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return watch(ctx, logger, flagConfig, cfg.AI.ScriptDir, game.Changes())
	})
	group.Go(func() error {
		<-ctx.Done()
		select {
		case game.Changes() <- change{quit: true}:
		default:
		}
		return nil
	})

	// ebiten must own the main goroutine
	runErr := ebiten.RunGame(game)
	cancel()
	return errors.Join(runErr, group.Wait())
}

// watch forwards config and brain script edits to the game until ctx ends.
func watch(ctx context.Context, logger *zap.Logger, configPath, scriptDir string, changes chan<- change) error {
	var dirs []string
	var matchers []func(string) bool
	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
		matchers = append(matchers, config.FileMatcher(configPath))
	}
	if info, err := os.Stat(scriptDir); err == nil && info.IsDir() {
		dirs = append(dirs, scriptDir)
		matchers = append(matchers, prefabs.IsScriptFile)
	}
	if len(dirs) == 0 {
		<-ctx.Done()
		return nil
	}

	watcher, err := config.NewWatcher(config.AnyMatcher(matchers...), dirs...)
	if err != nil {
		logger.Warn("hot reload disabled", zap.Error(err))
		<-ctx.Done()
		return nil
	}
	defer watcher.Close()
	logger.Info("watching for changes", zap.Strings("dirs", dirs))

	isConfig := func(string) bool { return false }
	if configPath != "" {
		isConfig = config.FileMatcher(configPath)
	}

	for {
		var c change
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
			continue
		case path, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isConfig(path) {
				cfg, err := config.Load(configPath)
				if err != nil {
					logger.Warn("ignoring config change", zap.String("path", path), zap.Error(err))
					continue
				}
				c.config = &cfg
			} else {
				c.scripts = true
			}
		}
		select {
		case changes <- c:
		case <-ctx.Done():
			return nil
		}
	}
}
